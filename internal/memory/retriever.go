package memory

import (
	"context"
	"fmt"

	"github.com/nulocaldev/deenquest/internal/types"
)

// SimilaritySearcher finds stored messages near an embedding.
type SimilaritySearcher interface {
	SearchSimilar(ctx context.Context, userID string, embedding []float32, topK int, threshold float64) ([]types.RecalledMessage, error)
}

// Retriever provides semantic recall over a user's stored messages.
type Retriever struct {
	embedder            Embedder
	searcher            SimilaritySearcher
	topK                int
	similarityThreshold float64
}

// NewRetriever creates a Retriever.
func NewRetriever(embedder Embedder, searcher SimilaritySearcher, topK int, threshold float64) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	if threshold <= 0 {
		threshold = 0.7
	}
	return &Retriever{
		embedder:            embedder,
		searcher:            searcher,
		topK:                topK,
		similarityThreshold: threshold,
	}
}

// Retrieve returns the top-k past messages most similar to the query. A nil
// embedder disables recall rather than failing the turn.
func (r *Retriever) Retrieve(ctx context.Context, userID, query string) ([]types.RecalledMessage, error) {
	if query == "" || r.embedder == nil {
		return nil, nil
	}
	if r.searcher == nil {
		return nil, fmt.Errorf("retriever not properly configured")
	}

	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	return r.searcher.SearchSimilar(ctx, userID, vec, r.topK, r.similarityThreshold)
}
