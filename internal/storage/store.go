// Package storage provides the PostgreSQL-backed repositories plus an
// in-memory variant for development and tests.
package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nulocaldev/deenquest/internal/conversation"
	"github.com/nulocaldev/deenquest/internal/unlock"
)

// Store holds the DB pool and repositories.
type Store struct {
	db           *gorm.DB
	Contexts     conversation.ContextRepo
	Unlocks      unlock.UnlockRepo
	ChatMessages *ChatMessageRepo
}

// NewStore initializes the PostgreSQL pool, runs migrations, and wires the
// repositories.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&conversationContextModel{},
		&unlockedContentModel{},
		&chatMessageModel{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{
		db:           db,
		Contexts:     NewContextRepo(db),
		Unlocks:      NewUnlockRepo(db),
		ChatMessages: NewChatMessageRepo(db),
	}, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() {
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
