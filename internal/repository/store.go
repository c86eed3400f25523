package store

import (
	"context"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// Store holds sessions and their message logs.
type Store interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	// GetSession returns nil, nil when the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	// DeleteSession removes the session and its whole message log.
	DeleteSession(ctx context.Context, sessionID string) error

	AppendMessage(ctx context.Context, message *domain.StoredMessage) error
	// ListMessages returns the log ordered by sequence. limit <= 0 means no limit.
	ListMessages(ctx context.Context, sessionID string, limit int) ([]domain.StoredMessage, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)
