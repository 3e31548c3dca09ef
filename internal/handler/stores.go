package handler

import (
	"context"

	"github.com/lfmelo/stockboard/internal/model"
	"github.com/lfmelo/stockboard/internal/queue"
)

// UserStore is the persistence boundary for accounts. Implementations must
// enforce a uniqueness constraint on email; repository.UserRepo is the real
// one, tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetByID(ctx context.Context, id uint64) (model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	EmailTakenByOther(ctx context.Context, email string, id uint64) (bool, error)
	UpdateProfile(ctx context.Context, id uint64, name, email string) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	UpdatePreferences(ctx context.Context, id uint64, u model.PreferenceUpdate) error
}

// CommentStore is the persistence boundary for per-company comments.
type CommentStore interface {
	ListByCompany(ctx context.Context, companyID string) ([]model.Comment, error)
	Add(ctx context.Context, userID uint64, companyID, content string) (model.Comment, error)
}

// EventPublisher forwards domain events to the broker. A nil publisher
// disables events; failures never fail the originating request.
type EventPublisher interface {
	UserRegistered(ctx context.Context, event queue.UserRegisteredEvent) error
	CommentPosted(ctx context.Context, event queue.CommentPostedEvent) error
}
