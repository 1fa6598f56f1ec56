package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/jonny/dispatchbot/internal/domain/model"
)

// ErrNotFound is returned by stores when a key has no value.
var ErrNotFound = errors.New("not found")

type PageRequest struct {
	Page int
	Size int
	Desc bool
}

type PageResult[T any] struct {
	Items      []T
	TotalCount int64
	Page       int
	Size       int
}

type AuditFilter struct {
	EventType     string
	InteractionID string
	Command       string
	Actor         string
	Since         *time.Time
	Until         *time.Time
}

type AuditRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditFilter, page PageRequest) (PageResult[model.AuditLog], error)
}

// GameStore keeps active games by key. Implementations must be safe for
// concurrent use.
type GameStore interface {
	Put(ctx context.Context, key string, game model.Game) error
	Get(ctx context.Context, key string) (model.Game, error)
	Delete(ctx context.Context, key string) error
}
