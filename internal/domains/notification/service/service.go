//go:generate mockgen -source=service.go -destination=../mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"studio/config"
	"studio/internal/domains/notification/model"
	"studio/shared/timezone"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultTTL      = 3 * time.Second
	defaultCapacity = 20
)

type Notification interface {
	Success(ctx context.Context, message string) model.Notice
	Error(ctx context.Context, message string) model.Notice
	Info(ctx context.Context, message string) model.Notice
	Active(ctx context.Context) []model.Notice
}

type serviceImpl struct {
	mu       sync.Mutex
	notices  []model.Notice
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

func New(cfg *config.Config) Notification {
	ttl := time.Duration(cfg.App.Notification.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}

	capacity := cfg.App.Notification.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	return &serviceImpl{
		ttl:      ttl,
		capacity: capacity,
		now:      timezone.Now,
	}
}

func (s *serviceImpl) Success(ctx context.Context, message string) model.Notice {
	return s.raise(ctx, model.KindSuccess, message)
}

func (s *serviceImpl) Error(ctx context.Context, message string) model.Notice {
	return s.raise(ctx, model.KindError, message)
}

func (s *serviceImpl) Info(ctx context.Context, message string) model.Notice {
	return s.raise(ctx, model.KindInfo, message)
}

// Active returns the unexpired notices, newest first.
func (s *serviceImpl) Active(_ context.Context) []model.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(s.now())

	res := make([]model.Notice, 0, len(s.notices))
	for i := len(s.notices) - 1; i >= 0; i-- {
		res = append(res, s.notices[i])
	}

	return res
}

func (s *serviceImpl) raise(_ context.Context, kind model.Kind, message string) model.Notice {
	now := s.now()

	notice := model.Notice{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(now)

	s.notices = append(s.notices, notice)
	if overflow := len(s.notices) - s.capacity; overflow > 0 {
		s.notices = s.notices[overflow:]
	}

	log.Debug().Str("kind", string(kind)).Str("message", message).Msg("notice raised")

	return notice
}

func (s *serviceImpl) prune(now time.Time) {
	kept := s.notices[:0]

	for _, notice := range s.notices {
		if !notice.Expired(now) {
			kept = append(kept, notice)
		}
	}

	s.notices = kept
}
