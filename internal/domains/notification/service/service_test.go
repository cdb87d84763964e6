package service_test

import (
	"context"
	"fmt"
	"studio/config"
	"studio/internal/domains/notification/model"
	"studio/internal/domains/notification/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newService(ttlSeconds, capacity int) (service.Notification, *clock) {
	cfg := &config.Config{}
	cfg.App.Notification.TTLSeconds = ttlSeconds
	cfg.App.Notification.Capacity = capacity

	c := &clock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := service.New(cfg)
	service.SetClock(svc, c.Now)

	return svc, c
}

func TestNotification_Raise(t *testing.T) {
	svc, c := newService(3, 10)
	ctx := context.Background()

	tests := []struct {
		name  string
		raise func(ctx context.Context, msg string) model.Notice
		kind  model.Kind
	}{
		{name: "success", raise: svc.Success, kind: model.KindSuccess},
		{name: "error", raise: svc.Error, kind: model.KindError},
		{name: "info", raise: svc.Info, kind: model.KindInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notice := tt.raise(ctx, "hello "+tt.name)

			assert.NotEmpty(t, notice.ID)
			assert.Equal(t, tt.kind, notice.Kind)
			assert.Equal(t, "hello "+tt.name, notice.Message)
			assert.Equal(t, c.now, notice.CreatedAt)
			assert.Equal(t, c.now.Add(3*time.Second), notice.ExpiresAt)
		})
	}

	active := svc.Active(ctx)
	require.Len(t, active, 3)
	assert.Equal(t, "hello info", active[0].Message)
	assert.Equal(t, "hello success", active[2].Message)
}

func TestNotification_Expiry(t *testing.T) {
	svc, c := newService(3, 10)
	ctx := context.Background()

	svc.Error(ctx, "Could not load gallery images.")

	c.now = c.now.Add(2 * time.Second)
	svc.Success(ctx, "Image generated successfully!")
	assert.Len(t, svc.Active(ctx), 2)

	c.now = c.now.Add(time.Second)
	active := svc.Active(ctx)
	require.Len(t, active, 1)
	assert.Equal(t, "Image generated successfully!", active[0].Message)

	c.now = c.now.Add(5 * time.Second)
	assert.Empty(t, svc.Active(ctx))
}

func TestNotification_Capacity(t *testing.T) {
	svc, _ := newService(60, 3)
	ctx := context.Background()

	for i := range 5 {
		svc.Info(ctx, fmt.Sprintf("notice %d", i))
	}

	active := svc.Active(ctx)
	require.Len(t, active, 3)
	assert.Equal(t, "notice 4", active[0].Message)
	assert.Equal(t, "notice 2", active[2].Message)
}

func TestNotification_Defaults(t *testing.T) {
	svc, c := newService(0, 0)

	notice := svc.Success(context.Background(), "ok")
	assert.Equal(t, c.now.Add(3*time.Second), notice.ExpiresAt)
}
