package dto_test

import (
	"studio/internal/domains/notification/model"
	"studio/internal/domains/notification/model/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationsResponse_FromModels(t *testing.T) {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	var res dto.NotificationsResponse
	res.FromModels([]model.Notice{
		{ID: "1", Kind: model.KindSuccess, Message: "Published successfully!", CreatedAt: created, ExpiresAt: created.Add(3 * time.Second)},
	})

	assert.Len(t, res.Notices, 1)
	assert.Equal(t, "1", res.Notices[0].ID)
	assert.Equal(t, "success", res.Notices[0].Kind)
	assert.Equal(t, "Published successfully!", res.Notices[0].Message)
	assert.Equal(t, "2025-01-01T12:00:00Z", res.Notices[0].CreatedAt)
	assert.Equal(t, "2025-01-01T12:00:03Z", res.Notices[0].ExpiresAt)
}

func TestNotice_Expired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	notice := model.Notice{ExpiresAt: now}

	assert.True(t, notice.Expired(now))
	assert.False(t, notice.Expired(now.Add(-time.Millisecond)))
}
