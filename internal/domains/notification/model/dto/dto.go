package dto

import (
	"studio/internal/domains/notification/model"
	"studio/shared/constant"
)

type NoticeResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

func (r *NoticeResponse) FromModel(notice model.Notice) {
	r.ID = notice.ID
	r.Kind = string(notice.Kind)
	r.Message = notice.Message
	r.CreatedAt = notice.CreatedAt.Format(constant.DateFormat)
	r.ExpiresAt = notice.ExpiresAt.Format(constant.DateFormat)
}

type NotificationsResponse struct {
	Notices []NoticeResponse `json:"notices"`
}

func (r *NotificationsResponse) FromModels(notices []model.Notice) {
	r.Notices = make([]NoticeResponse, len(notices))

	for i, notice := range notices {
		r.Notices[i].FromModel(notice)
	}
}
