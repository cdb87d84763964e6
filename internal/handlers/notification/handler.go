package notification

import (
	"net/http"
	"studio/infras/otel"
	"studio/internal/domains/notification/model/dto"
	"studio/internal/domains/notification/service"
	"studio/shared/constant"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/notifications", handler.GetNotifications)
}

// GetNotifications lists the notices that have not expired yet.
// @Summary Active notifications
// @Tags Notification
// @Produce json
// @Success 200 {object} dto.NotificationsResponse "Active notices, newest first"
// @Router /v1/notifications [get]
func (handler *Handler) GetNotifications(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	res := dto.NotificationsResponse{}
	res.FromModels(handler.service.Active(ctx))

	response.WithJSON(writer, http.StatusOK, res)
}
