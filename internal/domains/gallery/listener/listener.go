// Package listener applies live "new image" events to the gallery.
package listener

import (
	"context"
	"encoding/json"
	"strings"
	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel"
	"studio/infras/socket"
	"studio/internal/domains/gallery/model"
	"studio/internal/domains/gallery/service"
	notification "studio/internal/domains/notification/service"
	"studio/shared/constant"
	"studio/shared/event"

	"github.com/rs/zerolog/log"
)

const MessageImageAdded = "New image added to the gallery!"

// Listener applies pushed images to the gallery. Connected is false while no live
// channel is subscribed, including when live updates are disabled.
type Listener interface {
	Run(ctx context.Context) error
	Handle(ctx context.Context, evt event.Event)
	Connected() bool
}

type listenerImpl struct {
	source   event.Source
	event    string
	gallery  service.Gallery
	notifier notification.Notification
	otel     otel.Otel
}

func New(
	cfg *config.Config,
	source event.Source,
	gallery service.Gallery,
	notifier notification.Notification,
	otel otel.Otel,
) Listener {
	return &listenerImpl{
		source:   source,
		event:    cfg.Live.Event,
		gallery:  gallery,
		notifier: notifier,
		otel:     otel,
	}
}

// NewSource picks the live transport from configuration. It returns nil when live
// updates are disabled.
func NewSource(cfg *config.Config) event.Source {
	switch strings.ToLower(cfg.Live.Transport) {
	case config.LiveTransportWebsocket:
		return socket.New(cfg)
	case config.LiveTransportKafka:
		return kafka.NewSource(cfg, kafka.New(cfg))
	default:
		return nil
	}
}

func (l *listenerImpl) Run(ctx context.Context) error {
	if l.source == nil {
		log.Info().Msg("live updates disabled")

		return nil
	}

	return l.source.Run(ctx, l.Handle)
}

func (l *listenerImpl) Connected() bool {
	return l.source != nil && l.source.Connected()
}

// Handle never fails. Payloads that cannot be applied are dropped.
func (l *listenerImpl) Handle(ctx context.Context, evt event.Event) {
	if evt.Name != l.event {
		log.Debug().Str("event", evt.Name).Msg("ignoring event")

		return
	}

	ctx, scope := l.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()

	var entry model.Entry
	if err := json.Unmarshal(evt.Payload, &entry); err != nil {
		log.Warn().Err(err).Str("event", evt.Name).Msg("dropping malformed payload")
		scope.TraceError(err)

		return
	}

	view, err := l.gallery.Prepend(ctx, entry)
	if err != nil {
		log.Warn().Err(err).Str("event", evt.Name).Msg("dropping invalid payload")
		scope.TraceError(err)

		return
	}

	scope.SetAttribute("gallery.revision", int64(view.Revision))

	l.notifier.Success(ctx, MessageImageAdded)
}
