//go:generate mockgen -source=service.go -destination=../mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"errors"
	"strings"
	"studio/infras/backend"
	"studio/infras/otel"
	"studio/internal/domains/gallery/listener"
	gallery "studio/internal/domains/gallery/service"
	notification "studio/internal/domains/notification/service"
	"studio/internal/domains/studio/encoder"
	"studio/internal/domains/studio/model"
	"studio/internal/domains/studio/model/dto"
	"studio/shared/base64"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/shared/validator"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const (
	MessageEmptyPrompt      = "Please enter a prompt."
	MessageGenerating       = "An image is already being generated."
	MessageGenerated        = "Image generated successfully!"
	MessageGenerateFailed   = "Failed to generate image."
	MessageNothingToPublish = "No image to publish!"
	MessagePublishing       = "An image is already being published."
	MessagePublished        = "Published successfully!"
	MessagePublishFailed    = "Upload failed."
	MessageUnreadableUpload = "Could not read the uploaded image."

	generatedImageMediaType = "image/png"
)

type Studio interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (dto.StudioView, error)
	Publish(ctx context.Context) (dto.StudioView, error)
	View(ctx context.Context) dto.StudioView
}

type serviceImpl struct {
	backend  backend.Client
	gallery  gallery.Gallery
	notifier notification.Notification
	encoder  encoder.Encoder
	otel     otel.Otel
	live     listener.Listener

	generating atomic.Bool
	publishing atomic.Bool

	mu       sync.Mutex
	workflow model.Workflow
	sequence uint64
}

func New(
	backend backend.Client,
	gallery gallery.Gallery,
	notifier notification.Notification,
	encoder encoder.Encoder,
	live listener.Listener,
	otel otel.Otel,
) Studio {
	return &serviceImpl{
		backend:  backend,
		gallery:  gallery,
		notifier: notifier,
		encoder:  encoder,
		otel:     otel,
		live:     live,
		workflow: model.Workflow{State: model.StateIdle},
	}
}

func (s *serviceImpl) View(_ context.Context) dto.StudioView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

func (s *serviceImpl) viewLocked() dto.StudioView {
	var view dto.StudioView
	view.FromModel(s.workflow)

	return view
}

// update applies fn when resultID still names the current generation and returns the view.
func (s *serviceImpl) update(resultID uint64, fn func(w *model.Workflow)) dto.StudioView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.workflow.ResultID == resultID {
		fn(&s.workflow)
	}

	return s.viewLocked()
}

func (s *serviceImpl) Generate(ctx context.Context, req dto.GenerateRequest) (res dto.StudioView, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Generate")
	defer scope.End()
	defer scope.TraceIfError(err)

	prompt := strings.TrimSpace(req.Prompt)
	if err = validator.ValidateVar(prompt, "notblank"); err != nil {
		s.notifier.Error(ctx, MessageEmptyPrompt)

		return s.View(ctx), failure.BadRequestFromString(MessageEmptyPrompt)
	}

	if !s.generating.CompareAndSwap(false, true) {
		s.notifier.Error(ctx, MessageGenerating)

		return s.View(ctx), failure.Conflict(MessageGenerating)
	}
	defer s.generating.Store(false)

	s.mu.Lock()
	s.sequence++
	resultID := s.sequence
	s.workflow = model.Workflow{
		State:    model.StateGenerating,
		Prompt:   prompt,
		ResultID: resultID,
	}
	s.mu.Unlock()

	scope.SetAttribute("studio.reference", req.HasReference())

	var imageBase64 string

	if req.HasReference() {
		var reference string

		reference, err = s.encodeReference(ctx, req)
		if err != nil {
			message := MessageUnreadableUpload

			var notImage *encoder.NotImageError
			if errors.As(err, &notImage) || errors.Is(err, encoder.ErrTooLarge) {
				message = err.Error()
			}

			s.notifier.Error(ctx, message)

			return s.update(resultID, func(w *model.Workflow) { w.State = model.StateIdle }),
				failure.BadRequestFromString(message)
		}

		imageBase64, err = s.backend.GenerateImageFromTextAndImage(ctx, prompt, reference)
	} else {
		imageBase64, err = s.backend.GenerateImage(ctx, prompt)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to generate image")

		message := backend.Message(err, MessageGenerateFailed)
		s.notifier.Error(ctx, message)

		return s.update(resultID, func(w *model.Workflow) { w.State = model.StateIdle }), failure.BadGateway(message)
	}

	res = s.update(resultID, func(w *model.Workflow) {
		w.State = model.StateResult
		w.ImageSrc = base64.DataURL(generatedImageMediaType, imageBase64)
	})

	s.notifier.Success(ctx, MessageGenerated)

	return res, nil
}

func (s *serviceImpl) encodeReference(ctx context.Context, req dto.GenerateRequest) (string, error) {
	select {
	case result, ok := <-s.encoder.Encode(ctx, req.ImageFile):
		if !ok {
			return "", encoder.ErrRead
		}

		if result.Err != nil {
			log.Error().Err(result.Err).Msg("failed to encode reference image")

			return "", result.Err
		}

		return result.Base64, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *serviceImpl) Publish(ctx context.Context) (res dto.StudioView, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.publishing.CompareAndSwap(false, true) {
		s.notifier.Error(ctx, MessagePublishing)

		return s.View(ctx), failure.Conflict(MessagePublishing)
	}
	defer s.publishing.Store(false)

	s.mu.Lock()
	current := s.workflow
	req := dto.PublishRequest{ImageSrc: current.ImageSrc, Prompt: current.Prompt}

	if current.State != model.StateResult || validator.ValidateStruct(&req) != nil {
		res = s.viewLocked()
		s.mu.Unlock()

		s.notifier.Error(ctx, MessageNothingToPublish)

		return res, failure.BadRequestFromString(MessageNothingToPublish)
	}

	s.workflow.State = model.StatePublishing
	s.mu.Unlock()

	url, err := s.backend.PublishImage(ctx, base64.Payload(req.ImageSrc), req.Prompt)
	if err != nil {
		log.Error().Err(err).Msg("failed to publish image")

		message := backend.Message(err, MessagePublishFailed)
		s.notifier.Error(ctx, message)

		return s.update(current.ResultID, func(w *model.Workflow) { w.State = model.StateResult }),
			failure.BadGateway(message)
	}

	res = s.update(current.ResultID, func(w *model.Workflow) {
		w.State = model.StatePublished
		w.PublishedURL = url
	})

	s.notifier.Success(ctx, MessagePublished)

	// without a subscribed channel the push will not arrive
	if !s.live.Connected() {
		if _, err := s.gallery.Reload(ctx); err != nil {
			log.Error().Err(err).Msg("failed to reload gallery after publish")
		}
	}

	return res, nil
}
