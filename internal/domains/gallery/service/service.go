//go:generate mockgen -source=service.go -destination=../mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"studio/config"
	"studio/infras/backend"
	"studio/infras/otel"
	"studio/internal/domains/gallery/model"
	"studio/internal/domains/gallery/model/dto"
	"studio/internal/domains/gallery/pagination"
	"studio/internal/domains/gallery/render"
	"studio/internal/domains/gallery/store"
	notification "studio/internal/domains/notification/service"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/shared/validator"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	MessageLoadFailed = "Could not load gallery images."
)

type Gallery interface {
	Reload(ctx context.Context) (dto.GalleryView, error)
	Prepend(ctx context.Context, entry model.Entry) (dto.GalleryView, error)
	View(ctx context.Context) dto.GalleryView
	GoTo(ctx context.Context, page int) (dto.GalleryView, error)
	Previous(ctx context.Context) dto.GalleryView
	Next(ctx context.Context) dto.GalleryView
	Preview(ctx context.Context, index int) (dto.Preview, error)
}

type serviceImpl struct {
	backend  backend.Client
	notifier notification.Notification
	otel     otel.Otel

	// mu guards everything below. A mutation and its render happen under one lock.
	mu         sync.Mutex
	store      *store.Store
	pagination model.Pagination
	revision   uint64
	view       dto.GalleryView
}

func New(cfg *config.Config, backend backend.Client, notifier notification.Notification, otel otel.Otel) Gallery {
	pageSize := cfg.Gallery.PageSize
	if pageSize <= 0 {
		pageSize = constant.DefaultValuePageSize
	}

	s := &serviceImpl{
		backend:  backend,
		notifier: notifier,
		otel:     otel,
		store:    store.New(),
		pagination: model.Pagination{
			CurrentPage: constant.DefaultValuePage,
			PageSize:    pageSize,
		},
	}

	s.view = render.Render(s.store, s.pagination, s.revision)

	return s
}

// render must be called with mu held.
func (s *serviceImpl) render() dto.GalleryView {
	s.revision++
	s.view = render.Render(s.store, s.pagination, s.revision)
	s.pagination.CurrentPage = s.view.CurrentPage

	return s.view
}

// Reload fetches the listing outside the lock and swaps it in. On failure the gallery
// is emptied and an error notice is raised.
func (s *serviceImpl) Reload(ctx context.Context) (res dto.GalleryView, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reload")
	defer scope.End()
	defer scope.TraceIfError(err)

	images, err := s.backend.ListImages(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load gallery images")

		s.mu.Lock()
		s.store.Load(nil)
		s.pagination.CurrentPage = constant.DefaultValuePage
		res = s.render()
		s.mu.Unlock()

		s.notifier.Error(ctx, MessageLoadFailed)

		return res, failure.BadGateway(MessageLoadFailed)
	}

	entries := make([]model.Entry, 0, len(images))

	for _, entry := range model.FromBackend(images) {
		if err := validator.ValidateStruct(&entry); err != nil {
			log.Warn().Err(err).Msg("skipping gallery entry without url")

			continue
		}

		entries = append(entries, entry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Load(entries)
	s.pagination.CurrentPage = constant.DefaultValuePage

	scope.SetAttribute("gallery.total", len(entries))

	return s.render(), nil
}

func (s *serviceImpl) Prepend(ctx context.Context, entry model.Entry) (res dto.GalleryView, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Prepend")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&entry); err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Prepend(entry)

	return s.render(), nil
}

// View returns the last rendered view without rendering again.
func (s *serviceImpl) View(_ context.Context) dto.GalleryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view
}

func (s *serviceImpl) GoTo(ctx context.Context, page int) (res dto.GalleryView, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GoTo")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := pagination.Select(page, s.pagination.CurrentPage, s.view.TotalPages)
	if err != nil {
		return s.view, err
	}

	if !changed {
		return s.view, nil
	}

	s.pagination.CurrentPage = next

	return s.render(), nil
}

func (s *serviceImpl) Previous(_ context.Context) dto.GalleryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := pagination.Previous(s.pagination.CurrentPage)
	if !changed {
		return s.view
	}

	s.pagination.CurrentPage = next

	return s.render()
}

func (s *serviceImpl) Next(_ context.Context) dto.GalleryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := pagination.Next(s.pagination.CurrentPage, s.view.TotalPages)
	if !changed {
		return s.view
	}

	s.pagination.CurrentPage = next

	return s.render()
}

func (s *serviceImpl) Preview(_ context.Context, index int) (dto.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store.Entry(index)
	if !ok {
		return dto.Preview{}, failure.NotFound("image not found")
	}

	return render.Preview(entry, index), nil
}
