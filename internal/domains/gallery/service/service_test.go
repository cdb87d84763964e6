package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"studio/config"
	"studio/infras/backend"
	backendMocks "studio/infras/backend/mocks"
	"studio/infras/otel/mocks"
	"studio/internal/domains/gallery/model"
	"studio/internal/domains/gallery/render"
	"studio/internal/domains/gallery/service"
	notificationMocks "studio/internal/domains/notification/mocks"
	notificationModel "studio/internal/domains/notification/model"
	"studio/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func images(n int) []backend.Image {
	res := make([]backend.Image, n)
	for i := range res {
		res[i] = backend.Image{URL: fmt.Sprintf("https://cdn/%d.png", i)}
	}

	return res
}

type fixture struct {
	svc      service.Gallery
	backend  *backendMocks.MockClient
	notifier *notificationMocks.MockNotification
}

func newFixture(t *testing.T, pageSize int) fixture {
	ctrl := gomock.NewController(t)

	mockBackend := backendMocks.NewMockClient(ctrl)
	mockNotifier := notificationMocks.NewMockNotification(ctrl)

	cfg := &config.Config{}
	cfg.Gallery.PageSize = pageSize

	return fixture{
		svc:      service.New(cfg, mockBackend, mockNotifier, mocks.NewOtel()),
		backend:  mockBackend,
		notifier: mockNotifier,
	}
}

func TestGalleryService_InitialView(t *testing.T) {
	f := newFixture(t, 12)

	view := f.svc.View(context.Background())

	assert.Equal(t, uint64(0), view.Revision)
	assert.Equal(t, render.Placeholder, view.Placeholder)
	assert.Equal(t, 1, view.CurrentPage)
}

func TestGalleryService_Reload(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(f fixture)
		wantErr     bool
		wantTotal   int
		placeholder bool
	}{
		{
			name: "successful load",
			setupMock: func(f fixture) {
				f.backend.EXPECT().ListImages(gomock.Any()).Return(images(20), nil)
			},
			wantTotal: 20,
		},
		{
			name: "blank urls skipped",
			setupMock: func(f fixture) {
				f.backend.EXPECT().ListImages(gomock.Any()).Return([]backend.Image{{URL: "a"}, {URL: " "}}, nil)
			},
			wantTotal: 1,
		},
		{
			name: "backend failure empties the gallery",
			setupMock: func(f fixture) {
				f.backend.EXPECT().ListImages(gomock.Any()).
					Return(nil, &backend.Error{StatusCode: http.StatusInternalServerError})
				f.notifier.EXPECT().Error(gomock.Any(), service.MessageLoadFailed).Return(notificationModel.Notice{})
			},
			wantErr:     true,
			placeholder: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 8)
			tt.setupMock(f)

			view, err := f.svc.Reload(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantTotal, view.Total)
			assert.Equal(t, 1, view.CurrentPage)
			assert.Equal(t, uint64(1), view.Revision)
			assert.Equal(t, tt.placeholder, view.Placeholder != "")
			assert.Equal(t, view, f.svc.View(context.Background()))
		})
	}
}

func TestGalleryService_ReloadAfterFailureResetsPage(t *testing.T) {
	f := newFixture(t, 8)
	ctx := context.Background()

	f.backend.EXPECT().ListImages(gomock.Any()).Return(images(20), nil)
	_, err := f.svc.Reload(ctx)
	require.NoError(t, err)

	_, err = f.svc.GoTo(ctx, 3)
	require.NoError(t, err)

	f.backend.EXPECT().ListImages(gomock.Any()).Return(nil, errors.New("network down"))
	f.notifier.EXPECT().Error(gomock.Any(), service.MessageLoadFailed).Return(notificationModel.Notice{})

	view, err := f.svc.Reload(ctx)
	assert.Error(t, err)
	assert.Equal(t, 1, view.CurrentPage)
	assert.Equal(t, 0, view.Total)
	assert.Empty(t, view.Controls)
}

func TestGalleryService_ReloadIsIdempotent(t *testing.T) {
	tests := []struct {
		name     string
		navigate func(t *testing.T, f fixture)
	}{
		{
			name:     "from page one",
			navigate: func(*testing.T, fixture) {},
		},
		{
			name: "after moving to another page",
			navigate: func(t *testing.T, f fixture) {
				view, err := f.svc.GoTo(context.Background(), 2)
				require.NoError(t, err)
				require.Equal(t, 2, view.CurrentPage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 8)
			ctx := context.Background()

			f.backend.EXPECT().ListImages(gomock.Any()).Return(images(20), nil).Times(2)

			first, err := f.svc.Reload(ctx)
			require.NoError(t, err)

			tt.navigate(t, f)

			second, err := f.svc.Reload(ctx)
			require.NoError(t, err)

			assert.Equal(t, 1, second.CurrentPage)
			assert.Equal(t, first.Units, second.Units)
			assert.Equal(t, first.Controls, second.Controls)
			assert.Equal(t, first.Total, second.Total)
		})
	}
}

func TestGalleryService_Navigation(t *testing.T) {
	f := newFixture(t, 8)
	ctx := context.Background()

	f.backend.EXPECT().ListImages(gomock.Any()).Return(images(20), nil)
	view, err := f.svc.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalPages)

	view, err = f.svc.GoTo(ctx, 2)
	require.NoError(t, err)
	require.Len(t, view.Units, 8)
	assert.Equal(t, 8, view.Units[0].Index)
	assert.Equal(t, 15, view.Units[7].Index)
	assert.True(t, view.Controls[2].Active)

	_, err = f.svc.GoTo(ctx, 1)
	require.NoError(t, err)

	// prev on page 1 is a no-op
	view = f.svc.Previous(ctx)
	assert.Equal(t, uint64(3), view.Revision)
	assert.Equal(t, 1, view.CurrentPage)

	view, err = f.svc.GoTo(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), view.Revision)
	assert.Len(t, view.Units, 4)
	assert.Equal(t, 16, view.Units[0].Index)
	assert.True(t, view.Controls[len(view.Controls)-1].Disabled)

	// next on the last page is a no-op
	view = f.svc.Next(ctx)
	assert.Equal(t, uint64(4), view.Revision)

	// reselecting the active page is a no-op
	view, err = f.svc.GoTo(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), view.Revision)

	view = f.svc.Previous(ctx)
	assert.Equal(t, 2, view.CurrentPage)
	assert.Equal(t, uint64(5), view.Revision)

	view = f.svc.Next(ctx)
	assert.Equal(t, 3, view.CurrentPage)
	assert.Equal(t, uint64(6), view.Revision)

	_, err = f.svc.GoTo(ctx, 4)
	assert.ErrorIs(t, err, failure.InvalidPageParam)
	assert.Equal(t, uint64(6), f.svc.View(ctx).Revision)
}

func TestGalleryService_Prepend(t *testing.T) {
	f := newFixture(t, 8)
	ctx := context.Background()

	f.backend.EXPECT().ListImages(gomock.Any()).Return(images(16), nil)
	_, err := f.svc.Reload(ctx)
	require.NoError(t, err)

	_, err = f.svc.GoTo(ctx, 2)
	require.NoError(t, err)

	view, err := f.svc.Prepend(ctx, model.Entry{URL: "https://cdn/new.png", Prompt: "a fox"})
	require.NoError(t, err)

	assert.Equal(t, 17, view.Total)
	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, 2, view.CurrentPage, "push keeps the current page")
	assert.Equal(t, uint64(3), view.Revision)

	preview, err := f.svc.Preview(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/new.png", preview.URL)
	assert.Equal(t, "a fox", preview.Prompt)

	_, err = f.svc.Prepend(ctx, model.Entry{URL: "  "})
	assert.Error(t, err)
	assert.Equal(t, uint64(3), f.svc.View(ctx).Revision)
}

func TestGalleryService_Preview_OutOfRange(t *testing.T) {
	f := newFixture(t, 8)

	_, err := f.svc.Preview(context.Background(), 0)
	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
