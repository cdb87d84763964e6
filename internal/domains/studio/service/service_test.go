package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"studio/config"
	"studio/infras/backend"
	backendMocks "studio/infras/backend/mocks"
	"studio/infras/otel/mocks"
	"studio/infras/socket"
	"studio/internal/domains/gallery/listener"
	galleryMocks "studio/internal/domains/gallery/mocks"
	galleryDto "studio/internal/domains/gallery/model/dto"
	notificationMocks "studio/internal/domains/notification/mocks"
	notificationModel "studio/internal/domains/notification/model"
	"studio/internal/domains/studio/encoder"
	studioMocks "studio/internal/domains/studio/mocks"
	"studio/internal/domains/studio/model"
	"studio/internal/domains/studio/model/dto"
	"studio/internal/domains/studio/service"
	"studio/shared/event"
	"studio/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      service.Studio
	backend  *backendMocks.MockClient
	gallery  *galleryMocks.MockGallery
	notifier *notificationMocks.MockNotification
	encoder  *studioMocks.MockEncoder
}

type liveStatus struct {
	connected bool
}

func (l liveStatus) Run(context.Context) error { return nil }

func (l liveStatus) Handle(context.Context, event.Event) {}

func (l liveStatus) Connected() bool { return l.connected }

func newFixture(t *testing.T, connected bool) fixture {
	return newFixtureWithLive(t, liveStatus{connected: connected})
}

func newFixtureWithLive(t *testing.T, live listener.Listener) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		backend:  backendMocks.NewMockClient(ctrl),
		gallery:  galleryMocks.NewMockGallery(ctrl),
		notifier: notificationMocks.NewMockNotification(ctrl),
		encoder:  studioMocks.NewMockEncoder(ctrl),
	}

	f.svc = service.New(f.backend, f.gallery, f.notifier, f.encoder, live, mocks.NewOtel())

	return f
}

func resultOf(res encoder.Result) <-chan encoder.Result {
	ch := make(chan encoder.Result, 1)
	ch <- res
	close(ch)

	return ch
}

// memFile satisfies multipart.File for uploads held in memory.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error {
	return nil
}

var _ multipart.File = memFile{}

func (f fixture) generated(t *testing.T) {
	t.Helper()

	f.backend.EXPECT().GenerateImage(gomock.Any(), "a red fox").Return("Zm9v", nil)
	f.notifier.EXPECT().Success(gomock.Any(), service.MessageGenerated).Return(notificationModel.Notice{})

	_, err := f.svc.Generate(context.Background(), dto.GenerateRequest{Prompt: "a red fox"})
	require.NoError(t, err)
}

func TestStudioService_InitialView(t *testing.T) {
	f := newFixture(t, false)

	view := f.svc.View(context.Background())
	assert.Equal(t, string(model.StateIdle), view.State)
	assert.False(t, view.PublishVisible)
}

func TestStudioService_Generate(t *testing.T) {
	tests := []struct {
		name         string
		req          dto.GenerateRequest
		setupMock    func(f fixture)
		wantErr      bool
		wantCode     int
		wantState    model.State
		wantImageSrc string
	}{
		{
			name: "empty prompt never reaches the backend",
			req:  dto.GenerateRequest{Prompt: "   "},
			setupMock: func(f fixture) {
				f.notifier.EXPECT().Error(gomock.Any(), service.MessageEmptyPrompt).Return(notificationModel.Notice{})
			},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
			wantState: model.StateIdle,
		},
		{
			name: "text only success",
			req:  dto.GenerateRequest{Prompt: "  a red fox "},
			setupMock: func(f fixture) {
				f.backend.EXPECT().GenerateImage(gomock.Any(), "a red fox").Return("Zm9v", nil)
				f.notifier.EXPECT().Success(gomock.Any(), service.MessageGenerated).Return(notificationModel.Notice{})
			},
			wantState:    model.StateResult,
			wantImageSrc: "data:image/png;base64,Zm9v",
		},
		{
			name: "backend error message is shown verbatim",
			req:  dto.GenerateRequest{Prompt: "a red fox"},
			setupMock: func(f fixture) {
				f.backend.EXPECT().GenerateImage(gomock.Any(), "a red fox").
					Return("", &backend.Error{StatusCode: http.StatusOK, Message: "quota exceeded"})
				f.notifier.EXPECT().Error(gomock.Any(), "quota exceeded").Return(notificationModel.Notice{})
			},
			wantErr:   true,
			wantCode:  http.StatusBadGateway,
			wantState: model.StateIdle,
		},
		{
			name: "transport error falls back to the generic message",
			req:  dto.GenerateRequest{Prompt: "a red fox"},
			setupMock: func(f fixture) {
				f.backend.EXPECT().GenerateImage(gomock.Any(), "a red fox").
					Return("", &backend.Error{Err: errors.New("connection refused")})
				f.notifier.EXPECT().Error(gomock.Any(), service.MessageGenerateFailed).Return(notificationModel.Notice{})
			},
			wantErr:   true,
			wantCode:  http.StatusBadGateway,
			wantState: model.StateIdle,
		},
		{
			name: "reference image goes to the text and image endpoint",
			req:  dto.GenerateRequest{Prompt: "a red fox", ImageFile: memFile{bytes.NewReader([]byte("png"))}},
			setupMock: func(f fixture) {
				f.encoder.EXPECT().Encode(gomock.Any(), gomock.Any()).
					Return(resultOf(encoder.Result{Base64: "cmVm", ContentType: "image/png"}))
				f.backend.EXPECT().GenerateImageFromTextAndImage(gomock.Any(), "a red fox", "cmVm").Return("YmFy", nil)
				f.notifier.EXPECT().Success(gomock.Any(), service.MessageGenerated).Return(notificationModel.Notice{})
			},
			wantState:    model.StateResult,
			wantImageSrc: "data:image/png;base64,YmFy",
		},
		{
			name: "unreadable reference image",
			req:  dto.GenerateRequest{Prompt: "a red fox", ImageFile: memFile{bytes.NewReader(nil)}},
			setupMock: func(f fixture) {
				f.encoder.EXPECT().Encode(gomock.Any(), gomock.Any()).Return(resultOf(encoder.Result{Err: encoder.ErrRead}))
				f.notifier.EXPECT().Error(gomock.Any(), service.MessageUnreadableUpload).Return(notificationModel.Notice{})
			},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
			wantState: model.StateIdle,
		},
		{
			name: "reference that is not an image",
			req:  dto.GenerateRequest{Prompt: "a red fox", ImageFile: memFile{bytes.NewReader([]byte("text"))}},
			setupMock: func(f fixture) {
				notImage := &encoder.NotImageError{ContentType: "text/plain"}
				f.encoder.EXPECT().Encode(gomock.Any(), gomock.Any()).Return(resultOf(encoder.Result{Err: notImage}))
				f.notifier.EXPECT().Error(gomock.Any(), notImage.Error()).Return(notificationModel.Notice{})
			},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
			wantState: model.StateIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			tt.setupMock(f)

			view, err := f.svc.Generate(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, string(tt.wantState), view.State)
			assert.Equal(t, tt.wantImageSrc, view.ImageSrc)
			assert.Equal(t, tt.wantState == model.StateResult, view.PublishVisible)
		})
	}
}

func TestStudioService_Generate_RejectsConcurrent(t *testing.T) {
	f := newFixture(t, false)

	release := make(chan struct{})
	started := make(chan struct{})

	f.backend.EXPECT().GenerateImage(gomock.Any(), "first").DoAndReturn(func(context.Context, string) (string, error) {
		close(started)
		<-release

		return "Zm9v", nil
	})
	f.notifier.EXPECT().Error(gomock.Any(), service.MessageGenerating).Return(notificationModel.Notice{})
	f.notifier.EXPECT().Success(gomock.Any(), service.MessageGenerated).Return(notificationModel.Notice{})

	done := make(chan error, 1)

	go func() {
		_, err := f.svc.Generate(context.Background(), dto.GenerateRequest{Prompt: "first"})
		done <- err
	}()

	<-started

	view, err := f.svc.Generate(context.Background(), dto.GenerateRequest{Prompt: "second"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.True(t, view.Generating)

	close(release)
	require.NoError(t, <-done)

	// the latch is released after completion
	f.backend.EXPECT().GenerateImage(gomock.Any(), "third").Return("", errors.New("boom"))
	f.notifier.EXPECT().Error(gomock.Any(), service.MessageGenerateFailed).Return(notificationModel.Notice{})

	_, err = f.svc.Generate(context.Background(), dto.GenerateRequest{Prompt: "third"})
	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
}

func TestStudioService_Publish_NothingToPublish(t *testing.T) {
	f := newFixture(t, false)

	f.notifier.EXPECT().Error(gomock.Any(), service.MessageNothingToPublish).Return(notificationModel.Notice{})

	_, err := f.svc.Publish(context.Background())
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestStudioService_Publish(t *testing.T) {
	tests := []struct {
		name      string
		connected bool
		setupMock func(f fixture)
		wantErr   bool
		wantState model.State
		wantURL   string
	}{
		{
			name:      "success without a live channel reloads once",
			connected: false,
			setupMock: func(f fixture) {
				f.backend.EXPECT().PublishImage(gomock.Any(), "Zm9v", "a red fox").Return("https://cdn/x.png", nil)
				f.notifier.EXPECT().Success(gomock.Any(), service.MessagePublished).Return(notificationModel.Notice{})
				f.gallery.EXPECT().Reload(gomock.Any()).Return(galleryDto.GalleryView{}, nil).Times(1)
			},
			wantState: model.StatePublished,
			wantURL:   "https://cdn/x.png",
		},
		{
			name:      "success with a subscribed channel relies on the push",
			connected: true,
			setupMock: func(f fixture) {
				f.backend.EXPECT().PublishImage(gomock.Any(), "Zm9v", "a red fox").Return("https://cdn/x.png", nil)
				f.notifier.EXPECT().Success(gomock.Any(), service.MessagePublished).Return(notificationModel.Notice{})
			},
			wantState: model.StatePublished,
			wantURL:   "https://cdn/x.png",
		},
		{
			name:      "backend error keeps the result publishable",
			connected: false,
			setupMock: func(f fixture) {
				f.backend.EXPECT().PublishImage(gomock.Any(), "Zm9v", "a red fox").
					Return("", &backend.Error{StatusCode: http.StatusRequestEntityTooLarge, Message: "too big"})
				f.notifier.EXPECT().Error(gomock.Any(), "too big").Return(notificationModel.Notice{})
			},
			wantErr:   true,
			wantState: model.StateResult,
		},
		{
			name:      "transport error uses the generic message",
			connected: false,
			setupMock: func(f fixture) {
				f.backend.EXPECT().PublishImage(gomock.Any(), "Zm9v", "a red fox").Return("", errors.New("timeout"))
				f.notifier.EXPECT().Error(gomock.Any(), service.MessagePublishFailed).Return(notificationModel.Notice{})
			},
			wantErr:   true,
			wantState: model.StateResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.connected)
			f.generated(t)
			tt.setupMock(f)

			view, err := f.svc.Publish(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, view.PublishVisible)
			} else {
				assert.NoError(t, err)
				assert.False(t, view.PublishVisible)
			}

			assert.Equal(t, string(tt.wantState), view.State)
			assert.Equal(t, tt.wantURL, view.PublishedURL)
		})
	}
}

func TestStudioService_Publish_AfterPublished(t *testing.T) {
	f := newFixture(t, true)
	f.generated(t)

	f.backend.EXPECT().PublishImage(gomock.Any(), "Zm9v", "a red fox").Return("https://cdn/x.png", nil)
	f.notifier.EXPECT().Success(gomock.Any(), service.MessagePublished).Return(notificationModel.Notice{})

	_, err := f.svc.Publish(context.Background())
	require.NoError(t, err)

	f.notifier.EXPECT().Error(gomock.Any(), service.MessageNothingToPublish).Return(notificationModel.Notice{})

	_, err = f.svc.Publish(context.Background())
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestStudioService_Publish_DoesNotClobberNewerGeneration(t *testing.T) {
	f := newFixture(t, true)
	f.generated(t)

	release := make(chan struct{})
	started := make(chan struct{})

	f.backend.EXPECT().PublishImage(gomock.Any(), "Zm9v", "a red fox").
		DoAndReturn(func(context.Context, string, string) (string, error) {
			close(started)
			<-release

			return "https://cdn/x.png", nil
		})
	f.notifier.EXPECT().Success(gomock.Any(), service.MessagePublished).Return(notificationModel.Notice{})

	done := make(chan dto.StudioView, 1)

	go func() {
		view, _ := f.svc.Publish(context.Background())
		done <- view
	}()

	<-started

	f.backend.EXPECT().GenerateImage(gomock.Any(), "a blue whale").Return("d2hhbGU=", nil)
	f.notifier.EXPECT().Success(gomock.Any(), service.MessageGenerated).Return(notificationModel.Notice{})

	_, err := f.svc.Generate(context.Background(), dto.GenerateRequest{Prompt: "a blue whale"})
	require.NoError(t, err)

	close(release)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("publish did not complete")
	}

	view := f.svc.View(context.Background())
	assert.Equal(t, string(model.StateResult), view.State)
	assert.Equal(t, "data:image/png;base64,d2hhbGU=", view.ImageSrc)
	assert.Equal(t, "a blue whale", view.Prompt)
	assert.Empty(t, view.PublishedURL)
}

func TestStudioService_Publish_RejectsConcurrent(t *testing.T) {
	f := newFixture(t, true)
	f.generated(t)

	release := make(chan struct{})
	started := make(chan struct{})

	f.backend.EXPECT().PublishImage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (string, error) {
			close(started)
			<-release

			return "https://cdn/x.png", nil
		})
	f.notifier.EXPECT().Error(gomock.Any(), service.MessagePublishing).Return(notificationModel.Notice{})
	f.notifier.EXPECT().Success(gomock.Any(), service.MessagePublished).Return(notificationModel.Notice{})

	done := make(chan error, 1)

	go func() {
		_, err := f.svc.Publish(context.Background())
		done <- err
	}()

	<-started

	view, err := f.svc.Publish(context.Background())
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.True(t, view.Publishing)

	close(release)
	assert.NoError(t, <-done)
}

func TestStudioService_Publish_ReloadsWhenSocketNeverSubscribed(t *testing.T) {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = "http://127.0.0.1:1"
	cfg.Live.Transport = config.LiveTransportWebsocket
	cfg.Live.SocketPath = "/socket.io/"
	cfg.Live.Event = "new-image"

	ctrl := gomock.NewController(t)
	gallery := galleryMocks.NewMockGallery(ctrl)
	notifier := notificationMocks.NewMockNotification(ctrl)

	live := listener.New(cfg, socket.New(cfg), gallery, notifier, mocks.NewOtel())
	require.False(t, live.Connected())

	f := newFixtureWithLive(t, live)
	f.generated(t)

	f.backend.EXPECT().PublishImage(gomock.Any(), "Zm9v", "a red fox").Return("https://cdn/x.png", nil)
	f.notifier.EXPECT().Success(gomock.Any(), service.MessagePublished).Return(notificationModel.Notice{})
	f.gallery.EXPECT().Reload(gomock.Any()).Return(galleryDto.GalleryView{Total: 1}, nil).Times(1)

	view, err := f.svc.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, string(model.StatePublished), view.State)
}
