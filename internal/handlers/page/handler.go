// Package page serves the server-rendered studio page and its form actions. Every
// action redirects back to the page, outcomes are reported through notices.
package page

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"studio/config"
	"studio/infras/otel"
	galleryDto "studio/internal/domains/gallery/model/dto"
	gallery "studio/internal/domains/gallery/service"
	notificationDto "studio/internal/domains/notification/model/dto"
	notification "studio/internal/domains/notification/service"
	studioDto "studio/internal/domains/studio/model/dto"
	studio "studio/internal/domains/studio/service"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	pathHome = "/"

	autoRefreshSeconds = 15
)

//go:embed templates/index.html
var templates embed.FS

var index = template.Must(template.ParseFS(templates, "templates/index.html"))

type pageData struct {
	AppName     string
	AutoRefresh int
	Studio      studioDto.StudioView
	ResultSrc   template.URL
	Gallery     galleryDto.GalleryView
	Preview     *galleryDto.Preview
	Notices     []notificationDto.NoticeResponse
}

type Handler struct {
	config   *config.Config
	gallery  gallery.Gallery
	studio   studio.Studio
	notifier notification.Notification
	otel     otel.Otel
}

func New(
	config *config.Config,
	gallery gallery.Gallery,
	studio studio.Studio,
	notifier notification.Notification,
	otel otel.Otel,
) Handler {
	return Handler{
		config:   config,
		gallery:  gallery,
		studio:   studio,
		notifier: notifier,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(pathHome, handler.Index)
	router.Post("/generate", handler.Generate)
	router.Post("/publish", handler.Publish)

	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Post("/reload", handler.Reload)
		routerGroup.Post("/page/{page}", handler.GoToPage)
		routerGroup.Post("/prev", handler.PreviousPage)
		routerGroup.Post("/next", handler.NextPage)
	})
}

func (handler *Handler) Index(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Index")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request)

	data := pageData{
		AppName: handler.config.App.Name,
		Studio:  handler.studio.View(ctx),
		Gallery: handler.gallery.View(ctx),
	}

	if strings.HasPrefix(data.Studio.ImageSrc, constant.DataURLPrefixPNG) {
		data.ResultSrc = template.URL(data.Studio.ImageSrc) //nolint:gosec
	}

	if handler.config.LiveUpdatesEnabled() || data.Studio.Generating || data.Studio.Publishing {
		data.AutoRefresh = autoRefreshSeconds
	}

	if queryParams.Preview != nil {
		if preview, err := handler.gallery.Preview(ctx, *queryParams.Preview); err == nil {
			data.Preview = &preview
		}
	}

	notices := notificationDto.NotificationsResponse{}
	notices.FromModels(handler.notifier.Active(ctx))
	data.Notices = notices.Notices

	var body bytes.Buffer
	if err := index.Execute(&body, data); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render page")

		response.WithError(writer, err)

		return
	}

	response.WithHTML(writer, http.StatusOK, body.Bytes())
}

func (handler *Handler) Generate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PageGenerate")
	defer scope.End()

	req := studioDto.GenerateRequest{}

	if err := req.FromRequest(request); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse generate form")
		handler.notifier.Error(ctx, err.Error())

		response.SeeOther(writer, request, pathHome)

		return
	}
	defer req.Close()

	// failures are already reported as notices
	if _, err := handler.studio.Generate(ctx, req); err != nil {
		scope.TraceError(err)
	}

	response.SeeOther(writer, request, pathHome)
}

func (handler *Handler) Publish(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PagePublish")
	defer scope.End()

	if _, err := handler.studio.Publish(ctx); err != nil {
		scope.TraceError(err)
	}

	response.SeeOther(writer, request, pathHome)
}

func (handler *Handler) Reload(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PageReload")
	defer scope.End()

	if _, err := handler.gallery.Reload(ctx); err != nil {
		scope.TraceError(err)
	}

	response.SeeOther(writer, request, pathHome)
}

func (handler *Handler) GoToPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PageGoToPage")
	defer scope.End()

	page, err := gDto.ParsePage(chi.URLParam(request, constant.RequestParamPage))
	if err == nil {
		_, err = handler.gallery.GoTo(ctx, page)
	}

	if err != nil {
		scope.TraceError(err)
		handler.notifier.Error(ctx, err.Error())
	}

	response.SeeOther(writer, request, pathHome)
}

func (handler *Handler) PreviousPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PagePreviousPage")
	defer scope.End()

	handler.gallery.Previous(ctx)

	response.SeeOther(writer, request, pathHome)
}

func (handler *Handler) NextPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PageNextPage")
	defer scope.End()

	handler.gallery.Next(ctx)

	response.SeeOther(writer, request, pathHome)
}
