package gallery

import (
	"net/http"
	"studio/infras/otel"
	"studio/internal/domains/gallery/service"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGallery)
		routerGroup.Post("/reload", handler.ReloadGallery)
		routerGroup.Post("/page/{page}", handler.GoToPage)
		routerGroup.Post("/prev", handler.PreviousPage)
		routerGroup.Post("/next", handler.NextPage)
		routerGroup.Get("/preview/{index}", handler.GetPreview)
	})
}

// GetGallery returns the current gallery view.
// @Summary Get the gallery
// @Description Returns the last rendered gallery page with its pager controls.
// @Tags Gallery
// @Produce json
// @Success 200 {object} dto.GalleryView "Gallery view"
// @Router /v1/gallery [get]
func (handler *Handler) GetGallery(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGallery")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.View(ctx))
}

// ReloadGallery reloads the gallery from the backend.
// @Summary Reload the gallery
// @Description Replaces the gallery with the backend listing and returns to page 1.
// @Tags Gallery
// @Produce json
// @Success 200 {object} dto.GalleryView "Gallery view"
// @Failure 502 {object} response.Error
// @Router /v1/gallery/reload [post]
func (handler *Handler) ReloadGallery(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReloadGallery")
	defer scope.End()

	view, err := handler.service.Reload(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reload gallery")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gallery reloaded successfully")

	response.WithJSON(writer, http.StatusOK, view)
}

// GoToPage selects a gallery page.
// @Summary Select a page
// @Tags Gallery
// @Produce json
// @Param page path int true "Page number"
// @Success 200 {object} dto.GalleryView "Gallery view"
// @Failure 400 {object} response.Error
// @Router /v1/gallery/page/{page} [post]
func (handler *Handler) GoToPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GoToPage")
	defer scope.End()

	page, err := gDto.ParsePage(chi.URLParam(request, constant.RequestParamPage))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	view, err := handler.service.GoTo(ctx, page)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("page", page).Msg("failed to select page")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, view)
}

// PreviousPage moves one page back.
// @Summary Previous page
// @Tags Gallery
// @Produce json
// @Success 200 {object} dto.GalleryView "Gallery view"
// @Router /v1/gallery/prev [post]
func (handler *Handler) PreviousPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PreviousPage")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.Previous(ctx))
}

// NextPage moves one page forward.
// @Summary Next page
// @Tags Gallery
// @Produce json
// @Success 200 {object} dto.GalleryView "Gallery view"
// @Router /v1/gallery/next [post]
func (handler *Handler) NextPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".NextPage")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.Next(ctx))
}

// GetPreview returns the preview overlay of one image.
// @Summary Preview an image
// @Tags Gallery
// @Produce json
// @Param index path int true "Absolute gallery index"
// @Success 200 {object} dto.Preview "Preview"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/gallery/preview/{index} [get]
func (handler *Handler) GetPreview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPreview")
	defer scope.End()

	index, err := gDto.ParseIndex(chi.URLParam(request, constant.RequestParamIndex))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	preview, err := handler.service.Preview(ctx, index)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, preview)
}
