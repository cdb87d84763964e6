package studio

import (
	"net/http"
	"studio/infras/otel"
	"studio/internal/domains/studio/model/dto"
	"studio/internal/domains/studio/service"
	"studio/shared/constant"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Studio
	otel    otel.Otel
}

func New(service service.Studio, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/studio", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStudio)
		routerGroup.Post("/generate", handler.Generate)
		routerGroup.Post("/publish", handler.Publish)
	})
}

// GetStudio returns the generation workflow state.
// @Summary Get the studio
// @Tags Studio
// @Produce json
// @Success 200 {object} dto.StudioView "Studio view"
// @Router /v1/studio [get]
func (handler *Handler) GetStudio(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStudio")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.View(ctx))
}

// Generate generates an image from a prompt and an optional reference image.
// @Summary Generate an image
// @Tags Studio
// @Accept multipart/form-data
// @Produce json
// @Param prompt formData string true "Prompt"
// @Param image formData file false "Reference image"
// @Success 200 {object} dto.StudioView "Studio view"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/studio/generate [post]
func (handler *Handler) Generate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Generate")
	defer scope.End()

	req := dto.GenerateRequest{}

	if err := req.FromRequest(request); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse generate request")

		response.WithError(writer, err)

		return
	}
	defer req.Close()

	view, err := handler.service.Generate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Image generated successfully")

	response.WithJSON(writer, http.StatusOK, view)
}

// Publish publishes the current result to the gallery.
// @Summary Publish the generated image
// @Tags Studio
// @Produce json
// @Success 200 {object} dto.StudioView "Studio view"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/studio/publish [post]
func (handler *Handler) Publish(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Publish")
	defer scope.End()

	view, err := handler.service.Publish(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to publish image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Image published successfully")

	response.WithJSON(writer, http.StatusOK, view)
}
