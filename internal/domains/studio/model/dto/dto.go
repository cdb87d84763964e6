package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"studio/internal/domains/studio/model"
	"studio/shared/constant"
	"studio/shared/failure"
)

type GenerateRequest struct {
	Prompt    string                `json:"prompt"`
	Image     *multipart.FileHeader `json:"-"`
	ImageFile multipart.File        `json:"-"`
}

// FromRequest reads the prompt and the optional reference image from a multipart form,
// or the prompt alone from a JSON body. Close must be called once the request is handled.
func (r *GenerateRequest) FromRequest(request *http.Request) error {
	if strings.HasPrefix(request.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeJSON) {
		if err := json.NewDecoder(request.Body).Decode(r); err != nil {
			return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
		}

		return nil
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err))
		}

		if err = request.ParseForm(); err != nil {
			return failure.BadRequest(fmt.Errorf("failed to parse form: %w", err))
		}
	}

	r.Prompt = request.FormValue(constant.FormFieldPrompt)

	file, fileHeader, err := request.FormFile(constant.FormFieldImage)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil
		}

		return failure.BadRequest(fmt.Errorf("failed to get file from form: %w", err))
	}

	r.Image = fileHeader
	r.ImageFile = file

	return nil
}

func (r *GenerateRequest) Close() {
	if r.ImageFile != nil {
		_ = r.ImageFile.Close()
	}
}

// HasReference reports whether a reference image was uploaded with the prompt.
func (r *GenerateRequest) HasReference() bool {
	return r.ImageFile != nil
}

type PublishRequest struct {
	ImageSrc string `validate:"dataurl=image/"`
	Prompt   string
}

type StudioView struct {
	State          string `json:"state"`
	Prompt         string `json:"prompt,omitempty"`
	ImageSrc       string `json:"image_src,omitempty"`
	PublishVisible bool   `json:"publish_visible"`
	Generating     bool   `json:"generating"`
	Publishing     bool   `json:"publishing"`
	PublishedURL   string `json:"published_url,omitempty"`
}

func (v *StudioView) FromModel(workflow model.Workflow) {
	v.State = string(workflow.State)
	v.Prompt = workflow.Prompt
	v.ImageSrc = workflow.ImageSrc
	v.PublishVisible = workflow.State == model.StateResult || workflow.State == model.StatePublishing
	v.Generating = workflow.State == model.StateGenerating
	v.Publishing = workflow.State == model.StatePublishing
	v.PublishedURL = workflow.PublishedURL
}

// ShowResult reports whether the generated image is on screen.
func (v StudioView) ShowResult() bool {
	return v.ImageSrc != "" && !v.Generating
}
