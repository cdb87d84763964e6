//go:generate mockgen -source=backend.go -destination=mocks/backend_mock.go -package=mocks
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"studio/config"
	"studio/infras/otel"
	"studio/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	pathListImages               = "/list-images"
	pathGenerateImage            = "/generate-image"
	pathGenerateImageFromTextAnd = "/generate-image-from-text-and-image"
	pathPublishImage             = "/publish-image"

	maxResponseBytes = 32 << 20
)

type Client interface {
	ListImages(ctx context.Context) ([]Image, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	GenerateImageFromTextAndImage(ctx context.Context, prompt, imageBase64 string) (string, error)
	PublishImage(ctx context.Context, base64Image, prompt string) (string, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
	otel       otel.Otel
}

func New(config *config.Config, otel otel.Otel) Client {
	httpClient := &http.Client{}
	if config.Backend.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(config.Backend.TimeoutSeconds) * time.Second
	}

	return &clientImpl{
		baseURL:    strings.TrimRight(config.Backend.BaseURL, "/"),
		httpClient: httpClient,
		otel:       otel,
	}
}

func (c *clientImpl) ListImages(ctx context.Context) (images []Image, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".ListImages")
	defer scope.End()
	defer scope.TraceIfError(err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathListImages, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to create list images request")

		return nil, &Error{Err: err}
	}

	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	var res listResponse

	status, err := c.do(req, &res)
	if err != nil {
		return nil, err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		err = &Error{StatusCode: status, Message: res.Error, Err: fmt.Errorf("server responded with %d", status)}
		log.Error().Err(err).Msg("failed to list images")

		return nil, err
	}

	scope.SetAttribute("backend.images", len(res.Images))

	return res.Images, nil
}

func (c *clientImpl) GenerateImage(ctx context.Context, prompt string) (imageBase64 string, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".GenerateImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	return c.generate(ctx, pathGenerateImage, generateRequest{Prompt: prompt})
}

func (c *clientImpl) GenerateImageFromTextAndImage(ctx context.Context, prompt, imageBase64 string) (result string, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName,
		constant.OtelExternalScopeName+".GenerateImageFromTextAndImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	return c.generate(ctx, pathGenerateImageFromTextAnd, generateRequest{Prompt: prompt, Image: imageBase64})
}

func (c *clientImpl) PublishImage(ctx context.Context, base64Image, prompt string) (url string, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".PublishImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	req, err := c.jsonRequest(ctx, pathPublishImage, publishRequest{Base64Image: base64Image, Prompt: prompt})
	if err != nil {
		return "", err
	}

	var res publishResponse

	status, err := c.do(req, &res)
	if err != nil {
		return "", err
	}

	// the backend signals success by the presence of url, regardless of status
	if res.URL == "" {
		err = &Error{StatusCode: status, Message: res.Error}
		log.Error().Err(err).Msg("failed to publish image")

		return "", err
	}

	return res.URL, nil
}

func (c *clientImpl) generate(ctx context.Context, path string, body generateRequest) (string, error) {
	req, err := c.jsonRequest(ctx, path, body)
	if err != nil {
		return "", err
	}

	var res generateResponse

	status, err := c.do(req, &res)
	if err != nil {
		return "", err
	}

	if res.ImageBase64 == "" {
		err = &Error{StatusCode: status, Message: res.Error}
		log.Error().Err(err).Str("path", path).Msg("failed to generate image")

		return "", err
	}

	return res.ImageBase64, nil
}

func (c *clientImpl) jsonRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to encode request body")

		return nil, &Error{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to create request")

		return nil, &Error{Err: err}
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	return req, nil
}

// do sends req and decodes the JSON body into out. A body that is not JSON is a
// transport error even when the status is 2xx.
func (c *clientImpl) do(req *http.Request, out any) (int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", req.URL.Path).Msg("backend request failed")

		return 0, &Error{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error().Err(err).Str("path", req.URL.Path).Msg("failed to read backend response")

		return resp.StatusCode, &Error{StatusCode: resp.StatusCode, Err: err}
	}

	if err = json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Str("path", req.URL.Path).
			Msg("failed to decode backend response")

		return resp.StatusCode, &Error{StatusCode: resp.StatusCode, Err: err}
	}

	return resp.StatusCode, nil
}
