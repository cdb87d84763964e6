package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Image is one listing item. Older deployments return bare url strings, newer ones
// return {url, prompt} objects.
type Image struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt,omitempty"`
}

func (i *Image) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*i = Image{URL: url}

		return nil
	}

	type plain Image

	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("image is neither a string nor an object: %w", err)
	}

	*i = Image(obj)

	return nil
}

type listResponse struct {
	Images []Image `json:"images"`
	Error  string  `json:"error"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Image  string `json:"image,omitempty"`
}

type generateResponse struct {
	ImageBase64 string `json:"imageBase64"`
	Error       string `json:"error"`
}

type publishRequest struct {
	Base64Image string `json:"base64Image"`
	Prompt      string `json:"prompt,omitempty"`
}

type publishResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Error is returned by every Client method. Message holds the backend's own error
// field and is empty when the backend did not provide one.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.StatusCode != 0:
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	default:
		return "backend request failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the backend provided error text of err, or fallback when there is none.
func Message(err error, fallback string) string {
	var backendErr *Error
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}

	return fallback
}
