package dto

import (
	"net/http"
	"strconv"
	"studio/shared/failure"
)

const (
	QueryParamPreview = "preview"
)

type QueryParams struct {
	// Preview is the absolute gallery index whose overlay is open, nil when closed.
	Preview *int `json:"preview,omitempty"`
}

// FromRequest populates QueryParams from the HTTP request. Malformed values are ignored.
func (q *QueryParams) FromRequest(r *http.Request) {
	if preview := r.URL.Query().Get(QueryParamPreview); preview != "" {
		if index, err := strconv.Atoi(preview); err == nil && index >= 0 {
			q.Preview = &index
		}
	}
}

// ParsePage parses a 1-based page number.
func ParsePage(raw string) (int, error) {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, failure.InvalidPageParam
	}

	return page, nil
}

// ParseIndex parses a 0-based gallery index.
func ParseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, failure.InvalidIndexParam
	}

	return index, nil
}
