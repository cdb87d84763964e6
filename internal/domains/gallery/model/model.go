package model

import (
	"strings"
	"studio/infras/backend"
)

const (
	EntityName = "gallery"

	FieldURL    = "url"
	FieldPrompt = "prompt"
)

// Entry is one published image.
type Entry struct {
	URL    string `json:"url"              validate:"notblank"`
	Prompt string `json:"prompt,omitempty"`
}

func (e Entry) HasCaption() bool {
	return strings.TrimSpace(e.Prompt) != ""
}

func FromBackend(images []backend.Image) []Entry {
	entries := make([]Entry, 0, len(images))

	for _, image := range images {
		entries = append(entries, Entry{URL: image.URL, Prompt: image.Prompt})
	}

	return entries
}

// Pagination is the page the user is looking at. CurrentPage is 1-based.
type Pagination struct {
	CurrentPage int
	PageSize    int
}
