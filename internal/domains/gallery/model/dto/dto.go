package dto

const (
	ControlPrev = "prev"
	ControlPage = "page"
	ControlNext = "next"
)

type Preview struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Prompt string `json:"prompt,omitempty"`
}

// Unit is one visible thumbnail. Index is absolute within the gallery.
type Unit struct {
	Index      int     `json:"index"`
	URL        string  `json:"url"`
	Prompt     string  `json:"prompt,omitempty"`
	HasCaption bool    `json:"has_caption"`
	Preview    Preview `json:"preview"`
}

type Control struct {
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	Page     int    `json:"page"`
	Active   bool   `json:"active"`
	Disabled bool   `json:"disabled"`
}

// GalleryView is the complete rendered gallery. A new view replaces the previous one.
type GalleryView struct {
	Units       []Unit    `json:"units"`
	Placeholder string    `json:"placeholder,omitempty"`
	Controls    []Control `json:"controls"`
	CurrentPage int       `json:"current_page"`
	TotalPages  int       `json:"total_pages"`
	Total       int       `json:"total"`
	Revision    uint64    `json:"revision"`
}

// PageNumbers returns the page controls only, for templates that lay out prev/next separately.
func (v GalleryView) PageNumbers() []Control {
	res := make([]Control, 0, len(v.Controls))

	for _, c := range v.Controls {
		if c.Kind == ControlPage {
			res = append(res, c)
		}
	}

	return res
}
