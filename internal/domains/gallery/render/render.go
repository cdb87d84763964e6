// Package render projects the gallery state into a view.
package render

import (
	"studio/internal/domains/gallery/model"
	"studio/internal/domains/gallery/model/dto"
	"studio/internal/domains/gallery/pagination"
	"studio/internal/domains/gallery/store"
)

const Placeholder = "The gallery is empty. Create something!"

// Units builds one unit per entry. offset is the absolute index of slice[0].
func Units(slice []model.Entry, offset int) []dto.Unit {
	units := make([]dto.Unit, 0, len(slice))

	for i, entry := range slice {
		units = append(units, dto.Unit{
			Index:      offset + i,
			URL:        entry.URL,
			Prompt:     entry.Prompt,
			HasCaption: entry.HasCaption(),
			Preview:    Preview(entry, offset+i),
		})
	}

	return units
}

// Preview fills the overlay from an entry.
func Preview(entry model.Entry, index int) dto.Preview {
	return dto.Preview{
		Index:  index,
		URL:    entry.URL,
		Prompt: entry.Prompt,
	}
}

// Render builds the full view of the current page. The current page is clamped into
// range and the clamped value is reported in the view.
func Render(s *store.Store, state model.Pagination, revision uint64) dto.GalleryView {
	total := s.Size()
	totalPages := pagination.TotalPages(total, state.PageSize)
	current := pagination.Clamp(state.CurrentPage, totalPages)
	start, _ := pagination.Bounds(current, state.PageSize, total)

	view := dto.GalleryView{
		Units:       Units(s.Page(current, state.PageSize), start),
		Controls:    pagination.ControlLayout(current, totalPages),
		CurrentPage: current,
		TotalPages:  totalPages,
		Total:       total,
		Revision:    revision,
	}

	if total == 0 {
		view.Placeholder = Placeholder
	}

	return view
}
