// Package pagination computes page counts, slice bounds and pager controls for
// the gallery. Every function is pure.
package pagination

import (
	"strconv"
	"studio/internal/domains/gallery/model/dto"
	"studio/shared"
	"studio/shared/failure"
)

const (
	LabelPrev = "Prev"
	LabelNext = "Next"
)

// TotalPages is max(1, ceil(count/size)).
func TotalPages(count, size int) int {
	return shared.CalculateTotalPage(count, size)
}

// Bounds returns the [start, end) range of the given page, clipped to count.
func Bounds(page, size, count int) (start, end int) {
	if page < 1 || size < 1 {
		return 0, 0
	}

	start = min((page-1)*size, count)
	end = min(start+size, count)

	return start, end
}

// Clamp moves page into 1..total.
func Clamp(page, total int) int {
	return max(1, min(page, max(total, 1)))
}

// ControlLayout returns prev, one control per page and next. A single page gets no controls.
func ControlLayout(current, total int) []dto.Control {
	if total <= 1 {
		return []dto.Control{}
	}

	controls := make([]dto.Control, 0, total+2)

	controls = append(controls, dto.Control{
		Kind:     dto.ControlPrev,
		Label:    LabelPrev,
		Page:     max(current-1, 1),
		Disabled: current == 1,
	})

	for i := 1; i <= total; i++ {
		controls = append(controls, dto.Control{
			Kind:     dto.ControlPage,
			Label:    strconv.Itoa(i),
			Page:     i,
			Active:   i == current,
			Disabled: i == current,
		})
	}

	controls = append(controls, dto.Control{
		Kind:     dto.ControlNext,
		Label:    LabelNext,
		Page:     min(current+1, total),
		Disabled: current == total,
	})

	return controls
}

// Previous returns the page before current and whether that is a change.
func Previous(current int) (int, bool) {
	if current <= 1 {
		return current, false
	}

	return current - 1, true
}

// Next returns the page after current and whether that is a change.
func Next(current, total int) (int, bool) {
	if current >= total {
		return current, false
	}

	return current + 1, true
}

// Select validates a direct page selection. Choosing the active page is not a change.
func Select(page, current, total int) (int, bool, error) {
	if page < 1 || page > max(total, 1) {
		return current, false, failure.InvalidPageParam
	}

	return page, page != current, nil
}
