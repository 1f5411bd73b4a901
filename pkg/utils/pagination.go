package utils

// Page size bounds for list endpoints.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ClampPerPage falls back to DefaultPerPage for non-positive sizes and caps
// the rest at MaxPerPage.
func ClampPerPage(perPage int) int {
	switch {
	case perPage < 1:
		return DefaultPerPage
	case perPage > MaxPerPage:
		return MaxPerPage
	}
	return perPage
}

// CalculateOffset returns the row offset of a 1-based page. Pages below 1
// read from the start.
func CalculateOffset(page, perPage int) int {
	return (max(page, 1) - 1) * ClampPerPage(perPage)
}

// CalculateTotalPages rounds up. An empty listing has zero pages.
func CalculateTotalPages(total int64, perPage int) int {
	if total <= 0 {
		return 0
	}
	size := int64(ClampPerPage(perPage))
	return int((total + size - 1) / size)
}
