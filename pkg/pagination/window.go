package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Window is the resolved slice of ranked results a search request asks for.
// Size always equals Limit; Offset is the number of hits to skip.
type Window struct {
	Limit  int `json:"limit"`
	Page   int `json:"page"`
	Size   int `json:"size"`
	Offset int `json:"offset"`
}

// ResolveWindow turns raw, possibly absent limit/page values into a window.
// Out-of-range input degrades to defaults instead of failing:
//   - limit is kept only when 0 < limit < MaxLimit, otherwise DefaultLimit
//   - page defaults to DefaultPage when absent or below 1
//   - page is capped so the offset fits in an int
func ResolveWindow(rawLimit, rawPage *int) Window {
	limit := DefaultLimit
	if rawLimit != nil && *rawLimit > 0 && *rawLimit < MaxLimit {
		limit = *rawLimit
	}

	page := DefaultPage
	if rawPage != nil && *rawPage >= 1 {
		page = *rawPage
	}

	size := limit
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}
	return Window{
		Limit:  limit,
		Page:   page,
		Size:   size,
		Offset: (page - 1) * size,
	}
}

// ParseOptionalInt parses a query parameter value by its leading integer, so "2.5" is 2 and "30abc" is 30.
// Input without leading digits yields nil so the resolver falls back to its defaults.
// Values beyond the int range saturate.
func ParseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)

	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}

	v, err := strconv.ParseInt(raw[:end], 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil
	}
	n := int(v)
	return &n
}
