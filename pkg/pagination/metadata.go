package pagination

import (
	"net/url"
	"strconv"
)

// Metadata describes where a page sits in the full result set
type Metadata struct {
	TotalHits  int64   `json:"total_hits"`
	TotalPages int64   `json:"total_pages"`
	PrevPage   *string `json:"prev_page"`
	NextPage   *string `json:"next_page"`
}

// BuildMetadata derives page counts and navigation links from the engine's total hit count.
// Links are baseURL plus params with only the page overridden; params is not modified.
func BuildMetadata(totalHits int64, w Window, baseURL string, params url.Values) Metadata {
	if totalHits < 0 {
		totalHits = 0
	}

	var totalPages int64
	if w.Size > 0 {
		size := int64(w.Size)
		totalPages = (totalHits + size - 1) / size
	}

	md := Metadata{
		TotalHits:  totalHits,
		TotalPages: totalPages,
	}

	if w.Page-1 > 0 {
		prev := pageURL(baseURL, params, w.Page-1)
		md.PrevPage = &prev
	}
	if totalPages > int64(w.Page) {
		next := pageURL(baseURL, params, w.Page+1)
		md.NextPage = &next
	}

	return md
}

func pageURL(baseURL string, params url.Values, page int) string {
	q := make(url.Values, len(params)+1)
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	q.Set(PageParam, strconv.Itoa(page))

	return baseURL + "?" + q.Encode()
}
