package pagination

// DefaultLimit is the page size used when the requested limit is missing or out of range
const DefaultLimit = 20

// MaxLimit is the exclusive upper bound for a requested limit
const MaxLimit = 100

// DefaultPage is the page used when none is requested
const DefaultPage = 1

// PageParam is the query parameter carrying the page number in paging links
const PageParam = "page"
