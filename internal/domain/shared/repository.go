package shared

// Filter holds common listing parameters applied by repositories.
// Zero values mean "no constraint"; repositories apply their own defaults.
type Filter struct {
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string // asc or desc
}

// DefaultFilter returns a filter with sensible listing defaults
func DefaultFilter() Filter {
	return Filter{
		Limit:    50,
		Offset:   0,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Normalize clamps the filter to safe bounds
func (f Filter) Normalize(maxLimit int) Filter {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if maxLimit > 0 && f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.OrderDir != "asc" && f.OrderDir != "desc" {
		f.OrderDir = "desc"
	}
	return f
}
