// Package query filters, sorts and paginates an in-memory record list.
// Every function is pure: inputs are never modified.
package query

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/AliKaner/mc-case/internal/client/models"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultSortField = "name"
	DefaultPage      = 1
	DefaultLimit     = 10
)

// Options selects one page of a processed record list.
type Options struct {
	Search string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

// Page is one slice of a record list plus pagination metadata.
type Page struct {
	Users       []models.Record `json:"users"`
	TotalPages  int             `json:"totalPages"`
	TotalUsers  int             `json:"totalUsers"`
	CurrentPage int             `json:"currentPage"`
	HasNextPage bool            `json:"hasNextPage"`
	HasPrevPage bool            `json:"hasPrevPage"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	time.DateOnly,
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareValues orders integers before any other value so that a mix of
// numeric and text ids still sorts consistently.
func compareValues(a, b any) int {
	x, aInt := a.(int64)
	y, bInt := b.(int64)
	switch {
	case aInt && bInt:
		return cmp.Compare(x, y)
	case aInt:
		return -1
	case bInt:
		return 1
	}

	as, bs := toString(a), toString(b)
	if ta, ok := parseDate(as); ok {
		if tb, ok := parseDate(bs); ok {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return models.IntID(x).String()
	default:
		return ""
	}
}

// Sort returns a stably sorted copy of records. Integer fields compare
// numerically and sort ahead of text, text fields compare case-insensitively,
// and values that both parse as dates compare chronologically. An unknown field keeps the input order. The
// result is never nil.
func Sort(records []models.Record, field, order string) []models.Record {
	out := make([]models.Record, len(records))
	copy(out, records)
	if field == "" {
		field = DefaultSortField
	}

	sign := 1
	if strings.EqualFold(order, OrderDesc) {
		sign = -1
	}

	slices.SortStableFunc(out, func(a, b models.Record) int {
		av, aok := a.Field(field)
		bv, bok := b.Field(field)
		if !aok || !bok {
			return 0
		}
		return sign * compareValues(av, bv)
	})
	return out
}

// Filter keeps records whose name, email, username or phone contains term,
// ignoring case. A blank term returns records as given.
func Filter(records []models.Record, term string) []models.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if records == nil || term == "" {
		return records
	}

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		for _, v := range []string{r.Name, r.Email, r.Username, r.Phone} {
			if strings.Contains(strings.ToLower(v), term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Paginate returns page number page of records, limit per page. A limit
// below one falls back to DefaultLimit. Out of range pages are empty and
// keep the requested page number.
func Paginate(records []models.Record, page, limit int) Page {
	if limit < 1 {
		limit = DefaultLimit
	}
	if records == nil {
		return Page{Users: []models.Record{}, CurrentPage: page}
	}

	total := len(records)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	users := []models.Record{}
	if page >= 1 && page <= totalPages {
		start := (page - 1) * limit
		end := min(start+limit, total)
		users = slices.Clone(records[start:end])
	}

	return Page{
		Users:       users,
		TotalPages:  totalPages,
		TotalUsers:  total,
		CurrentPage: page,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Process filters, then sorts, then paginates.
func Process(records []models.Record, opts Options) Page {
	if records == nil {
		records = []models.Record{}
	}
	if strings.TrimSpace(opts.Search) != "" {
		records = Filter(records, opts.Search)
	}
	sorted := Sort(records, opts.Sort, opts.Order)

	page := opts.Page
	if page == 0 {
		page = DefaultPage
	}
	return Paginate(sorted, page, opts.Limit)
}

// ParseSortKey splits a combined key such as "name-desc" into field and
// order. A key without a valid order suffix sorts ascending.
func ParseSortKey(key string) (field, order string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultSortField, OrderAsc
	}
	if i := strings.LastIndex(key, "-"); i > 0 {
		switch o := strings.ToLower(key[i+1:]); o {
		case OrderAsc, OrderDesc:
			return key[:i], o
		}
	}
	return key, OrderAsc
}
