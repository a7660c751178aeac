// Package query composes free-text search, field filtering and offset
// pagination from request query parameters into a single gorm query.
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const DefaultPerPage = 10

// Control parameters consumed by Search and Paginate; never forwarded as
// filter criteria.
var reservedKeys = map[string]bool{
	"keyword": true,
	"page":    true,
	"limit":   true,
}

var (
	operatorPattern = regexp.MustCompile(`^([a-z][a-z0-9_]*)\[(gt|gte|lt|lte)\]$`)

	operatorSQL = map[string]string{
		"gt":  ">",
		"gte": ">=",
		"lt":  "<",
		"lte": "<=",
	}
)

// Features applies search, filter and pagination stages to a base query, in
// that order. Each stage narrows the query built by the previous one; the
// composed query is not executed until the caller runs it.
type Features struct {
	db     *gorm.DB
	params url.Values
}

func New(db *gorm.DB, params url.Values) *Features {
	return &Features{db: db, params: params}
}

// Search adds a case-insensitive substring match on field when the "keyword"
// parameter is present. An absent keyword matches everything.
func (f *Features) Search(field string) *Features {
	keyword := strings.TrimSpace(f.params.Get("keyword"))
	if keyword != "" {
		f.db = f.db.Where(fmt.Sprintf("%s ILIKE ?", field), "%"+keyword+"%")
	}
	return f
}

// Filter translates the remaining query parameters into constraints.
// Reserved control keys are skipped, "field[op]" keys become range
// constraints, and plain keys become equality constraints. Only fields in
// the allowlist are honored; anything else is dropped rather than forwarded
// to the store.
func (f *Features) Filter(allowed ...string) *Features {
	allowedSet := make(map[string]bool, len(allowed))
	for _, field := range allowed {
		allowedSet[field] = true
	}

	for key, values := range f.params {
		if reservedKeys[key] || len(values) == 0 || values[0] == "" {
			continue
		}

		if m := operatorPattern.FindStringSubmatch(key); m != nil {
			field, op := m[1], m[2]
			if !allowedSet[field] {
				continue
			}
			f.db = f.db.Where(fmt.Sprintf("%s %s ?", field, operatorSQL[op]), values[0])
			continue
		}

		if !allowedSet[key] {
			continue
		}
		f.db = f.db.Where(fmt.Sprintf("%s = ?", key), values[0])
	}

	return f
}

// Paginate caps the result count at perPage and skips the rows of earlier
// pages. The requested page defaults to 1 when absent or not numeric.
func (f *Features) Paginate(perPage int) *Features {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	page, err := strconv.Atoi(f.params.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	f.db = f.db.Offset((page - 1) * perPage).Limit(perPage)
	return f
}

// Query returns the composed, still-unexecuted query.
func (f *Features) Query() *gorm.DB {
	return f.db
}
