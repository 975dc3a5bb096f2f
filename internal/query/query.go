// Package query turns listing request parameters into filtered, ordered
// store queries.
package query

import (
	"strings"
)

type SortField string

type Direction string

const (
	SortByTitle     SortField = "title"
	SortByCreatedAt SortField = "createdAt"

	Ascending  Direction = "ASC"
	Descending Direction = "DESC"

	likeEscape = `\`
)

// ListOptions is the parsed form of the search and sort parameters.
type ListOptions struct {
	Search    string
	SortField SortField
	Direction Direction
}

// DefaultListOptions orders by creation time, newest first, with no filter.
func DefaultListOptions() ListOptions {
	return ListOptions{SortField: SortByCreatedAt, Direction: Descending}
}

// ParseListOptions parses a search keyword and a "field,direction" sort spec.
// Unknown sort fields fall back to the default ordering; a missing or
// unrecognised direction means ascending.
func ParseListOptions(search, sort string) ListOptions {
	opts := DefaultListOptions()
	opts.Search = search

	if sort == "" {
		return opts
	}

	fieldPart, dirPart, _ := strings.Cut(sort, ",")
	field := SortField(strings.TrimSpace(fieldPart))
	if !field.Valid() {
		return opts
	}

	opts.SortField = field
	opts.Direction = ParseDirection(dirPart)
	return opts
}

// ParseDirection maps "desc" in any case to Descending and anything else to Ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Descending)) {
		return Descending
	}
	return Ascending
}

// Valid reports whether f is an accepted sort field.
func (f SortField) Valid() bool {
	return f == SortByTitle || f == SortByCreatedAt
}

// HasSearch reports whether a substring filter applies.
func (o ListOptions) HasSearch() bool {
	return o.Search != ""
}

// LikePattern wraps s in % wildcards, escaping LIKE metacharacters so that s
// matches literally. Use it together with ESCAPE '\'.
func LikePattern(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(s) + "%"
}
