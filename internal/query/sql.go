package query

import "strings"

var sqlSortColumns = map[SortField]string{
	SortByTitle:     "b.title",
	SortByCreatedAt: "b.created_at",
}

const listSelect = `SELECT b.id, b.title, b.content, b.user_id, b.created_at, b.updated_at, u.username
FROM blogs b
JOIN users u ON u.id = b.user_id`

// BuildListQuery returns a SELECT over blogs joined with the owner's username,
// using ? placeholders.
func BuildListQuery(opts ListOptions) (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString(listSelect)

	if opts.HasSearch() {
		pattern := LikePattern(opts.Search)
		sb.WriteString("\nWHERE (b.title LIKE ? ESCAPE '\\' OR b.content LIKE ? ESCAPE '\\')")
		args = append(args, pattern, pattern)
	}

	sb.WriteString("\nORDER BY ")
	sb.WriteString(OrderBy(opts))

	return sb.String(), args
}

// OrderBy renders the ORDER BY expression for opts, falling back to the
// default ordering for unknown fields.
func OrderBy(opts ListOptions) string {
	column, ok := sqlSortColumns[opts.SortField]
	if !ok {
		def := DefaultListOptions()
		column, opts.Direction = sqlSortColumns[def.SortField], def.Direction
	}
	dir := Ascending
	if opts.Direction == Descending {
		dir = Descending
	}
	return column + " " + string(dir)
}

// BuildRecentQuery selects the newest limit posts owned by userID, shaped
// like BuildListQuery.
func BuildRecentQuery(userID string, limit int) (string, []any) {
	return listSelect + "\nWHERE b.user_id = ?\nORDER BY b.created_at DESC\nLIMIT ?", []any{userID, limit}
}
