package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/phrazzld/planner-api/internal/store"
)

// orderBy is newest first with the id as a stable tie breaker.
const orderBy = "ORDER BY (doc->>'created_at')::timestamptz DESC, id DESC"

// whereClause renders filter as a WHERE clause. Field names and values are
// bound as parameters numbered from len(args)+1, so nothing user supplied is
// interpolated into the SQL text.
func whereClause(filter store.Filter, args []any) (string, []any, error) {
	var conds []string
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ExcludeID != "" {
		id, err := uuid.Parse(filter.ExcludeID)
		if err != nil {
			return "", nil, store.ErrInvalidID
		}
		conds = append(conds, "id <> "+next(id))
	}

	for _, k := range sortedKeys(filter.Equals) {
		conds = append(conds, fmt.Sprintf("doc->>%s::text = %s", next(k), next(filter.Equals[k])))
	}

	for _, k := range sortedKeys(filter.EqualFold) {
		conds = append(conds, fmt.Sprintf("lower(doc->>%s::text) = lower(%s)", next(k), next(filter.EqualFold[k])))
	}

	if filter.HasSearch() {
		pattern := "%" + escapeLike(filter.Search) + "%"
		conds = append(conds, fmt.Sprintf(`doc->>%s::text ILIKE %s ESCAPE '\'`, next(filter.SearchField), next(pattern)))
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args, nil
}

// selectQuery builds the paged SELECT for table.
func selectQuery(table string, filter store.Filter, page store.Page) (string, []any, error) {
	where, args, err := whereClause(filter, nil)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT id, doc FROM %s", table)
	if where != "" {
		b.WriteString(" " + where)
	}
	b.WriteString(" " + orderBy)
	if page.Limit > 0 {
		args = append(args, page.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if page.Skip > 0 {
		args = append(args, page.Skip)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args, nil
}

// countQuery builds the COUNT for table.
func countQuery(table string, filter store.Filter) (string, []any, error) {
	where, args, err := whereClause(filter, nil)
	if err != nil {
		return "", nil, err
	}
	q := "SELECT count(*) FROM " + table
	if where != "" {
		q += " " + where
	}
	return q, args, nil
}

// escapeLike escapes the LIKE metacharacters so s matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
