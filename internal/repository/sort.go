package repository

import (
	"sort"
	"strings"
)

// DefaultOrder is applied when the caller supplies no ordering.
const DefaultOrder = "requested_at DESC"

// orderColumns is the closed allow-list of sortable columns. Anything
// outside it is rejected before query composition; the ordering clause is
// never built from free text.
var orderColumns = map[string]string{
	"id":             "id",
	"requester_name": "requester_name",
	"department":     "department",
	"cost_center":    "cost_center",
	"status":         "status",
	"requested_at":   "requested_at",
	"created_at":     "created_at",
	"updated_at":     "updated_at",
}

// ParseOrderBy validates a caller-supplied ordering expression of the
// form "column" or "column:direction" against the allow-list and returns
// the SQL clause to use. Empty input yields DefaultOrder.
func ParseOrderBy(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultOrder, nil
	}

	parts := strings.SplitN(raw, ":", 2)
	column, ok := orderColumns[strings.TrimSpace(parts[0])]
	if !ok {
		return "", NewValidationError("orderBy column must be one of " + strings.Join(allowedOrderColumns(), ", "))
	}

	direction := "DESC"
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
			direction = "ASC"
		case "desc":
			direction = "DESC"
		default:
			return "", NewValidationError("orderBy direction must be asc or desc")
		}
	}

	return column + " " + direction, nil
}

func allowedOrderColumns() []string {
	columns := make([]string, 0, len(orderColumns))
	for c := range orderColumns {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns
}
