package report

import (
	"strings"
	"time"

	"github.com/sangkips/retailhub-api/pkg/export"
	"github.com/sangkips/retailhub-api/pkg/money"
	"github.com/sangkips/retailhub-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Row maps a column name to its display value
type Row = export.Row

const dateLayout = "2006-01-02"

// Criteria selects rows. Zero values disable the matching filter.
type Criteria struct {
	From   *time.Time
	To     *time.Time
	Search string
	// Dimensions maps a filter dimension (product, employee, ...) to the
	// required value. "all" and "" match every row.
	Dimensions map[string]string
}

// Summary aggregates the Amount column
type Summary struct {
	TotalRecords  int             `json:"total_records"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

// BuildColumns returns ID, one column per filter in declaration order, then
// Amount. Filters sharing a display name produce one column.
func BuildColumns(def Definition) []string {
	columns := []string{ColumnID}
	seen := map[string]bool{ColumnID: true, ColumnAmount: true}
	for _, f := range def.Filters {
		name := Display(f)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, name)
	}
	return append(columns, ColumnAmount)
}

// Project keeps only columns in every row
func Project(rows []Row, columns []string) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		p := make(Row, len(columns))
		for _, c := range columns {
			p[c] = r[c]
		}
		out[i] = p
	}
	return out
}

// FilterRows keeps the rows passing every active criterion.
func FilterRows(rows []Row, c Criteria) []Row {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !inDateRange(r, c.From, c.To) {
			continue
		}
		if search != "" && !containsTerm(r, search) {
			continue
		}
		if !matchesDimensions(r, c.Dimensions) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func inDateRange(r Row, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	value, ok := r[ColumnDate]
	if !ok {
		return true
	}
	day, ok := parseDay(value)
	if !ok {
		return false
	}
	if from != nil && day.Before(truncateDay(*from)) {
		return false
	}
	if to != nil && day.After(truncateDay(*to)) {
		return false
	}
	return true
}

func parseDay(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, value)
	return t, err == nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func containsTerm(r Row, term string) bool {
	for _, v := range r {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func matchesDimensions(r Row, dims map[string]string) bool {
	for dim, want := range dims {
		if want == "" || strings.EqualFold(want, "all") || dim == FilterDate {
			continue
		}
		if r[Display(dim)] != want {
			return false
		}
	}
	return true
}

// Paginate returns page pageNumber of size pageSize, clipped to the rows.
func Paginate(rows []Row, pageSize, pageNumber int) []Row {
	return pagination.Window(rows, pageSize, pageNumber)
}

// Summarize totals the Amount column. The average of no rows is zero.
func Summarize(rows []Row) Summary {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(money.Parse(r[ColumnAmount]))
	}
	s := Summary{TotalRecords: len(rows), TotalAmount: total, AverageAmount: decimal.Zero}
	if len(rows) > 0 {
		s.AverageAmount = money.Round2(total.Div(decimal.NewFromInt(int64(len(rows)))))
	}
	return s
}

// FormatDate renders t as a report date
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
