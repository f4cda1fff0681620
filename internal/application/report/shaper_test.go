package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestBuildColumns(t *testing.T) {
	def := Definition{Filters: []string{"date", "employee"}}
	assert.Equal(t, []string{"ID", "Date", "Employee", "Amount"}, BuildColumns(def))

	def = Definition{Filters: []string{"cashier", "date", "employee", "payment"}}
	assert.Equal(t, []string{"ID", "Employee", "Date", "Payment Method", "Amount"}, BuildColumns(def))

	assert.Equal(t, []string{"ID", "Amount"}, BuildColumns(Definition{}))
}

func TestFilterRowsDateRange(t *testing.T) {
	rows := []Row{
		{"Date": "2024-01-10", "Amount": "$10"},
		{"Date": "2024-02-10", "Amount": "$20"},
	}

	got := FilterRows(rows, Criteria{From: day("2024-01-01"), To: day("2024-01-31")})

	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-10", got[0]["Date"])
}

func TestFilterRowsDateBoundsAreInclusive(t *testing.T) {
	rows := []Row{
		{"Date": "2024-01-01"},
		{"Date": "2024-01-31"},
		{"Date": "not a date"},
	}
	to := time.Date(2024, 1, 31, 8, 30, 0, 0, time.UTC)

	got := FilterRows(rows, Criteria{From: day("2024-01-01"), To: &to})
	assert.Len(t, got, 2)
}

func TestFilterRowsSearchAndDimensions(t *testing.T) {
	rows := []Row{
		{"ID": "INV-1", "Employee": "Alice", "Payment Method": "Cash", "Amount": "$10.00"},
		{"ID": "INV-2", "Employee": "Bob", "Payment Method": "Card", "Amount": "$20.00"},
		{"ID": "INV-3", "Employee": "Alice", "Payment Method": "Card", "Amount": "$30.00"},
	}

	assert.Len(t, FilterRows(rows, Criteria{Search: "aLiCe"}), 2)
	assert.Len(t, FilterRows(rows, Criteria{Search: "$20"}), 1)

	got := FilterRows(rows, Criteria{Dimensions: map[string]string{"cashier": "Alice", "payment": "Card"}})
	require.Len(t, got, 1)
	assert.Equal(t, "INV-3", got[0]["ID"])

	all := FilterRows(rows, Criteria{Dimensions: map[string]string{"employee": "all", "payment": ""}})
	assert.Len(t, all, 3)

	assert.Empty(t, FilterRows(rows, Criteria{Search: "alice", Dimensions: map[string]string{"employee": "Bob"}}))
}

func TestPaginate(t *testing.T) {
	rows := make([]Row, 7)
	for i := range rows {
		rows[i] = Row{"ID": string(rune('a' + i))}
	}

	assert.Len(t, Paginate(rows, 3, 1), 3)
	last := Paginate(rows, 3, 3)
	require.Len(t, last, 1)
	assert.Equal(t, "g", last[0]["ID"])
	assert.Empty(t, Paginate(rows, 3, 4))
}

func TestSummarize(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, 0, empty.TotalRecords)
	assert.True(t, empty.TotalAmount.IsZero())
	assert.True(t, empty.AverageAmount.IsZero())

	s := Summarize([]Row{{"Amount": "$10.00"}, {"Amount": "$1,200.50"}, {"Amount": "n/a"}})
	assert.Equal(t, 3, s.TotalRecords)
	assert.Equal(t, "1210.5", s.TotalAmount.String())
	assert.Equal(t, "403.5", s.AverageAmount.String())
}

func TestProject(t *testing.T) {
	rows := []Row{{"ID": "1", "Date": "2024-01-10", "Status": "completed", "Amount": "$5.00"}}

	got := Project(rows, []string{"ID", "Amount"})

	assert.Equal(t, Row{"ID": "1", "Amount": "$5.00"}, got[0])
	assert.Len(t, rows[0], 4)
}

func TestCatalog(t *testing.T) {
	defs := Catalog()
	require.NotEmpty(t, defs)

	defs[0].Filters[0] = "changed"
	again, ok := Find(defs[0].ID)
	require.True(t, ok)
	assert.Equal(t, FilterDate, again.Filters[0])

	_, ok = Find("missing")
	assert.False(t, ok)

	perf, ok := Find("cashier-performance")
	require.True(t, ok)
	assert.Equal(t, []string{"ID", "Date", "Employee", "Amount"}, perf.Columns())
}

func TestSaleSources(t *testing.T) {
	sales := []entity.Sale{{
		InvoiceNo:     "INV-20240110-AAAA",
		CashierName:   "Alice",
		PaymentMethod: enum.PaymentMethodCard,
		Status:        enum.SaleStatusCompleted,
		Total:         decimal.RequireFromString("27"),
		SoldAt:        time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		Items: []entity.SaleItem{
			{ProductID: uuid.New(), ProductName: "A", Category: "Food", Quantity: 2, LineTotal: decimal.NewFromInt(20)},
			{ProductID: uuid.New(), ProductName: "B", Quantity: 1, LineTotal: decimal.NewFromInt(5)},
		},
	}}

	rows := SaleRows(sales)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-10", rows[0][ColumnDate])
	assert.Equal(t, "Card", rows[0][ColumnPayment])
	assert.Equal(t, "$27.00", rows[0][ColumnAmount])

	items := SaleItemRows(sales)
	require.Len(t, items, 2)
	assert.Equal(t, "Food", items[0][ColumnCategory])
	assert.Equal(t, "$5.00", items[1][ColumnAmount])
	assert.Empty(t, SaleItemRows(nil))
}

func TestPayrollRows(t *testing.T) {
	emp := uuid.New()
	paid := time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)
	rows := PayrollRows([]entity.Payroll{
		{ID: uuid.New(), EmployeeID: emp, Period: "2024-03", Net: decimal.NewFromInt(900), Status: "paid", PaidAt: &paid},
		{ID: uuid.New(), EmployeeID: uuid.New(), Period: "2024-04", Net: decimal.NewFromInt(800), Status: "pending"},
	}, map[uuid.UUID]string{emp: "Alice"})

	assert.Equal(t, "2024-03-28", rows[0][ColumnDate])
	assert.Equal(t, "Alice", rows[0][ColumnEmployee])
	assert.Equal(t, "2024-04-01", rows[1][ColumnDate])
	assert.Equal(t, "", rows[1][ColumnEmployee])
}
