// Package report shapes ledger and management data into report tables.
package report

import "strings"

// Type is how a report is presented
type Type string

const (
	TypeTable   Type = "table"
	TypeChart   Type = "chart"
	TypeSummary Type = "summary"
)

// Source names the row source a definition reads from
type Source string

const (
	SourceSales            Source = "sales"
	SourceSaleItems        Source = "sale_items"
	SourceStockAdjustments Source = "stock_adjustments"
	SourceStockTransfers   Source = "stock_transfers"
	SourcePayroll          Source = "payroll"
	SourceBankAccounts     Source = "bank_accounts"
)

// Filter dimensions
const (
	FilterDate     = "date"
	FilterProduct  = "product"
	FilterCategory = "category"
	FilterEmployee = "employee"
	FilterCashier  = "cashier"
	FilterPayment  = "payment"
	FilterStatus   = "status"
)

// Column names shared by every row source
const (
	ColumnID       = "ID"
	ColumnDate     = "Date"
	ColumnProduct  = "Product"
	ColumnCategory = "Category"
	ColumnEmployee = "Employee"
	ColumnPayment  = "Payment Method"
	ColumnStatus   = "Status"
	ColumnAmount   = "Amount"
)

var displayNames = map[string]string{
	FilterDate:     ColumnDate,
	FilterProduct:  ColumnProduct,
	FilterCategory: ColumnCategory,
	FilterEmployee: ColumnEmployee,
	FilterCashier:  ColumnEmployee,
	FilterPayment:  ColumnPayment,
	FilterStatus:   ColumnStatus,
}

// Display maps a filter dimension to its column name. Unknown dimensions
// are title-cased.
func Display(filter string) string {
	key := strings.ToLower(strings.TrimSpace(filter))
	if name, ok := displayNames[key]; ok {
		return name
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// Definition describes one report in the catalog
type Definition struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Type     Type     `json:"type"`
	Filters  []string `json:"filters"`
	Source   Source   `json:"source"`
}

// Columns returns the table header for the definition
func (d Definition) Columns() []string {
	return BuildColumns(d)
}

var catalog = []Definition{
	{ID: "sales-summary", Category: "Sales", Name: "Sales Summary", Type: TypeTable, Filters: []string{FilterDate, FilterCashier, FilterPayment}, Source: SourceSales},
	{ID: "product-sales", Category: "Sales", Name: "Product Sales", Type: TypeTable, Filters: []string{FilterDate, FilterProduct, FilterCategory}, Source: SourceSaleItems},
	{ID: "cashier-performance", Category: "Sales", Name: "Cashier Performance", Type: TypeChart, Filters: []string{FilterDate, FilterCashier, FilterEmployee}, Source: SourceSales},
	{ID: "payment-methods", Category: "Sales", Name: "Payment Methods", Type: TypeSummary, Filters: []string{FilterDate, FilterPayment}, Source: SourceSales},
	{ID: "cash-flow", Category: "Financial", Name: "Cash Flow", Type: TypeTable, Filters: []string{FilterDate, FilterPayment, FilterStatus}, Source: SourceSales},
	{ID: "balance-sheet", Category: "Financial", Name: "Balance Sheet", Type: TypeSummary, Filters: []string{FilterDate, FilterStatus}, Source: SourceBankAccounts},
	{ID: "trial-balance", Category: "Financial", Name: "Trial Balance", Type: TypeTable, Filters: []string{FilterStatus}, Source: SourceBankAccounts},
	{ID: "stock-adjustments", Category: "Inventory", Name: "Stock Adjustments", Type: TypeTable, Filters: []string{FilterDate, FilterProduct, FilterStatus}, Source: SourceStockAdjustments},
	{ID: "stock-transfers", Category: "Inventory", Name: "Stock Transfers", Type: TypeTable, Filters: []string{FilterDate, FilterProduct, FilterStatus}, Source: SourceStockTransfers},
	{ID: "payroll", Category: "Employees", Name: "Payroll", Type: TypeTable, Filters: []string{FilterDate, FilterEmployee, FilterStatus}, Source: SourcePayroll},
}

// Catalog returns a copy of the built-in report definitions
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	for i, d := range catalog {
		d.Filters = append([]string(nil), d.Filters...)
		out[i] = d
	}
	return out
}

// Find looks up a definition by id
func Find(id string) (Definition, bool) {
	for _, d := range Catalog() {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
