package report

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/pkg/money"
	"github.com/shopspring/decimal"
)

// SaleRows renders one row per sale
func SaleRows(sales []entity.Sale) []Row {
	rows := make([]Row, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, Row{
			ColumnID:       s.InvoiceNo,
			ColumnDate:     FormatDate(s.SoldAt),
			ColumnEmployee: s.CashierName,
			ColumnPayment:  s.PaymentMethod.Label(),
			ColumnStatus:   string(s.Status),
			ColumnAmount:   money.Format(s.Total),
		})
	}
	return rows
}

// SaleItemRows renders one row per sold line, carrying the parent sale's
// date, cashier and payment method.
func SaleItemRows(sales []entity.Sale) []Row {
	var rows []Row
	for _, s := range sales {
		for _, item := range s.Items {
			rows = append(rows, Row{
				ColumnID:       s.InvoiceNo,
				ColumnDate:     FormatDate(s.SoldAt),
				ColumnProduct:  item.ProductName,
				ColumnCategory: item.Category,
				ColumnEmployee: s.CashierName,
				ColumnPayment:  s.PaymentMethod.Label(),
				ColumnStatus:   string(s.Status),
				ColumnAmount:   money.Format(item.LineTotal),
			})
		}
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows
}

// AdjustmentRows values each adjustment at the product's buying price,
// signed by direction.
func AdjustmentRows(adjustments []entity.StockAdjustment) []Row {
	rows := make([]Row, 0, len(adjustments))
	for _, a := range adjustments {
		row := Row{
			ColumnID:     shortID(a.ID),
			ColumnDate:   FormatDate(a.AdjustedAt),
			ColumnStatus: a.Status,
			"Type":       a.Type.String(),
			"Quantity":   strconv.Itoa(a.Delta()),
			"Reason":     a.Reason,
		}
		amount := decimal.Zero
		if a.Product != nil {
			row[ColumnProduct] = a.Product.Name
			row[ColumnCategory] = a.Product.CategoryName()
			amount = a.Product.BuyingPrice.Mul(decimal.NewFromInt(int64(a.Delta())))
		}
		row[ColumnAmount] = money.Format(amount)
		rows = append(rows, row)
	}
	return rows
}

// TransferRows values each transfer at the product's buying price
func TransferRows(transfers []entity.StockTransfer) []Row {
	rows := make([]Row, 0, len(transfers))
	for _, t := range transfers {
		row := Row{
			ColumnID:     shortID(t.ID),
			ColumnDate:   FormatDate(t.TransferredAt),
			ColumnStatus: t.Status,
			"From":       t.FromLocation,
			"To":         t.ToLocation,
			"Quantity":   strconv.Itoa(t.Quantity),
		}
		amount := decimal.Zero
		if t.Product != nil {
			row[ColumnProduct] = t.Product.Name
			row[ColumnCategory] = t.Product.CategoryName()
			amount = t.Product.BuyingPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
		}
		row[ColumnAmount] = money.Format(amount)
		rows = append(rows, row)
	}
	return rows
}

// PayrollRows renders net pay per run. names resolves employee ids; the
// date is the payment date, or the first day of the period when unpaid.
func PayrollRows(payrolls []entity.Payroll, names map[uuid.UUID]string) []Row {
	rows := make([]Row, 0, len(payrolls))
	for _, p := range payrolls {
		date := p.Period + "-01"
		if p.PaidAt != nil {
			date = FormatDate(*p.PaidAt)
		}
		rows = append(rows, Row{
			ColumnID:       shortID(p.ID),
			ColumnDate:     date,
			ColumnEmployee: names[p.EmployeeID],
			ColumnStatus:   p.Status,
			"Period":       p.Period,
			ColumnAmount:   money.Format(p.Net),
		})
	}
	return rows
}

// AccountRows renders balances per bank account
func AccountRows(accounts []entity.BankAccount) []Row {
	rows := make([]Row, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, Row{
			ColumnID:       a.AccountNumber,
			ColumnDate:     FormatDate(a.CreatedAt),
			ColumnStatus:   a.Status,
			"Account Name": a.AccountName,
			"Bank":         a.BankName,
			ColumnAmount:   money.Format(a.Balance),
		})
	}
	return rows
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
