package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store details printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

// ReceiptItem is one printed line.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is the printable view of a sale. It is composed at print time and
// never stored.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	InvoiceNo     string          `json:"invoice_no"`
	Date          string          `json:"date"`
	Cashier       string          `json:"cashier,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Items         []ReceiptItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxLabel      string          `json:"tax_label"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Change        decimal.Decimal `json:"change"`
}

// NewReceipt composes a receipt from a committed sale.
func NewReceipt(header ReceiptHeader, sale *Sale, taxLabel string) *Receipt {
	r := &Receipt{
		Header:        header,
		InvoiceNo:     sale.InvoiceNo,
		Date:          sale.SoldAt.Format("2006-01-02 15:04"),
		Cashier:       sale.CashierName,
		PaymentMethod: sale.PaymentMethod.Label(),
		Items:         make([]ReceiptItem, 0, len(sale.Items)),
		Subtotal:      sale.Subtotal,
		TaxLabel:      taxLabel,
		Tax:           sale.Tax,
		Discount:      sale.Discount,
		Total:         sale.Total,
		Paid:          sale.AmountPaid,
		Change:        sale.Change,
	}
	for _, item := range sale.Items {
		r.Items = append(r.Items, ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.LineTotal,
		})
	}
	return r
}
