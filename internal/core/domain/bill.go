package domain

import (
	"strings"
	"time"
)

// Bill represents a customer bill with its line items.
type Bill struct {
	ID          string     `json:"billId"`
	CustomerID  string     `json:"customerId"`
	BillDate    string     `json:"billDate"`
	TotalAmount float64    `json:"totalAmount"`
	Status      BillStatus `json:"status"`
	Items       []BillItem `json:"items"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type BillStatus string

const (
	BillStatusDraft   BillStatus = "draft"
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

// BillItem is a single line on a bill.
type BillItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Matches reports whether the bill matches a substring search over its
// customer id, status and bill date.
func (b Bill) Matches(searchText string) bool {
	if searchText == "" {
		return true
	}
	s := strings.ToLower(searchText)
	for _, f := range []string{b.CustomerID, string(b.Status), b.BillDate} {
		if strings.Contains(strings.ToLower(f), s) {
			return true
		}
	}
	return false
}
