package resource

import (
	"encoding/json"
	"fmt"

	"github.com/tailorly/seam/internal/core/domain"
)

// BillInput is the request body for creating or updating a bill.
type BillInput struct {
	CustomerID  string            `json:"customerId"`
	BillDate    string            `json:"billDate"`
	TotalAmount float64           `json:"totalAmount"`
	Status      domain.BillStatus `json:"status"`
	Items       []domain.BillItem `json:"items"`
}

// NewBills creates the bills resource client.
func NewBills(deps Deps) *Client[domain.Bill] {
	return New(Config[domain.Bill]{
		Name:       "bills",
		BasePath:   "/bills",
		DecodeList: decodeBillList,
		DecodeOne:  decodeBill,
		ID:         func(b domain.Bill) string { return b.ID },
		Match: func(b domain.Bill, q Query) bool {
			return b.Matches(q.SearchText)
		},
	}, deps)
}

type billWire struct {
	BillID         string         `json:"billId"`
	BillIDSnake    string         `json:"bill_id"`
	CustomerID     string         `json:"customerId"`
	CustomerSnake  string         `json:"customer_id"`
	BillDate       string         `json:"billDate"`
	BillDateSnake  string         `json:"bill_date"`
	TotalAmount    *float64       `json:"totalAmount"`
	TotalSnake     *float64       `json:"total_amount"`
	Status         string         `json:"status"`
	Items          []billItemWire `json:"items"`
	CreatedAt      *float64       `json:"createdAt"`
	CreatedAtSnake *float64       `json:"created_at"`
	UpdatedAt      *float64       `json:"updatedAt"`
	UpdatedAtSnake *float64       `json:"updated_at"`
}

type billItemWire struct {
	Description    string   `json:"description"`
	Quantity       *int     `json:"quantity"`
	UnitPrice      *float64 `json:"unitPrice"`
	UnitPriceSnake *float64 `json:"unit_price"`
	Amount         *float64 `json:"amount"`
}

func (w billWire) normalize() domain.Bill {
	id := w.BillID
	if id == "" {
		id = w.BillIDSnake
	}
	customerID := w.CustomerID
	if customerID == "" {
		customerID = w.CustomerSnake
	}
	billDate := w.BillDate
	if billDate == "" {
		billDate = w.BillDateSnake
	}

	var total float64
	if v := firstNum(w.TotalAmount, w.TotalSnake); v != nil {
		total = *v
	}

	items := make([]domain.BillItem, 0, len(w.Items))
	for _, it := range w.Items {
		item := domain.BillItem{Description: it.Description}
		if it.Quantity != nil {
			item.Quantity = *it.Quantity
		}
		if v := firstNum(it.UnitPrice, it.UnitPriceSnake); v != nil {
			item.UnitPrice = *v
		}
		if it.Amount != nil {
			item.Amount = *it.Amount
		}
		items = append(items, item)
	}

	return domain.Bill{
		ID:          id,
		CustomerID:  customerID,
		BillDate:    billDate,
		TotalAmount: total,
		Status:      domain.BillStatus(w.Status),
		Items:       items,
		CreatedAt:   timeFromEpoch(firstNum(w.CreatedAt, w.CreatedAtSnake)),
		UpdatedAt:   timeFromEpoch(firstNum(w.UpdatedAt, w.UpdatedAtSnake, w.CreatedAt, w.CreatedAtSnake)),
	}
}

func decodeBillList(data []byte) ([]domain.Bill, string, error) {
	var wire []billWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, "", fmt.Errorf("bill list: %w", err)
	}

	bills := make([]domain.Bill, 0, len(wire))
	for _, w := range wire {
		bills = append(bills, w.normalize())
	}
	return bills, "", nil
}

func decodeBill(data []byte) (domain.Bill, error) {
	var w billWire
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Bill{}, fmt.Errorf("bill: %w", err)
	}
	return w.normalize(), nil
}
