package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tailorly/seam/internal/api"
	"github.com/tailorly/seam/internal/core/domain"
	"github.com/tailorly/seam/internal/metrics"
)

// Customers is the resource client for customer records, with the
// measurement sub-resource and the phone existence check on top of the
// generic CRUD operations.
type Customers struct {
	*Client[domain.Customer]
}

// CustomerInput is the request body for creating or updating a customer.
type CustomerInput struct {
	PersonalDetails domain.PersonalDetails `json:"personalDetails"`
	Measurements    []domain.Measurement   `json:"measurements"`
	Comments        string                 `json:"comments"`
}

// NewCustomers creates the customers resource client.
func NewCustomers(deps Deps) *Customers {
	return &Customers{Client: New(Config[domain.Customer]{
		Name:       "customers",
		BasePath:   "/customers",
		DecodeList: decodeCustomerList,
		DecodeOne:  decodeCustomer,
		ID:         func(c domain.Customer) string { return c.ID },
		Match: func(c domain.Customer, q Query) bool {
			return c.Matches(q.SearchText)
		},
	}, deps)}
}

// Exists reports whether a customer with the given phone number already
// exists. Network-only: a duplicate check against stale data is worse than
// an error.
func (c *Customers) Exists(ctx context.Context, phone string) (bool, error) {
	if !c.net.Online() {
		return false, api.NewNetworkError("cannot check customer existence while offline")
	}

	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "exists").Inc()
	data, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Get(ctx, "/customers/exists", url.Values{"phone": {phone}})
	})
	if err != nil {
		return false, c.countErr("exists", err)
	}

	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, c.countErr("exists", api.ClassifyDecode(err))
	}
	return resp.Exists, nil
}

// Measurements fetches a customer's recorded measurements, falling back to
// the customer's cached record when offline.
func (c *Customers) Measurements(ctx context.Context, customerID string) ([]domain.Measurement, error) {
	if !c.net.Online() {
		cust, err := c.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		return cust.Measurements, nil
	}

	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "measurements").Inc()
	data, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Get(ctx, "/customers/"+customerID+"/measurements", nil)
	})
	if err != nil {
		return nil, c.countErr("measurements", err)
	}

	var wire struct {
		Measurements []measurementWire `json:"measurements"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, c.countErr("measurements", api.ClassifyDecode(err))
	}

	out := make([]domain.Measurement, 0, len(wire.Measurements))
	for _, m := range wire.Measurements {
		out = append(out, m.normalize())
	}
	return out, nil
}

// SaveMeasurement creates or replaces one garment's measurements for a
// customer. The customer's cache entries are invalidated like any other
// mutation.
func (c *Customers) SaveMeasurement(ctx context.Context, customerID string, m domain.Measurement) error {
	if !c.net.Online() {
		return api.NewNetworkError("cannot save measurement while offline")
	}

	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "save_measurement").Inc()
	_, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Post(ctx, "/customers/"+customerID+"/measurements", m)
	})
	if err != nil {
		return c.countErr("save_measurement", err)
	}

	c.invalidate(ctx, customerID)
	return nil
}

// DeleteMeasurement removes one garment's measurements for a customer.
func (c *Customers) DeleteMeasurement(ctx context.Context, customerID, garmentType string) error {
	if !c.net.Online() {
		return api.NewNetworkError("cannot delete measurement while offline")
	}

	metrics.RequestsTotal.WithLabelValues(c.cfg.Name, "delete_measurement").Inc()
	_, err := api.Do(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.api.Delete(ctx, "/customers/"+customerID+"/measurements/"+url.PathEscape(garmentType))
	})
	if err != nil {
		return c.countErr("delete_measurement", err)
	}

	c.invalidate(ctx, customerID)
	return nil
}

// ---- wire shapes ----

type customerWire struct {
	ID              string            `json:"id"`
	CustomerID      string            `json:"customer_id"`
	CustomerNumber  string            `json:"customerNumber"`
	PersonalDetails personalWire      `json:"personalDetails"`
	Measurements    []measurementWire `json:"measurements"`
	Comments        string            `json:"comments"`
	CreatedAt       *float64          `json:"createdAt"`
	CreatedAtSnake  *float64          `json:"created_at"`
	UpdatedAt       *float64          `json:"updatedAt"`
	UpdatedAtSnake  *float64          `json:"updated_at"`
}

type personalWire struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	DOB     string `json:"dob"`
}

type measurementWire struct {
	GarmentType      string            `json:"garmentType"`
	GarmentTypeSnake string            `json:"garment_type"`
	Values           map[string]string `json:"values"`
	Notes            string            `json:"notes"`
	RecordedAt       *float64          `json:"recordedAt"`
	RecordedAtSnake  *float64          `json:"recorded_at"`
}

func (w customerWire) normalize() domain.Customer {
	id := w.ID
	if id == "" {
		id = w.CustomerID
	}

	created := timeFromEpoch(firstNum(w.CreatedAt, w.CreatedAtSnake))
	updated := timeFromEpoch(firstNum(w.UpdatedAt, w.UpdatedAtSnake, w.CreatedAt, w.CreatedAtSnake))

	measurements := make([]domain.Measurement, 0, len(w.Measurements))
	for _, m := range w.Measurements {
		measurements = append(measurements, m.normalize())
	}

	return domain.Customer{
		ID:             id,
		CustomerNumber: w.CustomerNumber,
		PersonalDetails: domain.PersonalDetails{
			Name:    w.PersonalDetails.Name,
			Phone:   w.PersonalDetails.Phone,
			Email:   w.PersonalDetails.Email,
			Address: w.PersonalDetails.Address,
			DOB:     w.PersonalDetails.DOB,
		},
		Measurements: measurements,
		Comments:     w.Comments,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}
}

func (w measurementWire) normalize() domain.Measurement {
	garment := w.GarmentType
	if garment == "" {
		garment = w.GarmentTypeSnake
	}
	values := w.Values
	if values == nil {
		values = map[string]string{}
	}
	return domain.Measurement{
		GarmentType: garment,
		Values:      values,
		Notes:       w.Notes,
		RecordedAt:  timeFromEpoch(firstNum(w.RecordedAt, w.RecordedAtSnake)),
	}
}

func decodeCustomerList(data []byte) ([]domain.Customer, string, error) {
	var wire struct {
		Customers        []customerWire `json:"customers"`
		LastEvaluatedKey string         `json:"lastEvaluatedKey"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, "", fmt.Errorf("customer list: %w", err)
	}

	customers := make([]domain.Customer, 0, len(wire.Customers))
	for _, w := range wire.Customers {
		customers = append(customers, w.normalize())
	}
	return customers, wire.LastEvaluatedKey, nil
}

func decodeCustomer(data []byte) (domain.Customer, error) {
	var w customerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Customer{}, fmt.Errorf("customer: %w", err)
	}
	return w.normalize(), nil
}
