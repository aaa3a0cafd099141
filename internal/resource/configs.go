package resource

import (
	"encoding/json"
	"fmt"

	"github.com/tailorly/seam/internal/core/domain"
)

// MeasurementConfigInput is the request body for measurement config writes.
type MeasurementConfigInput struct {
	GarmentType  string                    `json:"garmentType"`
	Measurements []domain.MeasurementField `json:"measurements"`
}

// NewMeasurementConfigs creates the measurement-config resource client. The
// garment type is the record id on the server.
func NewMeasurementConfigs(deps Deps) *Client[domain.MeasurementConfig] {
	return New(Config[domain.MeasurementConfig]{
		Name:       "measurement_configs",
		BasePath:   "/measurement-configs",
		DecodeList: decodeMeasurementConfigList,
		DecodeOne:  decodeMeasurementConfig,
		ID:         func(m domain.MeasurementConfig) string { return m.ID },
		Match: func(m domain.MeasurementConfig, q Query) bool {
			return m.Matches(q.SearchText)
		},
	}, deps)
}

type measurementConfigWire struct {
	ID               string                 `json:"id"`
	GarmentType      string                 `json:"garmentType"`
	GarmentTypeSnake string                 `json:"garment_type"`
	Measurements     []measurementFieldWire `json:"measurements"`
	CreatedAt        *float64               `json:"createdAt"`
	CreatedAtSnake   *float64               `json:"created_at"`
	UpdatedAt        *float64               `json:"updatedAt"`
	UpdatedAtSnake   *float64               `json:"updated_at"`
}

type measurementFieldWire struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

func (w measurementConfigWire) normalize() domain.MeasurementConfig {
	garment := w.GarmentType
	if garment == "" {
		garment = w.GarmentTypeSnake
	}
	id := w.ID
	if id == "" {
		id = garment
	}

	fields := make([]domain.MeasurementField, 0, len(w.Measurements))
	for _, f := range w.Measurements {
		fields = append(fields, domain.MeasurementField{Name: f.Name, Unit: f.Unit})
	}

	return domain.MeasurementConfig{
		ID:           id,
		GarmentType:  garment,
		Measurements: fields,
		CreatedAt:    timeFromEpoch(firstNum(w.CreatedAt, w.CreatedAtSnake)),
		UpdatedAt:    timeFromEpoch(firstNum(w.UpdatedAt, w.UpdatedAtSnake, w.CreatedAt, w.CreatedAtSnake)),
	}
}

func decodeMeasurementConfigList(data []byte) ([]domain.MeasurementConfig, string, error) {
	var wire []measurementConfigWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, "", fmt.Errorf("measurement config list: %w", err)
	}

	configs := make([]domain.MeasurementConfig, 0, len(wire))
	for _, w := range wire {
		configs = append(configs, w.normalize())
	}
	return configs, "", nil
}

func decodeMeasurementConfig(data []byte) (domain.MeasurementConfig, error) {
	var w measurementConfigWire
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.MeasurementConfig{}, fmt.Errorf("measurement config: %w", err)
	}
	return w.normalize(), nil
}

// BillingConfigItemInput is the request body for billing config item writes.
type BillingConfigItemInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DefaultPrice float64 `json:"defaultPrice"`
}

// NewBillingConfigItems creates the billing-config-item (service catalog)
// resource client.
func NewBillingConfigItems(deps Deps) *Client[domain.BillingConfigItem] {
	return New(Config[domain.BillingConfigItem]{
		Name:       "billing_config_items",
		BasePath:   "/services",
		DecodeList: decodeBillingItemList,
		DecodeOne:  decodeBillingItem,
		ID:         func(b domain.BillingConfigItem) string { return b.ID },
		Match: func(b domain.BillingConfigItem, q Query) bool {
			return b.Matches(q.SearchText)
		},
	}, deps)
}

type billingItemWire struct {
	ID                string   `json:"id"`
	ServiceID         string   `json:"service_id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	DefaultPrice      *float64 `json:"defaultPrice"`
	DefaultPriceSnake *float64 `json:"default_price"`
	CreatedAt         *float64 `json:"createdAt"`
	CreatedAtSnake    *float64 `json:"created_at"`
	UpdatedAt         *float64 `json:"updatedAt"`
	UpdatedAtSnake    *float64 `json:"updated_at"`
}

func (w billingItemWire) normalize() domain.BillingConfigItem {
	id := w.ID
	if id == "" {
		id = w.ServiceID
	}

	var price float64
	if v := firstNum(w.DefaultPrice, w.DefaultPriceSnake); v != nil {
		price = *v
	}

	return domain.BillingConfigItem{
		ID:           id,
		Name:         w.Name,
		Description:  w.Description,
		DefaultPrice: price,
		CreatedAt:    timeFromEpoch(firstNum(w.CreatedAt, w.CreatedAtSnake)),
		UpdatedAt:    timeFromEpoch(firstNum(w.UpdatedAt, w.UpdatedAtSnake, w.CreatedAt, w.CreatedAtSnake)),
	}
}

func decodeBillingItemList(data []byte) ([]domain.BillingConfigItem, string, error) {
	var wire []billingItemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, "", fmt.Errorf("billing config item list: %w", err)
	}

	items := make([]domain.BillingConfigItem, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.normalize())
	}
	return items, "", nil
}

func decodeBillingItem(data []byte) (domain.BillingConfigItem, error) {
	var w billingItemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.BillingConfigItem{}, fmt.Errorf("billing config item: %w", err)
	}
	return w.normalize(), nil
}
