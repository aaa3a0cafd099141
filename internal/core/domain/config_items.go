package domain

import (
	"strings"
	"time"
)

// MeasurementConfig defines the measurement fields recorded for a garment
// type. The garment type doubles as the record id on the server.
type MeasurementConfig struct {
	ID           string             `json:"id"`
	GarmentType  string             `json:"garmentType"`
	Measurements []MeasurementField `json:"measurements"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// MeasurementField is one named field in a measurement config.
type MeasurementField struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

func (m MeasurementConfig) Matches(searchText string) bool {
	return searchText == "" ||
		strings.Contains(strings.ToLower(m.GarmentType), strings.ToLower(searchText))
}

// BillingConfigItem is a billable service with its default price.
type BillingConfigItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DefaultPrice float64   `json:"defaultPrice"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (b BillingConfigItem) Matches(searchText string) bool {
	if searchText == "" {
		return true
	}
	s := strings.ToLower(searchText)
	return strings.Contains(strings.ToLower(b.Name), s) ||
		strings.Contains(strings.ToLower(b.Description), s)
}

// ReceivedItemTemplate is a reusable checklist of garments a customer hands
// over when placing an order.
type ReceivedItemTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r ReceivedItemTemplate) Matches(searchText string) bool {
	return searchText == "" ||
		strings.Contains(strings.ToLower(r.Name), strings.ToLower(searchText))
}
