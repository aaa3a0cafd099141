package resource

import (
	"testing"
	"time"
)

func TestDecodeBillToleratesDecimalTimestamps(t *testing.T) {
	// DynamoDB Decimal fields serialize with a fractional part.
	bill, err := decodeBill([]byte(`{
		"bill_id":"b1","customer_id":"c1","bill_date":"2024-01-05",
		"total_amount":1250.5,"status":"pending",
		"items":[{"description":"Shirt stitching","quantity":2,"unit_price":625.25}],
		"created_at":1700000000.0
	}`))
	if err != nil {
		t.Fatalf("decodeBill failed: %v", err)
	}

	if bill.ID != "b1" || bill.CustomerID != "c1" {
		t.Errorf("snake_case ids not normalized: %+v", bill)
	}
	if bill.TotalAmount != 1250.5 {
		t.Errorf("TotalAmount = %v", bill.TotalAmount)
	}
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	if !bill.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", bill.CreatedAt, want)
	}
	if len(bill.Items) != 1 || bill.Items[0].UnitPrice != 625.25 {
		t.Errorf("Items = %+v", bill.Items)
	}
}

func TestDecodeBillSubstitutesNowForMissingTimestamps(t *testing.T) {
	before := time.Now().Add(-time.Second)
	bill, err := decodeBill([]byte(`{"billId":"b2","customerId":"c1","status":"draft"}`))
	if err != nil {
		t.Fatalf("decodeBill failed: %v", err)
	}

	if bill.CreatedAt.Before(before) || bill.CreatedAt.IsZero() {
		t.Errorf("missing created_at not defaulted to now: %v", bill.CreatedAt)
	}
	if bill.Items == nil || len(bill.Items) != 0 {
		t.Errorf("missing items should normalize to an empty slice, got %#v", bill.Items)
	}
}

func TestDecodeMeasurementConfigUsesGarmentTypeAsID(t *testing.T) {
	cfg, err := decodeMeasurementConfig([]byte(`{
		"garment_type":"kurta",
		"measurements":[{"name":"chest","unit":"in"}],
		"created_at":1700000000
	}`))
	if err != nil {
		t.Fatalf("decodeMeasurementConfig failed: %v", err)
	}

	if cfg.ID != "kurta" || cfg.GarmentType != "kurta" {
		t.Errorf("ID/GarmentType = %q/%q, want kurta", cfg.ID, cfg.GarmentType)
	}
	if len(cfg.Measurements) != 1 || cfg.Measurements[0].Name != "chest" {
		t.Errorf("Measurements = %+v", cfg.Measurements)
	}
}

func TestDecodeBillingItemToleratesBothCasings(t *testing.T) {
	snake, err := decodeBillingItem([]byte(`{"service_id":"svc-1","name":"Hemming","default_price":150}`))
	if err != nil {
		t.Fatalf("decodeBillingItem failed: %v", err)
	}
	camel, err := decodeBillingItem([]byte(`{"id":"svc-1","name":"Hemming","defaultPrice":150}`))
	if err != nil {
		t.Fatalf("decodeBillingItem failed: %v", err)
	}

	if snake.ID != camel.ID || snake.DefaultPrice != camel.DefaultPrice {
		t.Errorf("casings diverged: %+v vs %+v", snake, camel)
	}
	if snake.Description != "" {
		t.Errorf("missing description = %q, want empty string", snake.Description)
	}
}
