package domain

import (
	"strings"
	"time"
)

// Customer is the canonical in-memory shape for a customer record.
// Servers return snake_case field names and epoch timestamps; the resource
// layer normalizes those before a Customer ever reaches a caller.
type Customer struct {
	ID              string          `json:"id"`
	CustomerNumber  string          `json:"customerNumber"`
	PersonalDetails PersonalDetails `json:"personalDetails"`
	Measurements    []Measurement   `json:"measurements"`
	Comments        string          `json:"comments"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// PersonalDetails holds contact information. Optional fields are empty
// strings, never absent.
type PersonalDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	DOB     string `json:"dob"`
}

// Measurement is one garment's set of recorded measurements for a customer.
type Measurement struct {
	GarmentType string            `json:"garmentType"`
	Values      map[string]string `json:"values"`
	Notes       string            `json:"notes"`
	RecordedAt  time.Time         `json:"recordedAt"`
}

// Matches reports whether the customer matches a universal substring search,
// the same predicate the server applies: case-insensitive contains over
// name, phone, email, address and customer number.
func (c Customer) Matches(searchText string) bool {
	if searchText == "" {
		return true
	}
	s := strings.ToLower(searchText)
	fields := []string{
		c.PersonalDetails.Name,
		c.PersonalDetails.Phone,
		c.PersonalDetails.Email,
		c.PersonalDetails.Address,
		c.CustomerNumber,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), s) {
			return true
		}
	}
	return false
}
