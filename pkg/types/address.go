package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// phoneRe accepts digits plus the separators customers commonly paste in.
var phoneRe = regexp.MustCompile(`^[0-9+\-\s()]+$`)

const (
	PhoneMinLen = 10
	PhoneMaxLen = 15
)

// ValidatePhone enforces the shipping phone format and length rules.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("phone number is required")
	}
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("invalid phone number format")
	}
	if len(phone) < PhoneMinLen || len(phone) > PhoneMaxLen {
		return fmt.Errorf("phone number must be between %d and %d digits", PhoneMinLen, PhoneMaxLen)
	}
	return nil
}

// ShippingAddress is the embedded address stored on each order as JSON.
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
}

// Validate reports the first missing required sub-field.
func (a ShippingAddress) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"street", a.Street},
		{"city", a.City},
		{"province", a.Province},
		{"postalCode", a.PostalCode},
		{"fullName", a.FullName},
		{"phone", a.Phone},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("address is missing required field %q", field.name)
		}
	}
	return ValidatePhone(a.Phone)
}

// Value marshals the address into its JSON column representation.
func (a ShippingAddress) Value() (driver.Value, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal address: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the JSON column back into the struct.
func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("address: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, a)
}
