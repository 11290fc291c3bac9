package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const DefaultPhoneRegion = "BR"

var (
	ErrPhoneFormat  = errors.New("invalid phone format")
	ErrPhoneInvalid = errors.New("invalid phone number")
)

// PhoneValidator normalizes free-form phone input into E.164
type PhoneValidator struct {
	region        string
	requireMobile bool
}

// NewPhoneValidator creates a PhoneValidator for region. With requireMobile set,
// numbers that are not classified as mobile are rejected.
func NewPhoneValidator(region string, requireMobile bool) *PhoneValidator {
	if region == "" {
		region = DefaultPhoneRegion
	}
	return &PhoneValidator{region: strings.ToUpper(region), requireMobile: requireMobile}
}

// Region returns the numbering plan used for numbers without a country code.
func (v *PhoneValidator) Region() string {
	return v.region
}

// Validate parses raw and returns its canonical form, e.g. "+5511987654321".
func (v *PhoneValidator) Validate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty value", ErrPhoneFormat)
	}

	num, err := phonenumbers.Parse(raw, v.region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPhoneFormat, err)
	}

	if !phonenumbers.IsPossibleNumber(num) || !phonenumbers.IsValidNumberForRegion(num, v.region) {
		return "", fmt.Errorf("%w: not a valid number for region %s", ErrPhoneInvalid, v.region)
	}

	if v.requireMobile {
		switch phonenumbers.GetNumberType(num) {
		case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
		default:
			return "", fmt.Errorf("%w: not a mobile number", ErrPhoneInvalid)
		}
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsPhoneError reports whether err came from phone validation.
func IsPhoneError(err error) bool {
	return errors.Is(err, ErrPhoneFormat) || errors.Is(err, ErrPhoneInvalid)
}
