package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Service is one entry of the salon's catalog.
type Service struct {
	ID          int64
	Name        string
	Description string
	PriceRange  string
	Duration    string
	Category    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ErrInvalidPriceRange is returned for price ranges that are neither "$A" nor "$A - $B".
var ErrInvalidPriceRange = errors.New("price range must look like $50 or $50 - $150")

// PriceRange is a parsed catalog price range.
type PriceRange struct {
	From decimal.Decimal
	To   decimal.Decimal
}

// ParsePriceRange parses "$A" or "$A - $B" into bounds with From <= To.
func ParsePriceRange(raw string) (PriceRange, error) {
	parts := strings.Split(raw, "-")
	if len(parts) > 2 {
		return PriceRange{}, ErrInvalidPriceRange
	}

	bounds := make([]decimal.Decimal, 0, 2)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, "$")
		if part == "" {
			return PriceRange{}, ErrInvalidPriceRange
		}
		amount, err := decimal.NewFromString(part)
		if err != nil || amount.IsNegative() {
			return PriceRange{}, ErrInvalidPriceRange
		}
		bounds = append(bounds, amount)
	}

	pr := PriceRange{From: bounds[0], To: bounds[len(bounds)-1]}
	if pr.From.GreaterThan(pr.To) {
		return PriceRange{}, ErrInvalidPriceRange
	}
	return pr, nil
}

// String renders the range the way the catalog displays it.
func (p PriceRange) String() string {
	if p.From.Equal(p.To) {
		return "$" + p.From.String()
	}
	return "$" + p.From.String() + " - $" + p.To.String()
}
