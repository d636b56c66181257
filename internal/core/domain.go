package core

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// DefaultMaxTransactionAmount is the upper bound applied to transaction
// amounts when no explicit limit is configured.
const DefaultMaxTransactionAmount = 99_000_000

type (
	// Client is a payer tracked by the freelancer. The ID is assigned by the
	// store on insert and never changes afterwards.
	Client struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		PhoneNumber string `json:"phone_number,omitempty"`
		Email       string `json:"email"`
		Notes       string `json:"notes,omitempty"`
	}

	// Transaction is a single dated income entry tied to a client. Date is an
	// ISO 8601 calendar date (YYYY-MM-DD).
	Transaction struct {
		ID          int64   `json:"id"`
		ClientID    int64   `json:"client_id"`
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"`
		Description string  `json:"description,omitempty"`
	}

	// ReportRow is one transaction joined with its client's name, as read
	// back from the store for reporting. ClientName is nil when the client
	// row no longer exists.
	ReportRow struct {
		Date        string
		ID          int64
		ClientID    int64
		Amount      float64
		Description string
		ClientName  *string
	}

	// TransactionDetail is one entry of a daily breakdown.
	TransactionDetail struct {
		ID          int64   `json:"id"`
		ClientID    int64   `json:"client_id"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description,omitempty"`
		ClientName  *string `json:"client_name"`
	}

	// MonthlyTotals maps a two-digit month code ("01".."12") to the summed
	// amount of that month's transactions. Months without transactions are
	// absent, never present with a zero value.
	MonthlyTotals map[string]float64

	// DailyBreakdown maps an exact date string to that day's transactions,
	// in store iteration order.
	DailyBreakdown map[string][]TransactionDetail
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s is a well-formed address: local part, @,
// domain with at least one dot and an alphabetic TLD of two or more
// characters. Both cases are accepted throughout.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidDate reports whether s is an exact YYYY-MM-DD calendar date.
// Out-of-range months and days, two-digit years and wrong separators all
// fail; leap years are honored.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if !ValidEmail(c.Email) {
		return &ValidationError{Field: "email", Reason: "malformed address"}
	}
	return nil
}

// Validate checks the transaction against the given amount ceiling. It must
// pass before any store mutation happens.
func (t Transaction) Validate(maxAmount float64) error {
	if t.ClientID == 0 {
		return &ValidationError{Field: "client_id", Reason: "required"}
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return &ValidationError{Field: "amount", Reason: "must be a finite number"}
	}
	if t.Amount < 0 || t.Amount > maxAmount {
		return &ValidationError{Field: "amount", Reason: "out of range"}
	}
	if !ValidDate(t.Date) {
		return &ValidationError{Field: "date", Reason: "must be a valid YYYY-MM-DD date"}
	}
	return nil
}
