package services

import (
	"context"
	"fmt"

	"ledgerbook/internal/core"
)

// ReportingEngine derives monthly totals and daily breakdowns from the
// ledger, joined with registry data for display names. It is a read-only
// derivation over current store state: no retries, no session state beyond
// the store handle. Report queries are idempotent, so callers may retry a
// failed read freely.
type ReportingEngine struct {
	store ReportStore
}

func NewReportingEngine(store ReportStore) *ReportingEngine {
	return &ReportingEngine{store: store}
}

// MonthlyTotals sums transaction amounts per month of the given year, keyed
// by two-digit month code. Months without transactions are absent from the
// result. Sums are unrounded; display rounding is the caller's concern.
// Any year is accepted.
func (e *ReportingEngine) MonthlyTotals(ctx context.Context, year int) (core.MonthlyTotals, error) {
	rows, err := e.store.TransactionsForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("monthly totals for %d: %w", year, err)
	}

	totals := make(core.MonthlyTotals)
	for _, row := range rows {
		if len(row.Date) < 7 {
			continue
		}
		totals[row.Date[5:7]] += row.Amount
	}
	return totals, nil
}

// DailyBreakdown groups the month's transactions by exact date, in the
// store's date-ascending order. The client name is left-joined in: a
// transaction whose client was since removed still appears, with a nil
// name, rather than being dropped.
func (e *ReportingEngine) DailyBreakdown(ctx context.Context, year, month int) (core.DailyBreakdown, error) {
	if month < 1 || month > 12 {
		return nil, &core.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}

	rows, err := e.store.TransactionsForMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("daily breakdown for %04d-%02d: %w", year, month, err)
	}

	byDate := make(core.DailyBreakdown)
	for _, row := range rows {
		byDate[row.Date] = append(byDate[row.Date], core.TransactionDetail{
			ID:          row.ID,
			ClientID:    row.ClientID,
			Amount:      row.Amount,
			Description: row.Description,
			ClientName:  row.ClientName,
		})
	}
	return byDate, nil
}
