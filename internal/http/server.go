// Package http is the presentation layer: a thin JSON boundary over the
// registry, ledger and reporting engine. It does no business logic of its
// own; validation and constraint decisions happen in the services and are
// only translated to status codes here.
package http

import (
	"context"
	"net/http"

	"ledgerbook/internal/core"
	applog "ledgerbook/internal/log"
)

// Ports consumed by the handlers.
type (
	ClientRegistry interface {
		Add(ctx context.Context, c core.Client) (int64, error)
		Get(ctx context.Context, id int64) (*core.Client, error)
		List(ctx context.Context) ([]core.Client, error)
		Update(ctx context.Context, c core.Client) error
		Delete(ctx context.Context, id int64) error
	}

	TransactionLedger interface {
		Add(ctx context.Context, t core.Transaction) (int64, error)
		Get(ctx context.Context, id int64) (*core.Transaction, error)
		Update(ctx context.Context, t core.Transaction) error
		Delete(ctx context.Context, id int64) error
	}

	ReportingEngine interface {
		MonthlyTotals(ctx context.Context, year int) (core.MonthlyTotals, error)
		DailyBreakdown(ctx context.Context, year, month int) (core.DailyBreakdown, error)
	}
)

type Server struct {
	http.Server
	registry ClientRegistry
	ledger   TransactionLedger
	reports  ReportingEngine
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, registry ClientRegistry, ledger TransactionLedger, reports ReportingEngine, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		registry: registry,
		ledger:   ledger,
		reports:  reports,
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/clients", s.handleClients)
	mux.HandleFunc("/api/clients/", s.handleClientByID)
	mux.HandleFunc("/api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/reports/monthly", s.handleMonthlyTotals)
	mux.HandleFunc("/api/reports/daily", s.handleDailyBreakdown)

	s.Server = http.Server{
		Addr:    addr,
		Handler: applog.Middleware(logger)(mux),
	}

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
