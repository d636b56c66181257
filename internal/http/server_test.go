package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ledgerbook/internal/core"
	applog "ledgerbook/internal/log"
)

type fakeRegistry struct {
	clients map[int64]core.Client
	nextID  int64
	deleted []int64
}

func (f *fakeRegistry) Add(ctx context.Context, c core.Client) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	f.nextID++
	c.ID = f.nextID
	if f.clients == nil {
		f.clients = map[int64]core.Client{}
	}
	f.clients[c.ID] = c
	return c.ID, nil
}

func (f *fakeRegistry) Get(ctx context.Context, id int64) (*core.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &c, nil
}

func (f *fakeRegistry) List(ctx context.Context) ([]core.Client, error) {
	var out []core.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRegistry) Update(ctx context.Context, c core.Client) error {
	if _, ok := f.clients[c.ID]; !ok {
		return &core.ValidationError{Field: "id", Reason: "unknown client"}
	}
	f.clients[c.ID] = c
	return nil
}

func (f *fakeRegistry) Delete(ctx context.Context, id int64) error {
	if id == 409 {
		return &core.ConstraintError{Reason: "client 409 has dependent transactions"}
	}
	if _, ok := f.clients[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.clients, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeLedger struct {
	txs    map[int64]core.Transaction
	nextID int64
}

func (f *fakeLedger) Add(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(core.DefaultMaxTransactionAmount); err != nil {
		return 0, err
	}
	f.nextID++
	t.ID = f.nextID
	if f.txs == nil {
		f.txs = map[int64]core.Transaction{}
	}
	f.txs[t.ID] = t
	return t.ID, nil
}

func (f *fakeLedger) Get(ctx context.Context, id int64) (*core.Transaction, error) {
	t, ok := f.txs[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &t, nil
}

func (f *fakeLedger) Update(ctx context.Context, t core.Transaction) error { return nil }
func (f *fakeLedger) Delete(ctx context.Context, id int64) error           { return nil }

type fakeReports struct {
	totals    core.MonthlyTotals
	breakdown core.DailyBreakdown
	err       error
}

func (f *fakeReports) MonthlyTotals(ctx context.Context, year int) (core.MonthlyTotals, error) {
	return f.totals, f.err
}

func (f *fakeReports) DailyBreakdown(ctx context.Context, year, month int) (core.DailyBreakdown, error) {
	if month < 1 || month > 12 {
		return nil, &core.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}
	return f.breakdown, f.err
}

func newTestServer(reg *fakeRegistry, led *fakeLedger, rep *fakeReports) *Server {
	return NewServer(":0", reg, led, rep, applog.New(applog.DefaultConfig()))
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(&fakeRegistry{}, &fakeLedger{}, &fakeReports{})
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(t, srv, http.MethodGet, path, "")
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestCreateClient(t *testing.T) {
	srv := newTestServer(&fakeRegistry{}, &fakeLedger{}, &fakeReports{})

	// Wrong method
	rr := do(t, srv, http.MethodPut, "/api/clients", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Malformed body
	rr = do(t, srv, http.MethodPost, "/api/clients", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	// Bad email
	rr = do(t, srv, http.MethodPost, "/api/clients", `{"name":"Alice","email":"nope"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Success
	rr = do(t, srv, http.MethodPost, "/api/clients", `{"name":"Alice","email":"alice@example.com"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created createdBody
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a generated id")
	}
}

func TestClientByID(t *testing.T) {
	reg := &fakeRegistry{}
	srv := newTestServer(reg, &fakeLedger{}, &fakeReports{})
	_, _ = reg.Add(context.Background(), core.Client{Name: "Alice", Email: "alice@example.com"})

	rr := do(t, srv, http.MethodGet, "/api/clients/1", "")
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var got core.Client
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name != "Alice" {
		t.Fatalf("unexpected client: %+v", got)
	}

	// Absent record
	rr = do(t, srv, http.MethodGet, "/api/clients/999", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	// Malformed id
	rr = do(t, srv, http.MethodGet, "/api/clients/abc", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	// Constraint refusal surfaces as conflict
	rr = do(t, srv, http.MethodDelete, "/api/clients/409", "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}

	// Delete succeeds
	rr = do(t, srv, http.MethodDelete, "/api/clients/1", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestCreateTransaction(t *testing.T) {
	srv := newTestServer(&fakeRegistry{}, &fakeLedger{}, &fakeReports{})

	// Invalid date
	rr := do(t, srv, http.MethodPost, "/api/transactions", `{"client_id":1,"amount":10,"date":"2023-02-29"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Success
	rr = do(t, srv, http.MethodPost, "/api/transactions", `{"client_id":1,"amount":500,"date":"2024-01-10","description":"Invoice 42"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestMonthlyTotalsEndpoint(t *testing.T) {
	rep := &fakeReports{totals: core.MonthlyTotals{"01": 750.0, "02": 100.0}}
	srv := newTestServer(&fakeRegistry{}, &fakeLedger{}, rep)

	rr := do(t, srv, http.MethodGet, "/api/reports/monthly?year=2024", "")
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var got map[string]float64
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["01"] != 750.0 || got["02"] != 100.0 {
		t.Fatalf("unexpected totals: %v", got)
	}
}

func TestDailyBreakdownEndpoint(t *testing.T) {
	name := "Test Client"
	rep := &fakeReports{breakdown: core.DailyBreakdown{
		"2024-02-20": {{ID: 1, ClientID: 1, Amount: 300.0, Description: "Design work", ClientName: &name}},
	}}
	srv := newTestServer(&fakeRegistry{}, &fakeLedger{}, rep)

	rr := do(t, srv, http.MethodGet, "/api/reports/daily?year=2024&month=2", "")
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Design work") {
		t.Fatalf("body missing detail: %s", rr.Body.String())
	}

	// Out-of-range month is a validation error
	rr = do(t, srv, http.MethodGet, "/api/reports/daily?year=2024&month=13", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}
