package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ledgerbook/internal/core"
)

type transactionRequest struct {
	ClientID    int64   `json:"client_id"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
		return
	}

	id, err := s.ledger.Add(r.Context(), core.Transaction{
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"id", id, "client_id", req.ClientID, "amount", req.Amount, "date", req.Date)
	respondJSON(w, http.StatusCreated, createdBody{ID: id})
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path, "/api/transactions/")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed transaction id"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		tx, err := s.ledger.Get(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		respondJSON(w, http.StatusOK, tx)

	case http.MethodPut:
		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
			return
		}

		err := s.ledger.Update(r.Context(), core.Transaction{
			ID:          id,
			ClientID:    req.ClientID,
			Amount:      req.Amount,
			Date:        req.Date,
			Description: req.Description,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		respondJSON(w, http.StatusOK, createdBody{ID: id})

	case http.MethodDelete:
		if err := s.ledger.Delete(r.Context(), id); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
