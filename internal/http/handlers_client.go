package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ledgerbook/internal/core"
)

type clientRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
}

type createdBody struct {
	ID int64 `json:"id"`
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		clients, err := s.registry.List(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		if clients == nil {
			clients = []core.Client{}
		}
		respondJSON(w, http.StatusOK, clients)

	case http.MethodPost:
		var req clientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
			return
		}

		id, err := s.registry.Add(r.Context(), core.Client{
			Name:        req.Name,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			Notes:       req.Notes,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		slog.InfoContext(r.Context(), "Client created", "id", id, "name", req.Name)
		respondJSON(w, http.StatusCreated, createdBody{ID: id})

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleClientByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Path, "/api/clients/")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed client id"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		client, err := s.registry.Get(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		respondJSON(w, http.StatusOK, client)

	case http.MethodPut:
		var req clientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
			return
		}

		err := s.registry.Update(r.Context(), core.Client{
			ID:          id,
			Name:        req.Name,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			Notes:       req.Notes,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		respondJSON(w, http.StatusOK, createdBody{ID: id})

	case http.MethodDelete:
		if err := s.registry.Delete(r.Context(), id); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
