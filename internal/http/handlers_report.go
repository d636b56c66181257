package http

import (
	"net/http"
)

func (s *Server) handleMonthlyTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	year, _ := parseYearMonth(r)
	totals, err := s.reports.MonthlyTotals(r.Context(), year)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

func (s *Server) handleDailyBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	year, month := parseYearMonth(r)
	breakdown, err := s.reports.DailyBreakdown(r.Context(), year, month)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}
