package http

import (
	"net/http"
	"strconv"
	"sync/atomic"
)

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	items, err := s.incomes.List(r.Context())
	if err != nil {
		serviceError(w, r, err, "income sources")
		return
	}
	out := make([]incomePayload, 0, len(items))
	for _, inc := range items {
		out = append(out, incomeJSON(inc))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var p incomePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	inc, err := p.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := inc.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, err := s.incomes.Create(r.Context(), inc)
	if err != nil {
		serviceError(w, r, err, "income source")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusCreated, incomeJSON(created))
}

func (s *Server) handleGetIncome(w http.ResponseWriter, r *http.Request) {
	inc, err := s.incomes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, "income source")
		return
	}
	writeJSON(w, http.StatusOK, incomeJSON(inc))
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	var p incomePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	inc, err := p.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	inc.ID = r.PathValue("id")
	if err := inc.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.incomes.Update(r.Context(), inc); err != nil {
		serviceError(w, r, err, "income source")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	// Re-read: the update triggers a stats recompute.
	updated, err := s.incomes.Get(r.Context(), inc.ID)
	if err != nil {
		serviceError(w, r, err, "income source")
		return
	}
	writeJSON(w, http.StatusOK, incomeJSON(updated))
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.incomes.Delete(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, r, err, "income source")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	var p paymentPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	payment, err := p.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := payment.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, err := s.incomes.AddPayment(r.Context(), r.PathValue("id"), payment)
	if err != nil {
		serviceError(w, r, err, "income source")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusCreated, paymentJSON(created))
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	err := s.incomes.DeletePayment(r.Context(), r.PathValue("id"), r.PathValue("paymentID"))
	if err != nil {
		serviceError(w, r, err, "payment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIncomeAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.incomes.Analysis(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, "income source")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleIncomeTrends(w http.ResponseWriter, r *http.Request) {
	months := 0
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 60 {
			writeError(w, http.StatusUnprocessableEntity, "months must be between 1 and 60")
			return
		}
		months = n
	}
	trends, err := s.analytics.IncomeTrends(r.Context(), months)
	if err != nil {
		serviceError(w, r, err, "income trends")
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

func (s *Server) handleYearOverYear(w http.ResponseWriter, r *http.Request) {
	yoy, err := s.analytics.YearOverYear(r.Context())
	if err != nil {
		serviceError(w, r, err, "income history")
		return
	}
	writeJSON(w, http.StatusOK, yoy)
}
