package http

import (
	"net/http"
	"sync/atomic"
)

// ---- accounts ----

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	items, err := s.records.ListAccounts(r.Context())
	if err != nil {
		serviceError(w, r, err, "accounts")
		return
	}
	out := make([]accountPayload, 0, len(items))
	for _, a := range items {
		out = append(out, accountJSON(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var p accountPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	a := p.toDomain()
	if err := a.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, err := s.records.CreateAccount(r.Context(), a)
	if err != nil {
		serviceError(w, r, err, "account")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusCreated, accountJSON(created))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.records.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, "account")
		return
	}
	writeJSON(w, http.StatusOK, accountJSON(a))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var p accountPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	a := p.toDomain()
	a.ID = r.PathValue("id")
	if err := a.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.records.UpdateAccount(r.Context(), a); err != nil {
		serviceError(w, r, err, "account")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusOK, accountJSON(a))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, r, err, "account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- fixed expenses ----

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	items, err := s.records.ListExpenses(r.Context())
	if err != nil {
		serviceError(w, r, err, "expenses")
		return
	}
	out := make([]expensePayload, 0, len(items))
	for _, fe := range items {
		out = append(out, expenseJSON(fe))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var p expensePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	fe := p.toDomain()
	if err := fe.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, err := s.records.CreateExpense(r.Context(), fe)
	if err != nil {
		serviceError(w, r, err, "expense")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusCreated, expenseJSON(created))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	fe, err := s.records.GetExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, expenseJSON(fe))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var p expensePayload
	if !decodeJSON(w, r, &p) {
		return
	}
	fe := p.toDomain()
	fe.ID = r.PathValue("id")
	if err := fe.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.records.UpdateExpense(r.Context(), fe); err != nil {
		serviceError(w, r, err, "expense")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusOK, expenseJSON(fe))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, r, err, "expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkExpensePaid(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Paid bool `json:"paid"`
	}
	if !decodeJSON(w, r, &p) {
		return
	}
	id := r.PathValue("id")
	if err := s.records.MarkExpensePaid(r.Context(), id, p.Paid); err != nil {
		serviceError(w, r, err, "expense")
		return
	}
	fe, err := s.records.GetExpense(r.Context(), id)
	if err != nil {
		serviceError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, expenseJSON(fe))
}

// ---- transactions ----

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	items, err := s.records.ListTransactions(r.Context())
	if err != nil {
		serviceError(w, r, err, "transactions")
		return
	}
	out := make([]transactionPayload, 0, len(items))
	for _, tx := range items {
		out = append(out, transactionJSON(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var p transactionPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	tx, err := p.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, err := s.records.CreateTransaction(r.Context(), tx)
	if err != nil {
		serviceError(w, r, err, "transaction")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusCreated, transactionJSON(created))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, r, err, "transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- retirement accounts ----

func (s *Server) handleListRetirement(w http.ResponseWriter, r *http.Request) {
	items, err := s.records.ListRetirement(r.Context())
	if err != nil {
		serviceError(w, r, err, "retirement accounts")
		return
	}
	out := make([]retirementPayload, 0, len(items))
	for _, ra := range items {
		out = append(out, retirementJSON(ra))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRetirement(w http.ResponseWriter, r *http.Request) {
	var p retirementPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	ra := p.toDomain()
	if err := ra.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, err := s.records.CreateRetirement(r.Context(), ra)
	if err != nil {
		serviceError(w, r, err, "retirement account")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusCreated, retirementJSON(created))
}

func (s *Server) handleGetRetirement(w http.ResponseWriter, r *http.Request) {
	ra, err := s.records.GetRetirement(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, "retirement account")
		return
	}
	writeJSON(w, http.StatusOK, retirementJSON(ra))
}

func (s *Server) handleUpdateRetirement(w http.ResponseWriter, r *http.Request) {
	var p retirementPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	ra := p.toDomain()
	ra.ID = r.PathValue("id")
	if err := ra.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.records.UpdateRetirement(r.Context(), ra); err != nil {
		serviceError(w, r, err, "retirement account")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusOK, retirementJSON(ra))
}

func (s *Server) handleDeleteRetirement(w http.ResponseWriter, r *http.Request) {
	if err := s.records.DeleteRetirement(r.Context(), r.PathValue("id")); err != nil {
		serviceError(w, r, err, "retirement account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	var p contributionPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	c, err := p.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if c.Amount <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "contribution amount must be positive")
		return
	}
	created, err := s.records.AddContribution(r.Context(), r.PathValue("id"), c)
	if err != nil {
		serviceError(w, r, err, "retirement account")
		return
	}
	atomic.AddInt64(&s.appMetrics.recordWrites, 1)
	writeJSON(w, http.StatusCreated, contributionJSON(created))
}
