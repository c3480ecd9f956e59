package http

import "net/http"

// Dashboard handlers delegate to the analytics service, which computes each
// read off a storage snapshot and caches the result per calendar day.

func (s *Server) handleHealthScore(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.HealthScore(r.Context())
	if err != nil {
		serviceError(w, r, err, "health score")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSpendingVelocity(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.SpendingVelocity(r.Context())
	if err != nil {
		serviceError(w, r, err, "spending velocity")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSpendingPatterns(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.SpendingPatterns(r.Context())
	if err != nil {
		serviceError(w, r, err, "spending patterns")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.Recommendations(r.Context())
	if err != nil {
		serviceError(w, r, err, "recommendations")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAvailableSpending(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.AvailableSpending(r.Context())
	if err != nil {
		serviceError(w, r, err, "available spending")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOverdraftStatus(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.OverdraftStatus(r.Context())
	if err != nil {
		serviceError(w, r, err, "overdraft status")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpcomingBills(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.UpcomingBills(r.Context())
	if err != nil {
		serviceError(w, r, err, "upcoming bills")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProjectedBalance(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.ProjectedBalance(r.Context())
	if err != nil {
		serviceError(w, r, err, "projected balance")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMonthComparison(w http.ResponseWriter, r *http.Request) {
	out, err := s.analytics.MonthComparison(r.Context())
	if err != nil {
		serviceError(w, r, err, "month comparison")
		return
	}
	writeJSON(w, http.StatusOK, out)
}
