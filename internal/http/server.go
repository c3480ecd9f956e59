package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"fintrack/internal/log"
	"fintrack/internal/services"
)

// appMetrics tracks application-level counters exposed on /metrics.
type appMetrics struct {
	startedAt     time.Time
	totalRequests int64
	recordWrites  int64
}

type Server struct {
	http.Server

	records   *services.RecordService
	incomes   *services.IncomeService
	analytics *services.AnalyticsService

	// ready reports whether downstream dependencies are reachable.
	ready func(ctx context.Context) error

	logger      *log.Logger
	rateLimiter *rateLimiter
	secMetrics  *securityMetrics
	appMetrics  *appMetrics

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, records *services.RecordService, incomes *services.IncomeService, analyticsSvc *services.AnalyticsService, ready func(context.Context) error, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		records:     records,
		incomes:     incomes,
		analytics:   analyticsSvc,
		ready:       ready,
		logger:      logger,
		rateLimiter: newRateLimiter(120),
		secMetrics:  &securityMetrics{},
		appMetrics:  &appMetrics{startedAt: time.Now()},
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/accounts", s.wrap(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.wrap(s.handleCreateAccount))
	mux.HandleFunc("GET /api/accounts/{id}", s.wrap(s.handleGetAccount))
	mux.HandleFunc("PUT /api/accounts/{id}", s.wrap(s.handleUpdateAccount))
	mux.HandleFunc("DELETE /api/accounts/{id}", s.wrap(s.handleDeleteAccount))

	mux.HandleFunc("GET /api/income", s.wrap(s.handleListIncome))
	mux.HandleFunc("POST /api/income", s.wrap(s.handleCreateIncome))
	mux.HandleFunc("GET /api/income/{id}", s.wrap(s.handleGetIncome))
	mux.HandleFunc("PUT /api/income/{id}", s.wrap(s.handleUpdateIncome))
	mux.HandleFunc("DELETE /api/income/{id}", s.wrap(s.handleDeleteIncome))
	mux.HandleFunc("POST /api/income/{id}/payments", s.wrap(s.handleAddPayment))
	mux.HandleFunc("DELETE /api/income/{id}/payments/{paymentID}", s.wrap(s.handleDeletePayment))
	mux.HandleFunc("GET /api/income/{id}/analysis", s.wrap(s.handleIncomeAnalysis))
	mux.HandleFunc("GET /api/income/trends", s.wrap(s.handleIncomeTrends))
	mux.HandleFunc("GET /api/income/year-over-year", s.wrap(s.handleYearOverYear))

	mux.HandleFunc("GET /api/expenses", s.wrap(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.wrap(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses/{id}", s.wrap(s.handleGetExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.wrap(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.wrap(s.handleDeleteExpense))
	mux.HandleFunc("POST /api/expenses/{id}/paid", s.wrap(s.handleMarkExpensePaid))

	mux.HandleFunc("GET /api/transactions", s.wrap(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.wrap(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.wrap(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/retirement", s.wrap(s.handleListRetirement))
	mux.HandleFunc("POST /api/retirement", s.wrap(s.handleCreateRetirement))
	mux.HandleFunc("GET /api/retirement/{id}", s.wrap(s.handleGetRetirement))
	mux.HandleFunc("PUT /api/retirement/{id}", s.wrap(s.handleUpdateRetirement))
	mux.HandleFunc("DELETE /api/retirement/{id}", s.wrap(s.handleDeleteRetirement))
	mux.HandleFunc("POST /api/retirement/{id}/contributions", s.wrap(s.handleAddContribution))

	mux.HandleFunc("GET /api/dashboard/health-score", s.wrap(s.handleHealthScore))
	mux.HandleFunc("GET /api/dashboard/spending-velocity", s.wrap(s.handleSpendingVelocity))
	mux.HandleFunc("GET /api/dashboard/spending-patterns", s.wrap(s.handleSpendingPatterns))
	mux.HandleFunc("GET /api/dashboard/recommendations", s.wrap(s.handleRecommendations))
	mux.HandleFunc("GET /api/dashboard/available-spending", s.wrap(s.handleAvailableSpending))
	mux.HandleFunc("GET /api/dashboard/overdraft-status", s.wrap(s.handleOverdraftStatus))
	mux.HandleFunc("GET /api/dashboard/upcoming-bills", s.wrap(s.handleUpcomingBills))
	mux.HandleFunc("GET /api/dashboard/projected-balance", s.wrap(s.handleProjectedBalance))
	mux.HandleFunc("GET /api/dashboard/month-comparison", s.wrap(s.handleMonthComparison))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// wrap adds security headers, rate limiting, and request logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		atomic.AddInt64(&s.appMetrics.totalRequests, 1)

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		reqLogger := s.logger.With(log.FieldRequestID, requestID)
		ctx := context.WithValue(r.Context(), log.LoggerContextKey, reqLogger)
		r = r.WithContext(ctx)

		httpLog := log.NewStructuredLogger(reqLogger)
		httpLog.LogHTTPStart(ctx, r, clientIP)

		if detectSuspiciousRequest(r, s.secMetrics) {
			reqLogger.WarnContext(ctx, "Suspicious request detected",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
		}

		// Only mutating requests count against the rate limit.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP, s.secMetrics) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		httpLog.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
