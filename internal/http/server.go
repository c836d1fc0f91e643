package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"focusflow/internal/api"
	"focusflow/internal/dashboard"
	applog "focusflow/internal/log"
	"focusflow/internal/session"
)

// AuthAPI is the backend auth surface the server needs for login and
// registration. *api.AuthService satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.TokenPair, api.User, error)
	Register(ctx context.Context, name, email, password string) (api.TokenPair, api.User, error)
}

// Server exposes the dashboard services as a JSON API.
type Server struct {
	http.Server

	finance  *dashboard.FinanceService
	calories *dashboard.CalorieService
	goals    *dashboard.GoalsService
	sessions *session.Manager
	auth     AuthAPI
	logger   *applog.Logger

	rateLimiter  *rateLimiter
	metrics      *securityMetrics
	shutdownOnce sync.Once
}

func NewServer(
	addr string,
	finance *dashboard.FinanceService,
	calories *dashboard.CalorieService,
	goals *dashboard.GoalsService,
	sessions *session.Manager,
	auth AuthAPI,
	logger *applog.Logger,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		finance:     finance,
		calories:    calories,
		goals:       goals,
		sessions:    sessions,
		auth:        auth,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		rateLimiter: newRateLimiter(60, time.Minute),
		metrics:     &securityMetrics{},
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/auth/login", s.withSecurity(s.handleLogin))
	mux.HandleFunc("POST /api/auth/register", s.withSecurity(s.handleRegister))
	mux.HandleFunc("POST /api/auth/logout", s.withSecurity(s.handleLogout))
	mux.HandleFunc("GET /api/auth/session", s.withSecurity(s.handleSession))

	mux.HandleFunc("GET /api/finance/overview", s.withSecurity(s.handleFinanceOverview))
	mux.HandleFunc("POST /api/expenses", s.withSecurity(s.handleCreateExpense))
	mux.HandleFunc("PATCH /api/expenses/{id}", s.withSecurity(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withSecurity(s.handleDeleteExpense))
	mux.HandleFunc("POST /api/income", s.withSecurity(s.handleCreateIncome))
	mux.HandleFunc("DELETE /api/income/{id}", s.withSecurity(s.handleDeleteIncome))
	mux.HandleFunc("POST /api/savings", s.withSecurity(s.handleCreateSaving))
	mux.HandleFunc("POST /api/savings/{id}/contribute", s.withSecurity(s.handleContribute))
	mux.HandleFunc("DELETE /api/savings/{id}", s.withSecurity(s.handleDeleteSaving))
	mux.HandleFunc("POST /api/loans", s.withSecurity(s.handleCreateLoan))
	mux.HandleFunc("POST /api/loans/{id}/payments", s.withSecurity(s.handleLoanPayment))
	mux.HandleFunc("DELETE /api/loans/{id}", s.withSecurity(s.handleDeleteLoan))

	mux.HandleFunc("GET /api/calories/summary", s.withSecurity(s.handleCalorieSummary))
	mux.HandleFunc("GET /api/calories/stats", s.withSecurity(s.handleCalorieStats))
	mux.HandleFunc("POST /api/calories/entries", s.withSecurity(s.handleLogFood))
	mux.HandleFunc("DELETE /api/calories/entries/{id}", s.withSecurity(s.handleDeleteFood))
	mux.HandleFunc("PUT /api/calories/goal", s.withSecurity(s.handleSetCalorieGoal))
	mux.HandleFunc("POST /api/calories/reflection", s.withSecurity(s.handleRateDay))

	mux.HandleFunc("GET /api/goals/overview", s.withSecurity(s.handleGoalsOverview))
	mux.HandleFunc("POST /api/goals", s.withSecurity(s.handleCreateGoal))
	mux.HandleFunc("POST /api/daily-logs", s.withSecurity(s.handleCreateDailyLog))

	return s
}

// withSecurity adds request logging, rate limiting on mutations, and the
// standard security headers.
func (s *Server) withSecurity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), applog.RequestIDKey, requestID)
		r = r.WithContext(ctx)

		if detectSuspiciousRequest(r, s.metrics) {
			s.logger.WarnContext(ctx, "Suspicious request",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
		}

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP, s.metrics) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready once the finance records loaded at least
// once. The calorie store is local and always ready.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.finance != nil && !s.finance.Loaded() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown stops the rate limiter cleanup goroutine and the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		err = s.Server.Shutdown(ctx)
	})
	return err
}
