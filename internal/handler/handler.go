package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"appointment-api/internal/apperror"
	"appointment-api/internal/middleware"
	"appointment-api/internal/model"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
}

type AppointmentStore interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	ListAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
}

type Store interface {
	UserStore
	AppointmentStore
}

type Handler struct {
	store    Store
	secret   string
	tokenTTL time.Duration
	cost     int
	log      *zap.SugaredLogger
}

func New(st Store, secret string, tokenTTL time.Duration, cost int, log *zap.SugaredLogger) *Handler {
	return &Handler{store: st, secret: secret, tokenTTL: tokenTTL, cost: cost, log: log}
}

// Routes mounts the full HTTP surface. The rate limiter covers the
// credential endpoints; the access guard covers everything under
// /api/appointments and /api/users/me.
func (h *Handler) Routes(rl *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	limit := middleware.RateLimit(rl, writeMessage)
	guard := middleware.Authenticate(h.secret, h.store, writeMessage)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("POST /api/users", limit(http.HandlerFunc(h.Register)))
	mux.Handle("POST /api/users/login", limit(http.HandlerFunc(h.Login)))
	mux.Handle("GET /api/users/me", guard(http.HandlerFunc(h.Me)))

	mux.Handle("POST /api/appointments", guard(http.HandlerFunc(h.CreateAppointment)))
	mux.Handle("GET /api/appointments", guard(http.HandlerFunc(h.ListAppointments)))
	mux.Handle("GET /api/appointments/{id}", guard(http.HandlerFunc(h.GetAppointment)))
	mux.Handle("PUT /api/appointments/{id}", guard(http.HandlerFunc(h.UpdateAppointment)))
	mux.Handle("DELETE /api/appointments/{id}", guard(http.HandlerFunc(h.DeleteAppointment)))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps an error through the taxonomy; internal causes are
// logged, never returned to the client.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	ae := apperror.From(err)
	if ae.StatusCode() == http.StatusInternalServerError {
		h.log.Errorw("internal error", "error", ae.Err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeMessage(w, ae.StatusCode(), ae.Message)
}
