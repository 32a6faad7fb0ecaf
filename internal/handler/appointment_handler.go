package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"appointment-api/internal/apperror"
	"appointment-api/internal/middleware"
	"appointment-api/internal/model"
)

type appointmentRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
}

func (req *appointmentRequest) validate() *apperror.AppError {
	if req.Title == "" || req.Description == "" || req.StartTime.IsZero() || req.EndTime.IsZero() {
		return apperror.NewBadRequest("please add all required fields")
	}
	if !req.EndTime.After(req.StartTime) {
		return apperror.NewBadRequest("end time must be after start time")
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		return apperror.NewBadRequest("invalid status")
	}
	return nil
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, err)
		return
	}

	status := req.Status
	if status == "" {
		status = model.StatusScheduled
	}

	// owner stamped from the authenticated identity
	a := &model.Appointment{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Status:      status,
		UserID:      u.ID,
	}

	if err := h.store.CreateAppointment(r.Context(), a); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	var from, to time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid from time")
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid to time")
			return
		}
		to = t
	}

	apts, err := h.store.ListAppointments(r.Context(), u.ID, from, to)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apts)
}

// ownedAppointment loads the appointment and applies the ownership rule:
// a missing id is NotFound, a mismatched owner is Forbidden, in that order.
func (h *Handler) ownedAppointment(r *http.Request) (*model.Appointment, error) {
	id := r.PathValue("id")
	if id == "" {
		return nil, apperror.NewBadRequest("id required")
	}
	a, err := h.store.GetAppointment(r.Context(), id)
	if err != nil {
		return nil, err
	}
	u, _ := middleware.UserFrom(r.Context())
	if a.UserID != u.ID {
		return nil, apperror.NewForbidden("user not authorized")
	}
	return a, nil
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	a, err := h.ownedAppointment(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	a, err := h.ownedAppointment(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, err)
		return
	}

	a.Title = req.Title
	a.Description = req.Description
	a.StartTime = req.StartTime
	a.EndTime = req.EndTime
	a.Location = req.Location
	if req.Status != "" {
		a.Status = req.Status
	}

	if err := h.store.UpdateAppointment(r.Context(), a); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	a, err := h.ownedAppointment(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.store.DeleteAppointment(r.Context(), a.ID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": a.ID})
}
