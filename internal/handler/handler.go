// Package handler contains the chi HTTP handlers that translate
// requests and responses to and from the portal service.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/pec-events/portal/internal/auth"
	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/service"
	"github.com/pec-events/portal/internal/store"
)

// Handler holds all HTTP handlers for the portal API.
type Handler struct {
	svc      *service.Portal
	validate *validator.Validate
	logger   *slog.Logger
}

// New constructs a Handler.
func New(svc *service.Portal, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
		logger:   logger,
	}
}

// NewRouter builds the portal router. Login and health are public; the
// rest of the API requires a valid access token.
func NewRouter(h *Handler, tokens *auth.Tokens, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(CORS)

	r.Get("/health", HealthCheck)
	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens, logger))

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Get("/{id}", h.GetEvent)
			r.Get("/{id}/status", h.RegistrationStatus)
			r.Post("/{id}/register", h.Register)
			r.Get("/{id}/participants", h.EventParticipants)
			r.Post("/{id}/scores", h.SubmitScores)
		})
		r.Get("/students/{id}/registrations", h.StudentRegistrations)
		r.Get("/houses/{house}/pending", h.PendingRequests)
		r.Patch("/registrations/{id}/status", h.DecideRegistration)
		r.Get("/judges/{id}/events", h.JudgeEvents)
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Patch("/{id}/picture", h.UpdateProfilePicture)
		})
		r.Get("/leaderboard", h.Leaderboard)
	})

	return r
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (h *Handler) decodeValid(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ─── Events & registration ────────────────────────────────────────────────────

// ListEvents handles GET /events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		h.logger.Error("list events failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		h.logger.Error("get event failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Register handles POST /events/{id}/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	var req model.RegisterRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.svc.RegisterForEvent(r.Context(), eventID, req.StudentID, req.EventType)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, store.ErrEventFull):
			// Capacity refusal, not a failure: the record was simply not
			// created.
			writeJSON(w, http.StatusConflict, model.RegisterResponse{Created: false})
		default:
			h.logger.Error("register failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to register")
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.RegisterResponse{Created: true, Registration: reg})
}

// RegistrationStatus handles GET /events/{id}/status?studentId=...
// The status field is null when the student has no registration for
// the event.
func (h *Handler) RegistrationStatus(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	studentID := r.URL.Query().Get("studentId")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "studentId query parameter is required")
		return
	}

	status, found, err := h.svc.RegistrationStatus(r.Context(), eventID, studentID)
	if err != nil {
		h.logger.Error("registration status failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get registration status")
		return
	}

	var body struct {
		Status *model.RegistrationStatus `json:"status"`
	}
	if found {
		body.Status = &status
	}
	writeJSON(w, http.StatusOK, body)
}

// EventParticipants handles GET /events/{id}/participants.
func (h *Handler) EventParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.svc.EventParticipants(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("list participants failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list participants")
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

// SubmitScores handles POST /events/{id}/scores.
func (h *Handler) SubmitScores(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	var req model.SubmitScoresRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.SubmitScores(r.Context(), eventID, req.Updates); err != nil {
		h.logger.Error("submit scores failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit scores")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ─── Registrations & approvals ────────────────────────────────────────────────

// StudentRegistrations handles GET /students/{id}/registrations.
func (h *Handler) StudentRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.StudentRegistrations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("list student registrations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// PendingRequests handles GET /houses/{house}/pending.
func (h *Handler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	house := model.House(chi.URLParam(r, "house"))
	if !house.Valid() {
		writeError(w, http.StatusBadRequest, "unknown house")
		return
	}

	requests, err := h.svc.PendingRequests(r.Context(), house)
	if err != nil {
		h.logger.Error("list pending requests failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list pending requests")
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// DecideRegistration handles PATCH /registrations/{id}/status.
func (h *Handler) DecideRegistration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.DecisionRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.DecideRegistration(r.Context(), id, req.Approve); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "registration not found")
			return
		}
		h.logger.Error("decide registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update registration")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ─── Judges, users, leaderboard ───────────────────────────────────────────────

// JudgeEvents handles GET /judges/{id}/events.
func (h *Handler) JudgeEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.JudgeEvents(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("list judge events failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list judge events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// UpdateProfilePicture handles PATCH /users/{id}/picture.
func (h *Handler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.UpdatePictureRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.UpdateProfilePicture(r.Context(), id, req.ImageURL)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("update profile picture failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update profile picture")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Leaderboard handles GET /leaderboard?year=YYYY. Year defaults to the
// current year when absent.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		year = parsed
	}

	board, err := h.svc.Standings(r.Context(), year)
	if err != nil {
		h.logger.Error("leaderboard failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
