package agenda

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jurisgestao/jurisgestao/internal/platform/httpx"
	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// Handler manages agenda endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	rbac     rbac.Middleware
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbacMw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbacMw, validate: validator.New()}
}

// MountRoutes registers agenda routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermAgendaViewOwn, shared.PermAgendaViewAll))
		r.Get("/day", h.listDay)
		r.Get("/month", h.listMonth)
		r.Get("/availability", h.availability)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermAgendaManageOwn, shared.PermAgendaManageAll))
		r.Post("/appointments", h.createAppointment)
		r.Delete("/appointments/{id}", h.deleteAppointment)
		r.Post("/availability/toggle", h.toggleAvailability)
	})
}

type appointmentResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ClientID  *int64    `json:"client_id,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Kind      string    `json:"kind"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type createAppointmentRequest struct {
	UserID   int64     `json:"user_id"`
	ClientID *int64    `json:"client_id"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Kind     string    `json:"kind" validate:"required,max=50"`
	Notes    string    `json:"notes"`
}

type toggleAvailabilityRequest struct {
	Day string `json:"day" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) listDay(w http.ResponseWriter, r *http.Request) {
	actor := rbac.PrincipalFromContext(r.Context())
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "date must be YYYY-MM-DD")
		return
	}
	appts, err := h.service.ListDay(r.Context(), actor, queryUserID(r, actor), day)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(appts))
}

func (h *Handler) listMonth(w http.ResponseWriter, r *http.Request) {
	actor := rbac.PrincipalFromContext(r.Context())
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid month")
		return
	}
	appts, err := h.service.ListMonth(r.Context(), actor, queryUserID(r, actor), year, time.Month(month))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(appts))
}

func (h *Handler) availability(w http.ResponseWriter, r *http.Request) {
	actor := rbac.PrincipalFromContext(r.Context())
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "date must be YYYY-MM-DD")
		return
	}
	available, err := h.service.IsAvailable(r.Context(), actor, queryUserID(r, actor), day)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	actor := rbac.PrincipalFromContext(r.Context())
	var req createAppointmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	appt, err := h.service.Create(r.Context(), actor, CreateInput{
		UserID:   req.UserID,
		ClientID: req.ClientID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Kind:     req.Kind,
		Notes:    req.Notes,
	})
	if err != nil {
		h.logger.Error("create appointment failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(*appt))
}

func (h *Handler) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	actor := rbac.PrincipalFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid appointment id")
		return
	}
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toggleAvailability(w http.ResponseWriter, r *http.Request) {
	actor := rbac.PrincipalFromContext(r.Context())
	var req toggleAvailabilityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	day, _ := time.Parse("2006-01-02", req.Day)
	available, err := h.service.ToggleAvailability(r.Context(), actor, day)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"available": available})
}

func queryUserID(r *http.Request, actor *rbac.Principal) int64 {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return actor.UserID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return actor.UserID
	}
	return id
}

func toResponses(appts []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toResponse(a))
	}
	return out
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		ClientID:  a.ClientID,
		StartsAt:  a.StartsAt,
		EndsAt:    a.EndsAt,
		Kind:      a.Kind,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
	}
}
