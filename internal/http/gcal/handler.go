package gcal

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/gcal"
	"github.com/avolkov/tinycrm/internal/http/httpx"
)

const defaultEventWindow = 50

type Handler struct {
	svc *gcal.Service
	now func() time.Time
}

func NewHandler(svc *gcal.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// Routes mounts the authenticated calendar surface. The handshake
// callback is served separately because the provider redirect carries
// no credentials of ours.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/auth/status", h.status)
	r.Get("/auth/init", h.authInit)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.listEvents)
		r.Post("/", h.createEvent)
		r.Get("/{id}", h.getEvent)
		r.Patch("/{id}", h.updateEvent)
		r.Delete("/{id}", h.deleteEvent)
	})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	connected, err := h.svc.Status(r.Context(), acc.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]bool{"connected": connected})
}

func (h *Handler) authInit(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	url, err := h.svc.AuthURL(r.Context(), acc.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"auth_url": url})
}

// Callback completes the provider handshake. It is reached by the
// provider's redirect, so it is mounted outside the authenticated tree.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	state := q.Get("state")
	code := q.Get("code")

	if state == "" || code == "" {
		httpx.Error(w, apperr.FieldErrors{"code": "state and code are required"})
		return
	}

	if err := h.svc.Callback(r.Context(), state, code); err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]bool{"connected": true})
}

type eventRequest struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

func toEventResponse(ev *gcal.Event) eventResponse {
	return eventResponse{
		ID:          ev.ID,
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       ev.Start,
		End:         ev.End,
	}
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from := h.now()
	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid from", http.StatusBadRequest)
			return
		}

		from = parsed
	}

	max := defaultEventWindow
	if raw := q.Get("max_results"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid max_results", http.StatusBadRequest)
			return
		}

		max = parsed
	}

	acc := httpx.AccountFrom(r)

	events, err := h.svc.ListEvents(r.Context(), acc.ID, from, max)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, toEventResponse(&events[i]))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	ev, err := h.svc.CreateEvent(r.Context(), acc.ID, gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toEventResponse(ev))
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	ev, err := h.svc.GetEvent(r.Context(), acc.ID, chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toEventResponse(ev))
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc := httpx.AccountFrom(r)

	ev, err := h.svc.UpdateEvent(r.Context(), acc.ID, chi.URLParam(r, "id"), gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toEventResponse(ev))
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	if err := h.svc.DeleteEvent(r.Context(), acc.ID, chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type contactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Contacts serves the read-only contact list, mounted under /google.
func (h *Handler) Contacts(w http.ResponseWriter, r *http.Request) {
	acc := httpx.AccountFrom(r)

	contacts, err := h.svc.ListContacts(r.Context(), acc.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, contactResponse{Name: c.Name, Email: c.Email, Phone: c.Phone})
	}

	httpx.JSON(w, http.StatusOK, resp)
}
