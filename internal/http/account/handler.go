package account

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/account"
	"github.com/avolkov/tinycrm/internal/http/httpx"
)

type Handler struct {
	svc           *account.Service
	sessionSecret []byte
	sessionTTL    time.Duration
}

func NewHandler(svc *account.Service, sessionSecret []byte, sessionTTL time.Duration) *Handler {
	return &Handler{svc: svc, sessionSecret: sessionSecret, sessionTTL: sessionTTL}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/google", h.google)
}

type accountResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
}

type authResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

func toAuthResponse(a *account.Account, token string) authResponse {
	return authResponse{
		Token: token,
		Account: accountResponse{
			ID:       a.ID,
			Username: a.Username,
			Email:    a.Email,
		},
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, token, err := h.svc.Register(r.Context(), account.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	h.setSessionCookie(w, a)
	httpx.JSON(w, http.StatusCreated, toAuthResponse(a, token))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	h.setSessionCookie(w, a)
	httpx.JSON(w, http.StatusOK, toAuthResponse(a, token))
}

type googleRequest struct {
	IDToken string `json:"id_token"`
}

func (h *Handler) google(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, token, err := h.svc.ResolveGoogle(r.Context(), req.IDToken)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	h.setSessionCookie(w, a)
	httpx.JSON(w, http.StatusOK, toAuthResponse(a, token))
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, a *account.Account) {
	token, err := account.NewSessionToken(a.ID, h.sessionSecret, h.sessionTTL)
	if err != nil {
		// The API token in the body still authenticates the caller.
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
