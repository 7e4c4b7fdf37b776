package handler

import (
	"errors"
	"net/http"
	"time"

	"budget-app-go/internal/domain/user"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.validationError(w, err)
		return
	}

	account, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, user.ErrInvalidInput):
			h.validationError(w, err)
		default:
			h.log.InternalError("register user", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID:        account.ID,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	})
}

// Login takes the password grant form fields: username carries the email.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.validationError(w, err)
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		h.validationError(w, errors.New("username and password form fields are required"))
		return
	}

	account, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Incorrect email or password.")
			return
		}
		h.log.InternalError("authenticate user", err)
		writeInternalError(w)
		return
	}

	tokenString, err := h.tokens.Issue(account.Email)
	if err != nil {
		h.log.InternalError("issue token", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
	})
}
