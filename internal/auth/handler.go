package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/getsentry/sentry-go"
)

const maxFormBodyBytes = 1 << 20

// Password length bounds enforced at registration.
const (
	minPasswordLen = 7
	maxPasswordLen = 80
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /user/create: creates the account and returns the
// public user with an access token already embedded.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	input := RegisterInput{
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Username:  strings.TrimSpace(r.PostFormValue("username")),
	}

	if _, err := mail.ParseAddress(input.Email); err != nil {
		writeError(w, http.StatusBadRequest, "email is invalid")
		return
	}
	if input.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(input.Password) < minPasswordLen || len(input.Password) > maxPasswordLen {
		writeError(w, http.StatusBadRequest, "password length must be between 7 and 80 characters")
		return
	}

	user, err := h.service.Register(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is already taken. Register a new email.", strings.ToLower(input.Email)))
		case errors.Is(err, ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is already taken. Register a new username.", strings.ToLower(input.Username)))
		default:
			sentry.CaptureException(err)
			writeError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	token, err := h.service.AccessTokenFor(&user)
	if err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to issue access token")
		return
	}

	public := user.Public()
	public.AccessToken = token
	writeJSON(w, http.StatusCreated, public)
}

// Authenticate handles POST /user/authenticate: verifies the password and
// returns a fresh access token. Unknown username and wrong password produce
// the same response.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.service.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeUnauthorized(w, ErrInvalidCredentials.Error())
			return
		}
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	token, err := h.service.AccessTokenFor(user)
	if err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to issue access token")
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// Me handles GET /user/me: returns the identity resolved by the middleware.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		writeUnauthorized(w, ErrNoAuthenticatedUser.Error())
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}

// DeleteMe handles DELETE /user/me/delete: removes the authenticated account
// and returns its id. Tokens already issued keep verifying until expiry but
// stop resolving to an identity.
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		writeUnauthorized(w, ErrNoAuthenticatedUser.Error())
		return
	}

	deleted, err := h.service.DeleteAccount(r.Context(), user.UUID)
	if err != nil {
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, deleted)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
