package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	domain "authapi/backend/internal/domain/account"
	accountusecase "authapi/backend/internal/usecase/account"
)

const (
	msgCouldNotCreate = "Could not create user"
	msgUserNotFound   = "User not found"
	msgLoginAgain     = "Please try logging in again"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/users", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/sessions", http.HandlerFunc(s.handleLogin))
	s.router.Handle("/secret", s.authMiddleware(http.HandlerFunc(s.handleSecret)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type credentialsPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type accountResponse struct {
	ID          string `json:"id"`
	AccessToken string `json:"accessToken"`
	Name        string `json:"name"`
	Message     string `json:"message"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, msgCouldNotCreate, "invalid JSON payload")
		return
	}

	acct, err := s.accountService.Register(r.Context(), payload.Name, payload.Password)
	if err != nil {
		// Validation failures and name collisions share one client-visible
		// message so a response cannot confirm that a name is registered.
		switch {
		case errors.Is(err, accountusecase.ErrInvalidInput),
			errors.Is(err, accountusecase.ErrRegistrationFailed):
			writeFailure(w, http.StatusBadRequest, msgCouldNotCreate, err.Error())
		default:
			writeFailure(w, http.StatusBadRequest, msgCouldNotCreate, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, accountResponse{
		ID:          acct.ID,
		AccessToken: acct.AccessToken,
		Name:        acct.Name,
		Message:     "You're signed up!",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, msgUserNotFound, "invalid JSON payload")
		return
	}

	acct, err := s.accountService.Login(r.Context(), payload.Name, payload.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeFailure(w, http.StatusNotFound, msgUserNotFound, err.Error())
		} else {
			writeFailure(w, http.StatusNotFound, msgUserNotFound, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		ID:          acct.ID,
		AccessToken: acct.AccessToken,
		Name:        acct.Name,
		Message:     "You're logged in!",
	})
}

func (s *Server) handleSecret(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	acct, ok := currentAccountFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, msgLoginAgain, "authentication required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s here you can update your profile details", acct.Name),
	})
}

// authMiddleware resolves the Authorization header to an account before the
// protected handler runs. A missing header, an unknown token, and a malformed
// one are all the same lookup miss.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromHeader(r.Header.Get("Authorization"))

		acct, err := s.accountService.Authenticate(r.Context(), token)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, msgLoginAgain, "invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAccount{}, acct)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type ctxKeyAccount struct{}

func currentAccountFromContext(ctx context.Context) (*domain.Account, bool) {
	acct, ok := ctx.Value(ctxKeyAccount{}).(*domain.Account)
	if !ok || acct == nil {
		return nil, false
	}
	return acct, true
}

// tokenFromHeader extracts the bearer token. A "Bearer " prefix is stripped
// when present; otherwise the raw header value is the token, matching clients
// that send the token bare.
func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
