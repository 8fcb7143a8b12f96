package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"authapi/backend/internal/config"
	domain "authapi/backend/internal/domain/account"
	"authapi/backend/internal/infrastructure/hashing"
	"authapi/backend/internal/infrastructure/token"
	accountusecase "authapi/backend/internal/usecase/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu       sync.Mutex
	accounts []*domain.Account
}

func (r *memRepo) Create(_ context.Context, acct *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Name == acct.Name {
			return domain.ErrDuplicateName
		}
	}
	cp := *acct
	r.accounts = append(r.accounts, &cp)
	return nil
}

func (r *memRepo) GetByName(_ context.Context, name string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Name == name {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) GetByToken(_ context.Context, tok string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.AccessToken == tok {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newTestServer() *Server {
	svc := accountusecase.NewService(&memRepo{}, hashing.NewBcryptHasher(), token.NewGenerator())
	return NewServer(config.Config{HTTPPort: "0", AllowedOrigins: []string{"*"}}, svc)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var out map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestSignupLoginSecretFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	creds := map[string]string{"name": "alice1", "password": "secret1"}

	rec := doJSON(t, s, http.MethodPost, "/users", creds, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	signedUp := decodeBody(t, rec)
	require.NotEmpty(t, signedUp["id"])
	require.Len(t, signedUp["accessToken"], 64)
	assert.NotEqual(t, "secret1", signedUp["accessToken"])
	assert.Equal(t, "alice1", signedUp["name"])
	assert.Equal(t, "You're signed up!", signedUp["message"])

	rec = doJSON(t, s, http.MethodPost, "/sessions", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	loggedIn := decodeBody(t, rec)
	assert.Equal(t, signedUp["id"], loggedIn["id"])
	assert.Equal(t, signedUp["accessToken"], loggedIn["accessToken"])
	assert.Equal(t, "You're logged in!", loggedIn["message"])

	rec = doJSON(t, s, http.MethodGet, "/secret", nil, http.Header{"Authorization": {signedUp["accessToken"]}})
	require.Equal(t, http.StatusOK, rec.Code)
	secret := decodeBody(t, rec)
	assert.Equal(t, "alice1 here you can update your profile details", secret["message"])

	rec = doJSON(t, s, http.MethodGet, "/secret", nil, http.Header{"Authorization": {"bogus"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rejected := decodeBody(t, rec)
	assert.Equal(t, "Please try logging in again", rejected["message"])
	assert.NotEmpty(t, rejected["error"])
}

func TestSecret_BearerPrefixAccepted(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/users", map[string]string{"name": "carol1", "password": "secret1"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	tok := decodeBody(t, rec)["accessToken"]

	rec = doJSON(t, s, http.MethodGet, "/secret", nil, http.Header{"Authorization": {"Bearer " + tok}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecret_MissingHeaderRejected(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	rec := doJSON(t, s, http.MethodGet, "/secret", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_Failures(t *testing.T) {
	t.Parallel()

	s := newTestServer()

	// Too-short credentials.
	rec := doJSON(t, s, http.MethodPost, "/users", map[string]string{"name": "bob", "password": "pw"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Could not create user", body["message"])
	assert.NotEmpty(t, body["error"])

	// Duplicate name reports the same generic message.
	creds := map[string]string{"name": "dave42", "password": "secret1"}
	rec = doJSON(t, s, http.MethodPost, "/users", creds, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, s, http.MethodPost, "/users", creds, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Could not create user", decodeBody(t, rec)["message"])

	// Malformed body.
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/users", map[string]string{"name": "erin99", "password": "secret1"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown := doJSON(t, s, http.MethodPost, "/sessions", map[string]string{"name": "ghost1", "password": "secret1"}, nil)
	wrongPw := doJSON(t, s, http.MethodPost, "/sessions", map[string]string{"name": "erin99", "password": "wrong11"}, nil)

	require.Equal(t, http.StatusNotFound, unknown.Code)
	require.Equal(t, http.StatusNotFound, wrongPw.Code)
	assert.Equal(t, decodeBody(t, unknown), decodeBody(t, wrongPw), "unknown name and wrong password must be indistinguishable")
}

func TestMethodGuards(t *testing.T) {
	t.Parallel()

	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/users", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))

	rec = doJSON(t, s, http.MethodDelete, "/sessions", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	rec := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}
