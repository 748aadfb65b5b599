package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-service/internal/client/api"
	"identity-service/internal/client/session"
	"identity-service/pkg/token"
)

// stubServer imitates the identity API: login checks fixed credentials and
// issues a real signed token, the private endpoint checks the bearer header.
func stubServer(t *testing.T) *httptest.Server {
	t.Helper()

	issuer := token.NewIssuer([]byte("stub-secret"), "identity-service", "identity-client")
	verifier := token.NewVerifier([]byte("stub-secret"), "identity-service", "identity-client")

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"contraseña"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if body.Email != "harold@test.com" || body.Password != "MiPass123!" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		tok, err := issuer.Issue(1, body.Email, "Harold")
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": tok})
	})

	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name  string `json:"nombre"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if body.Email == "taken@test.com" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "email already in use"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "user registered successfully"})
	})

	mux.HandleFunc("/test/private", func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) < 8 || header[:7] != "Bearer " {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if _, err := verifier.Verify(header[7:]); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "authorized access"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupClient(t *testing.T) (*api.Client, session.Store, *session.State) {
	t.Helper()
	srv := stubServer(t)
	store := session.NewMemoryStore()
	state := session.NewState(store)
	return api.New(srv.URL, store, state), store, state
}

func TestClientLogin_StoresTokenAndUpdatesState(t *testing.T) {
	client, store, state := setupClient(t)

	err := client.Login(context.Background(), "harold@test.com", "MiPass123!")
	require.NoError(t, err)

	tok, err := store.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, "harold@test.com", state.Email())
	assert.Equal(t, "Harold", state.Name())
}

func TestClientLogin_BadCredentials(t *testing.T) {
	client, store, state := setupClient(t)

	err := client.Login(context.Background(), "harold@test.com", "wrong")
	assert.Error(t, err)

	tok, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, tok)
	assert.False(t, state.IsAuthenticated())
}

func TestClientRegister_Success(t *testing.T) {
	client, _, _ := setupClient(t)

	err := client.Register(context.Background(), "Harold", "harold@test.com", "MiPass123!")
	assert.NoError(t, err)
}

func TestClientRegister_DuplicateEmailSurfacesServerMessage(t *testing.T) {
	client, _, _ := setupClient(t)

	err := client.Register(context.Background(), "Harold", "taken@test.com", "MiPass123!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email already in use")
}

func TestClientLogout_ClearsTokenAndState(t *testing.T) {
	client, store, state := setupClient(t)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx, "harold@test.com", "MiPass123!"))
	require.True(t, state.IsAuthenticated())

	require.NoError(t, client.Logout())

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.False(t, state.IsAuthenticated())
}

func TestClientPrivate_RequiresLogin(t *testing.T) {
	client, _, _ := setupClient(t)
	ctx := context.Background()

	// Without a session the protected call is rejected.
	assert.Error(t, client.Private(ctx))

	require.NoError(t, client.Login(ctx, "harold@test.com", "MiPass123!"))
	assert.NoError(t, client.Private(ctx))

	require.NoError(t, client.Logout())
	assert.Error(t, client.Private(ctx))
}

func TestClientPrivate_TamperedStoredTokenRejected(t *testing.T) {
	client, store, state := setupClient(t)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx, "harold@test.com", "MiPass123!"))

	tok, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(tok[:len(tok)-2]+"xx"))
	state.Refresh()

	// The client-side decode still shows a logged-in display state, but the
	// server rejects the tampered token.
	assert.True(t, state.IsAuthenticated())
	assert.Error(t, client.Private(ctx))
}
