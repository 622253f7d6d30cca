package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinops/wardview/internal/principal"
)

func TestClient_Authenticate(t *testing.T) {
	t.Run("returns the grant on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/v1/auth/login", r.URL.Path)

			var creds Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "jane", creds.Username)

			grant := Grant{
				Token: "t1",
				Principal: principal.RawPrincipal{
					ID:          "u-1",
					DisplayName: "Jane Doe",
					Roles: []principal.RawRole{
						{Name: "ROLE_ADMIN", Permissions: []string{"MANAGE_USERS"}},
					},
				},
			}
			require.NoError(t, json.NewEncoder(w).Encode(grant))
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		grant, err := client.Authenticate(context.Background(), Credentials{Username: "jane", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "t1", grant.Token)
		assert.Equal(t, "u-1", grant.Principal.ID)
		require.Len(t, grant.Principal.Roles, 1)
		assert.Equal(t, "ROLE_ADMIN", grant.Principal.Roles[0].Name)
	})

	t.Run("maps 401 to ErrRejected with the server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "unknown user"})
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.Authenticate(context.Background(), Credentials{Username: "x", Password: "y"})
		require.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "unknown user")
	})

	t.Run("maps 403 to ErrRejected with a fallback message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.Authenticate(context.Background(), Credentials{})
		require.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "credentials rejected")
	})

	t.Run("maps server errors to ErrUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.Authenticate(context.Background(), Credentials{})
		require.ErrorIs(t, err, ErrUnavailable)
		assert.NotErrorIs(t, err, ErrRejected)
	})

	t.Run("maps transport failures to ErrUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.Authenticate(context.Background(), Credentials{})
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("rejects a grant without a token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(Grant{})
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.Authenticate(context.Background(), Credentials{})
		require.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestClient_Invalidate(t *testing.T) {
	t.Run("sends the bearer token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/auth/logout", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		require.NoError(t, client.Invalidate(context.Background(), "t1"))
		assert.Equal(t, "Bearer t1", gotAuth)
	})

	t.Run("surfaces failures for best-effort callers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		err := client.Invalidate(context.Background(), "t1")
		require.ErrorIs(t, err, ErrUnavailable)
	})
}
