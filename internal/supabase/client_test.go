package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aaaquest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "service", r.Header.Get("apikey"))
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "u-1",
			"email":         "ada@example.com",
			"app_metadata":  map[string]any{"provider": "google"},
			"user_metadata": map[string]any{"name": "Ada", "picture": "https://example.com/a.png"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "service", zap.NewNop())

	user, err := client.GetUser(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, &domain.User{
		ID:        "u-1",
		Email:     "ada@example.com",
		FullName:  "Ada",
		AvatarURL: "https://example.com/a.png",
		Provider:  "google",
	}, user.ToUser())

	_, err = client.GetUser(context.Background(), "bad-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_FindUserByEmail(t *testing.T) {
	pages := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer service", r.Header.Get("Authorization"))
		pages++

		users := []map[string]any{}
		if r.URL.Query().Get("page") == "1" {
			for i := 0; i < usersPerPage; i++ {
				users = append(users, map[string]any{"id": fmt.Sprintf("u-%d", i), "email": fmt.Sprintf("user%d@example.com", i)})
			}
		} else {
			users = append(users, map[string]any{"id": "u-last", "email": "Grace@Example.com"})
		}
		json.NewEncoder(w).Encode(map[string]any{"users": users})
	}))
	defer srv.Close()

	client := New(srv.URL, "service", zap.NewNop())

	user, err := client.FindUserByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u-last", user.ID)
	assert.Equal(t, "email", user.Provider())
	assert.Equal(t, 2, pages)

	pages = 0
	user, err = client.FindUserByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, 2, pages)
}

func TestClient_UpdateUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/v1/admin/users/u-1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "secret123", body["password"])
		assert.Equal(t, map[string]any{"full_name": "Ada L."}, body["user_metadata"])
		assert.NotContains(t, body, "email")

		json.NewEncoder(w).Encode(map[string]any{"id": "u-1", "email": "ada@example.com", "user_metadata": body["user_metadata"]})
	}))
	defer srv.Close()

	client := New(srv.URL, "service", zap.NewNop())

	user, err := client.UpdateUser(context.Background(), "u-1", domain.UserPatch{Password: "secret123", FullName: "Ada L."})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", user.FullName())
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected error
	}{
		{name: "not found", status: http.StatusNotFound, expected: domain.ErrNotFound},
		{name: "validation", status: http.StatusUnprocessableEntity, expected: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"msg":"something went wrong"}`))
			}))
			defer srv.Close()

			client := New(srv.URL, "service", zap.NewNop())
			_, err := client.UpdateUser(context.Background(), "u-1", domain.UserPatch{Email: "x@example.com"})

			assert.ErrorIs(t, err, tt.expected)
		})
	}

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(fmt.Sprintf("service key rejected %d", status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte(`{"msg":"invalid JWT"}`))
			}))
			defer srv.Close()

			core, logs := observer.New(zap.WarnLevel)
			client := New(srv.URL, "bad-service-key", zap.New(core))

			_, err := client.FindUserByEmail(context.Background(), "ada@example.com")
			require.Error(t, err)
			assert.NotErrorIs(t, err, domain.ErrUnauthorized)
			assert.Contains(t, err.Error(), "service role key")
			assert.Equal(t, 1, logs.FilterMessage("Auth API request failed").Len())

			_, err = client.UpdateUser(context.Background(), "u-1", domain.UserPatch{FullName: "Ada"})
			assert.NotErrorIs(t, err, domain.ErrUnauthorized)
		})
	}

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := New(srv.URL, "service", zap.NewNop())
		_, err := client.GetUser(context.Background(), "token")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Internal Server Error")
	})
}
