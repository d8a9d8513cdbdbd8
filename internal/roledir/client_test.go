package roledir

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/config"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.RoleDirectoryConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
	}, zap.NewNop())
}

func TestFetchRole_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/role/r1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"r1","name":"Manager","limit":5}`))
	}))
	defer srv.Close()

	role, err := newTestClient(srv).FetchRole(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", role.ID)
	assert.Equal(t, "Manager", role.Name)
	assert.Equal(t, 5, role.Limit)
}

func TestFetchRole_NotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchRole(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestFetchRole_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchRole(context.Background(), "r1")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestFetchRole_NullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchRole(context.Background(), "r1")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestFetchRole_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchRole(context.Background(), "r1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRoleNotFound)
}
