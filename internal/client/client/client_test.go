package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL + "/")
}

func TestRegister(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, map[string]string{"name": "Ann", "email": "a@x.com", "password": "pw"}, in)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":3,"name":"Ann","email":"a@x.com"}`))
	})

	p, err := c.Register(context.Background(), "Ann", "a@x.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, &Profile{ID: 3, Name: "Ann", Email: "a@x.com"}, p)
}

func TestRegister_APIError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Email already registered"}`))
	})

	_, err := c.Register(context.Background(), "Ann", "a@x.com", []byte("pw"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestLoginThenProfile_SendsBearer(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_, _ = w.Write([]byte(`{"token":"tok123"}`))
		case "/profile":
			if r.Header.Get("Authorization") != "Bearer tok123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id":1,"name":"Ann","email":"a@x.com"}`))
		}
	})

	require.NoError(t, c.Login(context.Background(), "a@x.com", []byte("pw")))

	p, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	c.SetToken("")
	_, err = c.Profile(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestReviewAndModels(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/review":
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			_, _ = w.Write([]byte(`{"review":"reviewed with ` + in["model"] + `"}`))
		case "/api/models":
			_, _ = w.Write([]byte(`{"default":"mistral","models":["a","b"]}`))
		}
	})

	out, err := c.Review(context.Background(), "x", "llama3.2:1b")
	require.NoError(t, err)
	assert.Equal(t, "reviewed with llama3.2:1b", out)

	m, err := c.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Models{Default: "mistral", Models: []string{"a", "b"}}, m)
}

func TestPing_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPClient(url).Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAPIError_EmptyMessage(t *testing.T) {
	e := &APIError{Status: 500}
	assert.Equal(t, "server returned 500", e.Error())
}
