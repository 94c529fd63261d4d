package bookstoreapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstores/internal/jsonapi"
	"bookstores/internal/storefront"
)

const storesPayload = `{
	"data": [{
		"id": "1",
		"type": "stores",
		"attributes": {"name": "Dream Books", "rating": 4},
		"relationships": {
			"countries": {"data": {"type": "countries", "id": "1"}},
			"books": {"data": [{"type": "books", "id": "2"}]}
		}
	}],
	"included": [
		{"id": "1", "type": "countries", "attributes": {"code": "AT"}},
		{"id": "2", "type": "books", "attributes": {"name": "Moby Dick", "copiesSold": 10},
		 "relationships": {"author": {"data": {"type": "authors", "id": "3"}}}},
		{"id": "3", "type": "authors", "attributes": {"fullName": "Herman Melville"}}
	]
}`

func TestClient_FetchStores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/stores", r.URL.Path)
		assert.Equal(t, jsonapi.MediaType, r.Header.Get("Accept"))
		assert.Equal(t, "bookstores-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", jsonapi.MediaType)
		_, _ = io.WriteString(w, storesPayload)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/", UserAgent: "bookstores-test", Timeout: time.Second})
	doc, err := c.FetchStores(context.Background())
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	require.Len(t, doc.Data, 1)
	assert.Len(t, doc.Included, 3)

	rel, ok := doc.Data[0].Relationship("countries")
	require.True(t, ok)
	id, _ := rel.ToOneID()
	assert.Equal(t, "1", id)
}

func TestClient_FetchStores_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchStores(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, storefront.ErrUpstreamFetch)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestClient_FetchStores_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(Config{BaseURL: url}).FetchStores(context.Background())
	assert.ErrorIs(t, err, storefront.ErrUpstreamFetch)
}

func TestClient_FetchStores_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}).FetchStores(context.Background())
	assert.ErrorIs(t, err, jsonapi.ErrMalformedDocument)
}

func TestClient_UpdateStoreRating(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/stores/7", r.URL.Path)
		assert.Equal(t, jsonapi.MediaType, r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(Config{BaseURL: srv.URL}).UpdateStoreRating(context.Background(), "7", 3)
	require.NoError(t, err)

	data := got["data"].(map[string]any)
	assert.Equal(t, "stores", data["type"])
	assert.Equal(t, "7", data["id"])
	assert.Equal(t, map[string]any{"rating": float64(3)}, data["attributes"])
}

func TestClient_UpdateStoreRating_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := NewClient(Config{BaseURL: srv.URL}).UpdateStoreRating(context.Background(), "404", 3)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
