package storefront

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstores/internal/testutil"
)

func TestHTTPHandler_ListStores(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stores := NewMockStoreSource(ctrl)
		flags := NewMockFlagSource(ctrl)
		handler := NewHTTPHandler(NewService(stores, flags, nil, nil, Config{}))

		stores.EXPECT().FetchStores(gomock.Any()).Return(testutil.SampleDocument(), nil)
		flags.EXPECT().FetchFlags(gomock.Any(), "US,FR").Return([]Flag{{Code: "FR", ImageURL: "fr.png"}}, nil)

		w := httptest.NewRecorder()
		handler.ListStores(w, httptest.NewRequest(http.MethodGet, "/v1/stores", nil))

		resp := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusOK, resp.Code)

		data := resp.Body["data"].([]any)
		require.Len(t, data, 3)

		first := data[0].(map[string]any)
		assert.Equal(t, "Dream Books", first["name"])
		assert.Equal(t, "1995-02-09T00:00:00+01:00", first["establishmentDate"])
		country := first["country"].(map[string]any)
		assert.Equal(t, "US", country["code"])
		assert.NotContains(t, country, "flagUrl")
		assert.Len(t, first["books"], 3)
		best := first["bestSellers"].([]any)
		require.Len(t, best, 2)
		assert.Equal(t, "Leaves of Grass", best[0].(map[string]any)["name"])
		assert.Equal(t, "Walt Whitman", best[0].(map[string]any)["author"].(map[string]any)["fullName"])

		second := data[1].(map[string]any)
		assert.Equal(t, "fr.png", second["country"].(map[string]any)["flagUrl"])

		third := data[2].(map[string]any)
		assert.Equal(t, []any{}, third["bestSellers"])
	})

	t.Run("unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stores := NewMockStoreSource(ctrl)
		handler := NewHTTPHandler(NewService(stores, NewMockFlagSource(ctrl), nil, nil, Config{}))

		stores.EXPECT().FetchStores(gomock.Any()).Return(nil, ErrUpstreamFetch)

		w := httptest.NewRecorder()
		handler.ListStores(w, httptest.NewRequest(http.MethodGet, "/v1/stores", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
		assert.Equal(t, "STORES_UNAVAILABLE", resp.ErrorCode())
		assert.NotContains(t, resp.Body, "data")
	})
}

func TestHTTPHandler_ListRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	runs := NewMockRunRepository(ctrl)
	handler := NewHTTPHandler(NewService(nil, nil, runs, nil, Config{}))

	t.Run("default limit", func(t *testing.T) {
		runs.EXPECT().ListRuns(gomock.Any(), 20).Return([]Run{{ID: "1", Status: RunCompleted}}, nil)

		w := httptest.NewRecorder()
		handler.ListRuns(w, httptest.NewRequest(http.MethodGet, "/v1/refresh-runs?limit=500", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error", func(t *testing.T) {
		runs.EXPECT().ListRuns(gomock.Any(), 3).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		handler.ListRuns(w, httptest.NewRequest(http.MethodGet, "/v1/refresh-runs?limit=3", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
