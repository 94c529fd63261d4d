package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/stores", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))
	w := httptest.NewRecorder()

	JSONSuccess(w, r, []string{"a"}, map[string]any{"count": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	meta := body["meta"].(map[string]any)
	assert.Equal(t, "req-1", meta["request_id"])
	assert.Equal(t, float64(1), meta["count"])
}

func TestJSONError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/stores", nil)
	w := httptest.NewRecorder()

	JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []ErrorDetail{
		{Field: "rating", Message: "Rating is required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.Success)
	assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	assert.Len(t, response.Error.Details, 1)
	assert.Nil(t, response.Meta)
}

func TestJSONSuccessNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	JSONSuccessNoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

type ratingInput struct {
	Rating float64 `validate:"required,min=1,max=5"`
}

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(ratingInput{Rating: 4}))

	details := ValidateStruct(ratingInput{})
	require.Len(t, details, 1)
	assert.Equal(t, "rating", details[0].Field)
	assert.Equal(t, "Rating is required", details[0].Message)

	details = ValidateStruct(ratingInput{Rating: 7})
	require.Len(t, details, 1)
	assert.Equal(t, "Rating must be at most 5", details[0].Message)
}
