package rating

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookstores/internal/httpx"
	"bookstores/internal/storefront"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type updateRatingReq struct {
	Rating float64 `json:"rating" validate:"required,min=1,max=5"`
}

// UpdateRating handles PATCH /v1/stores/{id}/rating
// @Summary Rate a store
// @Description Forward a 1-5 star rating to the book store API
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path string true "Store ID"
// @Param request body updateRatingReq true "Rating request"
// @Success 204 "No Content"
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/stores/{id}/rating [patch]
func (h *HTTPHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("id")
	if storeID == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid store ID", nil)
		return
	}

	var req updateRatingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	if err := h.service.Rate(r.Context(), httpx.UserIDFrom(r), storeID, req.Rating); err != nil {
		var statusErr interface{ HTTPStatus() int }
		switch {
		case errors.Is(err, ErrInvalidRating):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		case errors.As(err, &statusErr) && statusErr.HTTPStatus() == http.StatusNotFound:
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Store not found", nil)
		case errors.Is(err, storefront.ErrUpstreamFetch):
			httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Book store API unavailable", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// ListChanges handles GET /v1/stores/{id}/ratings
// @Summary Rating history of a store
// @Tags ratings
// @Produce json
// @Param id path string true "Store ID"
// @Param limit query int false "Maximum entries" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/stores/{id}/ratings [get]
func (h *HTTPHandler) ListChanges(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("id")
	if storeID == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid store ID", nil)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	changes, err := h.service.History(r.Context(), storeID, limit)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if changes == nil {
		changes = []Change{}
	}
	httpx.JSONSuccess(w, r, changes, map[string]any{"count": len(changes)})
}
