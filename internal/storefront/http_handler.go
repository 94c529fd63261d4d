package storefront

import (
	"net/http"
	"strconv"

	"bookstores/internal/httpx"
)

// BestSellerCount is how many top ranked books a store listing shows.
const BestSellerCount = 2

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type storeResponse struct {
	Store
	BestSellers []Book `json:"bestSellers"`
}

// ListStores handles GET /v1/stores
// @Summary List stores
// @Description Resolve the store document, rank books and attach country flags
// @Tags stores
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /v1/stores [get]
func (h *HTTPHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.svc.Refresh(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "STORES_UNAVAILABLE", "No stores available at the moment", nil)
		return
	}

	out := make([]storeResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, storeResponse{Store: s, BestSellers: s.BestSellers(BestSellerCount)})
	}
	httpx.JSONSuccess(w, r, out, map[string]any{"count": len(out)})
}

// ListRuns handles GET /v1/refresh-runs
// @Summary List refresh runs
// @Tags stores
// @Produce json
// @Param limit query int false "Maximum runs" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/refresh-runs [get]
func (h *HTTPHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := h.svc.Runs(r.Context(), limit)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, runs, nil)
}
