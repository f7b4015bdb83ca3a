package pricing

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/platform/httpx"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(repo Repository) *chi.Mux {
	handler := NewHandler(newTestLogger(), NewService(repo, nil))
	router := chi.NewRouter()
	handler.MountRoutes(router)
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPreviewEstimateEndpoint(t *testing.T) {
	router := newTestRouter(newTestRepo())

	recorder := postJSON(t, router, "/preview/cost-estimate", EstimateRequest{
		PaperID:   1,
		ColorType: "color",
		Sides:     DoubleSided,
		Quantity:  100,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var estimate Estimate
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&estimate))
	assert.InDelta(t, 0.25, estimate.Prices.UnitPrice, 1e-9)
	assert.InDelta(t, 25.00, estimate.Prices.TotalPrice, 1e-9)
	assert.Equal(t, 100, estimate.Quantity)
}

func TestPreviewEstimateValidationProblem(t *testing.T) {
	router := newTestRouter(newTestRepo())

	recorder := postJSON(t, router, "/preview/cost-estimate", EstimateRequest{
		PaperID:   1,
		ColorType: "color",
		Sides:     SingleSided,
		// Quantity missing.
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var problem httpx.ProblemDetail
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&problem))
	assert.Equal(t, http.StatusBadRequest, problem.Status)
}

func TestPreviewEstimateMalformedBody(t *testing.T) {
	router := newTestRouter(newTestRepo())

	req := httptest.NewRequest(http.MethodPost, "/preview/cost-estimate", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPreviewEstimatePricingNotFoundProblem(t *testing.T) {
	router := newTestRouter(newTestRepo())

	recorder := postJSON(t, router, "/preview/cost-estimate", EstimateRequest{
		PaperID:   1,
		ColorType: "spot-uv",
		Sides:     SingleSided,
		Quantity:  10,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestListCustomerPricesEndpoint(t *testing.T) {
	repo := newTestRepo()
	paperID := int64(1)
	repo.customerPrices[1] = &CustomerPrice{
		ID: 1, CustomerID: 7, PaperOptionID: &paperID, Price: 0.04,
		DiscountType: DiscountPercentage, IsActive: true,
	}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/customer-prices/7", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var prices []CustomerPrice
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&prices))
	require.Len(t, prices, 1)
	assert.Equal(t, int64(7), prices[0].CustomerID)
}

func TestListCustomerPricesEmptyArray(t *testing.T) {
	router := newTestRouter(newTestRepo())

	req := httptest.NewRequest(http.MethodGet, "/customer-prices/99", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "[]\n", recorder.Body.String())
}

func TestCreateCustomerPriceEndpoint(t *testing.T) {
	router := newTestRouter(newTestRepo())

	paperID := int64(1)
	recorder := postJSON(t, router, "/customer-prices/", CreateCustomerPriceRequest{
		CustomerID:    7,
		PaperOptionID: &paperID,
		Price:         0.04,
		DiscountType:  DiscountPercentage,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var price CustomerPrice
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&price))
	assert.NotZero(t, price.ID)
	assert.True(t, price.IsActive)
}

func TestDeleteCustomerPriceEndpoint(t *testing.T) {
	repo := newTestRepo()
	repo.customerPrices[5] = &CustomerPrice{
		ID: 5, CustomerID: 7, Price: 1, DiscountType: DiscountPercentage, IsActive: true,
	}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/customer-prices/5", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	req = httptest.NewRequest(http.MethodDelete, "/customer-prices/5", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
