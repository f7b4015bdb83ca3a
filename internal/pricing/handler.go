package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/printdesk/printdesk/internal/platform/httpx"
)

// Handler exposes the price preview and customer override endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	group   singleflight.Group
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers pricing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/preview/cost-estimate", h.previewEstimate)
	r.Route("/customer-prices", func(r chi.Router) {
		r.Get("/{customerId}", h.listCustomerPrices)
		r.Post("/", h.createCustomerPrice)
		r.Patch("/{id}", h.updateCustomerPrice)
		r.Delete("/{id}", h.deleteCustomerPrice)
	})
}

func (h *Handler) previewEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	// Identical concurrent previews collapse into one computation. The key
	// covers every field that affects the result.
	key := estimateKey(req)
	result, err, _ := h.singleflightEstimate(r.Context(), key, func(ctx context.Context) (interface{}, error) {
		return h.service.Estimate(ctx, req)
	})
	if err != nil {
		h.logger.Error("cost estimate", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) singleflightEstimate(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error, bool) {
	resultChan := h.group.DoChan(key, func() (interface{}, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		return res.Val, res.Err, res.Shared
	}
}

func estimateKey(req EstimateRequest) string {
	customer := int64(0)
	if req.CustomerID != nil {
		customer = *req.CustomerID
	}
	return fmt.Sprintf("%d|%d|%s|%s|%d|%d|%v",
		customer, req.PaperID, req.ColorType, req.Sides, req.Quantity, req.NUp, req.FinishingIDs)
}

func (h *Handler) listCustomerPrices(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		httpx.RespondError(w, fmt.Errorf("%w: invalid customer id", httpx.ErrValidation))
		return
	}
	prices, err := h.service.ListCustomerPrices(r.Context(), customerID)
	if err != nil {
		h.logger.Error("list customer prices", slog.Int64("customer_id", customerID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if prices == nil {
		prices = []CustomerPrice{}
	}
	httpx.JSON(w, http.StatusOK, prices)
}

func (h *Handler) createCustomerPrice(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerPriceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	price, err := h.service.CreateCustomerPrice(r.Context(), req)
	if err != nil {
		h.logger.Error("create customer price", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, price)
}

func (h *Handler) updateCustomerPrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, fmt.Errorf("%w: invalid id", httpx.ErrValidation))
		return
	}
	var req UpdateCustomerPriceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	price, err := h.service.UpdateCustomerPrice(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update customer price", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, price)
}

func (h *Handler) deleteCustomerPrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, fmt.Errorf("%w: invalid id", httpx.ErrValidation))
		return
	}
	if err := h.service.DeleteCustomerPrice(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
