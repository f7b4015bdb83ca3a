package catalog

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/printdesk/printdesk/internal/platform/httpx"
)

// Handler exposes the catalog REST endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/paper-options", func(r chi.Router) {
		r.Get("/", h.listPaperOptions)
		r.Post("/", h.createPaperOption)
		r.Get("/{id}", h.getPaperOption)
		r.Patch("/{id}", h.updatePaperOption)
		r.Delete("/{id}", h.deletePaperOption)
	})
	r.Route("/print-pricing", func(r chi.Router) {
		r.Get("/", h.listPrintPricing)
		r.Post("/", h.createPrintPricing)
		r.Delete("/{id}", h.deletePrintPricing)
	})
	r.Route("/finishing-options", func(r chi.Router) {
		r.Get("/", h.listFinishingOptions)
		r.Post("/", h.createFinishingOption)
		r.Delete("/{id}", h.deleteFinishingOption)
	})
	r.Get("/finishing-categories", h.listFinishingCategories)
	r.Route("/saved-prices", func(r chi.Router) {
		r.Get("/", h.listSavedPrices)
		r.Post("/", h.createSavedPrice)
		r.Get("/{id}", h.getSavedPrice)
		r.Patch("/{id}", h.updateSavedPrice)
		r.Delete("/{id}", h.deleteSavedPrice)
	})
	r.Get("/materials", h.listMaterials)
}

func (h *Handler) listPaperOptions(w http.ResponseWriter, r *http.Request) {
	req := ListPaperOptionsRequest{
		Category: queryString(r, "category"),
	}
	if active := queryString(r, "active"); active != nil {
		parsed, err := strconv.ParseBool(*active)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: active must be a boolean", httpx.ErrValidation))
			return
		}
		req.IsActive = &parsed
	}

	options, err := h.service.ListPaperOptions(r.Context(), req)
	if err != nil {
		h.logger.Error("list paper options", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, options)
}

func (h *Handler) createPaperOption(w http.ResponseWriter, r *http.Request) {
	var req CreatePaperOptionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	option, err := h.service.CreatePaperOption(r.Context(), req)
	if err != nil {
		h.logger.Error("create paper option", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, option)
}

func (h *Handler) getPaperOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	option, err := h.service.GetPaperOption(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, option)
}

func (h *Handler) updatePaperOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdatePaperOptionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	option, err := h.service.UpdatePaperOption(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update paper option", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, option)
}

func (h *Handler) deletePaperOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeletePaperOption(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listPrintPricing(w http.ResponseWriter, r *http.Request) {
	pricings, err := h.service.ListPrintPricing(r.Context())
	if err != nil {
		h.logger.Error("list print pricing", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, pricings)
}

func (h *Handler) createPrintPricing(w http.ResponseWriter, r *http.Request) {
	var req CreatePrintPricingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	pricing, err := h.service.CreatePrintPricing(r.Context(), req)
	if err != nil {
		h.logger.Error("create print pricing", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, pricing)
}

func (h *Handler) deletePrintPricing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeletePrintPricing(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listFinishingOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.ListFinishingOptions(r.Context(), ListFinishingOptionsRequest{
		Category: queryString(r, "category"),
	})
	if err != nil {
		h.logger.Error("list finishing options", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, options)
}

func (h *Handler) createFinishingOption(w http.ResponseWriter, r *http.Request) {
	var req CreateFinishingOptionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	option, err := h.service.CreateFinishingOption(r.Context(), req)
	if err != nil {
		h.logger.Error("create finishing option", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, option)
}

func (h *Handler) deleteFinishingOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteFinishingOption(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listFinishingCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListFinishingCategories(r.Context())
	if err != nil {
		h.logger.Error("list finishing categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *Handler) listSavedPrices(w http.ResponseWriter, r *http.Request) {
	req := ListSavedPricesRequest{
		Category:         queryString(r, "category"),
		IncludeMaterials: r.URL.Query().Get("include_materials") == "true",
		TemplatesOnly:    r.URL.Query().Get("templates_only") == "true",
	}
	prices, err := h.service.ListSavedPrices(r.Context(), req)
	if err != nil {
		h.logger.Error("list saved prices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, prices)
}

func (h *Handler) createSavedPrice(w http.ResponseWriter, r *http.Request) {
	var req CreateSavedPriceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	price, err := h.service.CreateSavedPrice(r.Context(), req)
	if err != nil {
		h.logger.Error("create saved price", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, price)
}

func (h *Handler) getSavedPrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	price, err := h.service.GetSavedPrice(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, price)
}

func (h *Handler) updateSavedPrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdateSavedPriceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	price, err := h.service.UpdateSavedPrice(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update saved price", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, price)
}

func (h *Handler) deleteSavedPrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteSavedPrice(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	prices, err := h.service.ListMaterials(r.Context(), queryString(r, "category"))
	if err != nil {
		h.logger.Error("list materials", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, prices)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", httpx.ErrValidation)
	}
	return id, nil
}

func queryString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}
