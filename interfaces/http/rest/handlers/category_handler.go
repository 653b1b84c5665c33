package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"stockledger/application/ports"
	"stockledger/application/services"
	"stockledger/infrastructure/config"
	"stockledger/pkg/common"
	pkgerrors "stockledger/pkg/errors"
	"stockledger/pkg/observability"
	"stockledger/pkg/utils"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	catalog *services.CatalogService
	assets  ports.AssetStore
	cfg     *config.Config
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(
	catalog *services.CatalogService,
	assets ports.AssetStore,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *CategoryHandler {
	return &CategoryHandler{
		catalog: catalog,
		assets:  assets,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// createCategoryRequest carries the validated form fields for Create
type createCategoryRequest struct {
	Name string `validate:"required,min=1,max=100"`
}

// Create handles POST /api/category/create (multipart: name, optional image)
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		common.RespondBadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	req := createCategoryRequest{Name: r.FormValue("name")}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondBadRequest(w, err.Error())
		return
	}

	imageRef, err := saveUploadedImage(h.assets, "category", r)
	if err != nil {
		h.logger.Error("Failed to store category image", zap.Error(err))
		common.RespondError(w, err)
		return
	}

	imageURL := ""
	if imageRef != "" {
		imageURL = absolutizeImage(imageRef, requestBaseURL(h.cfg, r))
	}

	category, err := h.catalog.CreateCategory(r.Context(), req.Name, imageURL)
	if err != nil {
		// The logical record never materialized; do not keep its asset.
		if imageRef != "" {
			if _, cleanupErr := h.assets.Delete(imageRef); cleanupErr != nil {
				h.logger.Warn("Orphaned category image left behind",
					zap.String("imageRef", imageRef),
					zap.Error(cleanupErr),
				)
			}
		}
		h.logger.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		common.RespondError(w, err)
		return
	}

	h.metrics.RecordsWritten.WithLabelValues("category").Inc()
	common.RespondOK(w, category)
}

// List handles GET /api/category/list
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		common.RespondError(w, err)
		return
	}

	baseURL := requestBaseURL(h.cfg, r)
	for i := range categories {
		categories[i].ImagePath = absolutizeImage(categories[i].ImagePath, baseURL)
	}

	common.RespondOK(w, categories)
}

// Delete handles POST /api/category/delete (form: id). Cascades to the
// category's products and every associated asset.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseFormID(r, "id")
	if !ok {
		common.RespondBadRequest(w, "id must be an integer")
		return
	}

	deleted, err := h.catalog.DeleteCategory(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete category", zap.Int64("id", id), zap.Error(err))
		common.RespondError(w, err)
		return
	}
	if !deleted {
		common.RespondError(w, pkgerrors.NewNotFoundError("category"))
		return
	}

	h.metrics.RecordsDeleted.WithLabelValues("category").Inc()
	common.RespondOK(w, "deleted")
}

// DeleteAll handles POST /api/category/delete-all. Destructive: both record
// collections and their assets are purged.
func (h *CategoryHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteAllCategories(r.Context()); err != nil {
		h.logger.Error("Failed to delete all categories", zap.Error(err))
		common.RespondError(w, err)
		return
	}
	common.RespondOK(w, "deleted")
}
