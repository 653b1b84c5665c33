package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockledger/application/ports"
	"stockledger/application/services"
	"stockledger/domain/core/entities"
	"stockledger/infrastructure/config"
	"stockledger/pkg/common"
	pkgerrors "stockledger/pkg/errors"
	"stockledger/pkg/observability"
	"stockledger/pkg/utils"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	catalog *services.CatalogService
	assets  ports.AssetStore
	cfg     *config.Config
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	catalog *services.CatalogService,
	assets ports.AssetStore,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		assets:  assets,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// createProductRequest carries the validated form fields for Create
type createProductRequest struct {
	CategoryID int64  `validate:"required,gt=0"`
	Name       string `validate:"required,min=1,max=100"`
	Stock      int64  `validate:"gte=0"`
}

// Create handles POST /api/product/create (multipart: categoryId, name,
// stock, optional image)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		common.RespondBadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	categoryID, ok := parseFormID(r, "categoryId")
	if !ok {
		common.RespondBadRequest(w, "categoryId must be an integer")
		return
	}
	stock, err := strconv.ParseInt(r.FormValue("stock"), 10, 64)
	if err != nil {
		common.RespondBadRequest(w, "stock must be an integer")
		return
	}

	req := createProductRequest{
		CategoryID: categoryID,
		Name:       r.FormValue("name"),
		Stock:      stock,
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondBadRequest(w, err.Error())
		return
	}

	imageRef, err := saveUploadedImage(h.assets, "product", r)
	if err != nil {
		h.logger.Error("Failed to store product image", zap.Error(err))
		common.RespondError(w, err)
		return
	}

	imageURL := ""
	if imageRef != "" {
		imageURL = absolutizeImage(imageRef, requestBaseURL(h.cfg, r))
	}

	product, err := h.catalog.CreateProduct(r.Context(), req.CategoryID, req.Name, imageURL, req.Stock)
	if err != nil {
		if imageRef != "" {
			if _, cleanupErr := h.assets.Delete(imageRef); cleanupErr != nil {
				h.logger.Warn("Orphaned product image left behind",
					zap.String("imageRef", imageRef),
					zap.Error(cleanupErr),
				)
			}
		}
		h.logger.Error("Failed to create product",
			zap.Int64("categoryID", req.CategoryID),
			zap.String("name", req.Name),
			zap.Error(err),
		)
		common.RespondError(w, err)
		return
	}

	h.metrics.RecordsWritten.WithLabelValues("product").Inc()
	common.RespondOK(w, product)
}

// All handles GET /api/product/all
func (h *ProductHandler) All(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		common.RespondError(w, err)
		return
	}
	h.respondProducts(w, r, products)
}

// ListByCategory handles GET /api/product/list/{cid}
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	cid, err := strconv.ParseInt(chi.URLParam(r, "cid"), 10, 64)
	if err != nil {
		common.RespondBadRequest(w, "category id must be an integer")
		return
	}

	products, err := h.catalog.ListProductsByCategory(r.Context(), cid)
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			h.logger.Error("Failed to list category products", zap.Int64("categoryID", cid), zap.Error(err))
		}
		common.RespondError(w, err)
		return
	}
	h.respondProducts(w, r, products)
}

// StockIn handles POST /api/product/in (form: productId, count)
func (h *ProductHandler) StockIn(w http.ResponseWriter, r *http.Request) {
	h.stockMovement(w, r, "in", h.catalog.StockIn, "count")
}

// StockOut handles POST /api/product/out (form: productId, count)
func (h *ProductHandler) StockOut(w http.ResponseWriter, r *http.Request) {
	h.stockMovement(w, r, "out", h.catalog.StockOut, "count")
}

// SetStock handles POST /api/product/set (form: productId, newStock)
func (h *ProductHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	h.stockMovement(w, r, "set", h.catalog.SetStock, "newStock")
}

// stockMovement is the shared shape of the three stock transitions
func (h *ProductHandler) stockMovement(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	apply func(ctx context.Context, productID, amount int64) (*entities.Product, error),
	amountField string,
) {
	productID, ok := parseFormID(r, "productId")
	if !ok {
		common.RespondBadRequest(w, "productId must be an integer")
		return
	}
	amount, err := strconv.ParseInt(r.FormValue(amountField), 10, 64)
	if err != nil {
		common.RespondBadRequest(w, amountField+" must be an integer")
		return
	}

	product, err := apply(r.Context(), productID, amount)
	if err != nil {
		if pkgerrors.IsStorage(err) {
			h.logger.Error("Stock movement failed",
				zap.String("operation", operation),
				zap.Int64("productID", productID),
				zap.Error(err),
			)
		}
		common.RespondError(w, err)
		return
	}

	h.metrics.StockMovements.WithLabelValues(operation).Inc()
	product.ImagePath = absolutizeImage(product.ImagePath, requestBaseURL(h.cfg, r))
	common.RespondOK(w, product)
}

// Delete handles POST /api/product/delete (form: id)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseFormID(r, "id")
	if !ok {
		common.RespondBadRequest(w, "id must be an integer")
		return
	}

	deleted, err := h.catalog.DeleteProduct(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete product", zap.Int64("id", id), zap.Error(err))
		common.RespondError(w, err)
		return
	}
	if !deleted {
		common.RespondError(w, pkgerrors.NewNotFoundError("product"))
		return
	}

	h.metrics.RecordsDeleted.WithLabelValues("product").Inc()
	common.RespondOK(w, "deleted")
}

// DeleteAll handles POST /api/product/delete-all. Purges every product and
// zeroes every category total.
func (h *ProductHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteAllProducts(r.Context()); err != nil {
		h.logger.Error("Failed to delete all products", zap.Error(err))
		common.RespondError(w, err)
		return
	}
	common.RespondOK(w, "deleted")
}

// respondProducts normalizes image URLs and sends the product list
func (h *ProductHandler) respondProducts(w http.ResponseWriter, r *http.Request, products []entities.Product) {
	baseURL := requestBaseURL(h.cfg, r)
	for i := range products {
		products[i].ImagePath = absolutizeImage(products[i].ImagePath, baseURL)
	}
	common.RespondOK(w, products)
}
