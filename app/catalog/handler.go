package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/tiendaonline/tienda-api/app/api"
	"github.com/tiendaonline/tienda-api/app/logging"
	"github.com/tiendaonline/tienda-api/models"
)

// Product is the wire form of a product. Price keeps its two decimals
// and is encoded as a JSON number.
type Product struct {
	ID         uint        `json:"id"`
	Name       string      `json:"nombre"`
	CategoryID uint        `json:"categoria_id"`
	Price      json.Number `json:"precio"`
	Stock      int         `json:"stock"`
	URL        string      `json:"url"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, fields models.ProductFields) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint, fields models.ProductFields) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse filters
	var filters models.ProductFilters
	if cStr := r.URL.Query().Get("categoria_id"); cStr != "" {
		c, err := strconv.ParseUint(cStr, 10, 0)
		if err != nil {
			api.ErrorResponse(w, http.StatusBadRequest, "categoria_id must be a non-negative integer")
			return
		}
		filters.CategoryID = uint(c)
	}

	res, err := h.repo.GetFilteredProducts(r.Context(), filters)
	if err != nil {
		logging.FromContext(r.Context()).Error("list products", "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "Error al listar productos")
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toProduct(&res[i])
	}
	api.OKResponse(w, products)
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Error al obtener producto")
		return
	}
	api.OKResponse(w, toProduct(product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	product, err := h.repo.CreateProduct(r.Context(), input)
	if err != nil {
		h.fail(w, r, err, "Error al crear producto")
		return
	}
	api.CreatedResponse(w, toProduct(product))
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	product, err := h.repo.UpdateProduct(r.Context(), id, input)
	if err != nil {
		h.fail(w, r, err, "Error al actualizar producto")
		return
	}
	api.OKResponse(w, toProduct(product))
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.repo.DeleteProduct(r.Context(), id); err != nil {
		h.fail(w, r, err, "Error al eliminar producto")
		return
	}
	api.MessageResponse(w, "Producto eliminado correctamente")
}

// decodeInput reads, rounds and validates a product body, writing the error
// response itself when the body is unusable.
func decodeInput(w http.ResponseWriter, r *http.Request) (models.ProductFields, bool) {
	var input models.ProductFields
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return input, false
	}

	input.Normalize()
	if err := models.Validate(&input); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			api.ValidationErrorResponse(w, verr.Fields)
		} else {
			api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return input, false
	}
	return input, true
}

func (h *CatalogHandler) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		api.ErrorResponse(w, http.StatusNotFound, "La categoría especificada no existe")
	case errors.Is(err, models.ErrProductNotFound):
		api.ErrorResponse(w, http.StatusNotFound, "Producto no encontrado")
	default:
		logging.FromContext(r.Context()).Error(message, "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, message)
	}
}

func toProduct(p *models.Product) Product {
	return Product{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      json.Number(p.Price.StringFixed(2)),
		Stock:      p.Stock,
		URL:        p.URL,
	}
}
