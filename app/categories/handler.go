package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tiendaonline/tienda-api/app/api"
	"github.com/tiendaonline/tienda-api/app/logging"
	"github.com/tiendaonline/tienda-api/models"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"nombre"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, fields models.CategoryFields) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, fields models.CategoryFields) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("list categories", "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "Error al listar categorías")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toResponse(&c)
	}
	api.OKResponse(w, response)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Error al obtener categoría")
		return
	}
	api.OKResponse(w, toResponse(category))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	category, err := h.repo.CreateCategory(r.Context(), input)
	if err != nil {
		h.fail(w, r, err, "Error al crear categoría")
		return
	}
	api.CreatedResponse(w, toResponse(category))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	category, err := h.repo.UpdateCategory(r.Context(), id, input)
	if err != nil {
		h.fail(w, r, err, "Error al actualizar categoría")
		return
	}
	api.OKResponse(w, toResponse(category))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.IDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		h.fail(w, r, err, "Error al eliminar categoría")
		return
	}
	api.MessageResponse(w, "Categoría eliminada correctamente")
}

// decodeInput reads and validates a category body, writing the error
// response itself when the body is unusable.
func decodeInput(w http.ResponseWriter, r *http.Request) (models.CategoryFields, bool) {
	var input models.CategoryFields
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return input, false
	}

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

func (h *CategoryHandler) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		api.ErrorResponse(w, http.StatusNotFound, "Categoría no encontrada")
	case errors.Is(err, models.ErrCategoryInUse):
		api.ErrorResponse(w, http.StatusBadRequest, "No se puede eliminar la categoría porque tiene productos asociados")
	default:
		logging.FromContext(r.Context()).Error(message, "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, message)
	}
}

func toResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
	}
}
