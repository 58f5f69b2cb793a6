package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	ErrorResponse(rec, http.StatusNotFound, "Producto no encontrado")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Producto no encontrado"}`, rec.Body.String())
}

func TestValidationErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	ValidationErrorResponse(rec, map[string]string{"nombre": "field required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body ErrorBody
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, "field required", body.Fields["nombre"])
}

func TestMessageResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	MessageResponse(rec, "Producto eliminado correctamente")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mensaje":"Producto eliminado correctamente"}`, rec.Body.String())
}

func TestIDParam(t *testing.T) {
	testCases := []struct {
		raw       string
		expected  uint
		expectErr bool
	}{
		{raw: "1", expected: 1},
		{raw: "42", expected: 42},
		{raw: "0", expected: 0},
		{raw: "-3", expected: 0},
		{raw: "99999999999999999999", expected: 0},
		{raw: "1.5", expectErr: true},
		{raw: "abc", expectErr: true},
		{raw: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tc.raw)
			req := httptest.NewRequest("GET", "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			id, err := IDParam(req, "id")

			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}
