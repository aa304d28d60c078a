package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/ironstore/internal/id"
	"github.com/existflow/ironstore/internal/logger"
	"github.com/existflow/ironstore/internal/model"
	"github.com/existflow/ironstore/internal/store"
	"github.com/existflow/ironstore/internal/validate"
)

// handleListProducts returns the catalog; no auth required
func (s *Server) handleListProducts(c echo.Context) error {
	products, err := s.store.ListProducts(c.Request().Context())
	if err != nil {
		logger.Error("list products failed", logger.F("error", err))
		return internalError(c)
	}

	return respond(c, http.StatusOK, "products retrieved", map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

// handleGetProduct returns a single product by id
func (s *Server) handleGetProduct(c echo.Context) error {
	product, err := s.store.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, codeProductNotFound, "product not found")
		}
		logger.Error("get product failed", logger.F("error", err))
		return internalError(c)
	}

	return respond(c, http.StatusOK, "product retrieved", map[string]interface{}{
		"product": product,
	})
}

// handleCreateProduct validates and persists a new product
func (s *Server) handleCreateProduct(c echo.Context) error {
	payload, ok := bindValidated(c, productCreateSchema)
	if !ok {
		return nil
	}

	product := &model.Product{
		ID:          id.New(id.PrefixProduct),
		Title:       validate.Str(payload, "title"),
		Price:       validate.Num(payload, "price"),
		InStock:     validate.Boolean(payload, "in_stock"),
		Description: validate.Str(payload, "description"),
		CreatedAt:   time.Now(),
	}

	if err := s.store.CreateProduct(c.Request().Context(), product); err != nil {
		logger.Error("create product failed", logger.F("error", err))
		return internalError(c)
	}

	logger.Info("product created", logger.F("product_id", product.ID))
	return respond(c, http.StatusCreated, "product created", map[string]interface{}{
		"product": product,
	})
}

// handleUpdateProduct applies a partial update to an existing product
func (s *Server) handleUpdateProduct(c echo.Context) error {
	payload, ok := bindValidated(c, productUpdateSchema)
	if !ok {
		return nil
	}

	patch := &model.ProductPatch{}
	if validate.Has(payload, "title") {
		v := validate.Str(payload, "title")
		patch.Title = &v
	}
	if validate.Has(payload, "price") {
		v := validate.Num(payload, "price")
		patch.Price = &v
	}
	if validate.Has(payload, "in_stock") {
		v := validate.Boolean(payload, "in_stock")
		patch.InStock = &v
	}
	if validate.Has(payload, "description") {
		v := validate.Str(payload, "description")
		patch.Description = &v
	}

	ctx := c.Request().Context()
	productID := c.Param("id")

	if err := s.store.UpdateProduct(ctx, productID, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, codeProductNotFound, "product not found")
		}
		logger.Error("update product failed", logger.F("error", err))
		return internalError(c)
	}

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		logger.Error("update product: reload failed", logger.F("error", err))
		return internalError(c)
	}

	logger.Info("product updated", logger.F("product_id", productID))
	return respond(c, http.StatusOK, "product updated", map[string]interface{}{
		"product": product,
	})
}

// handleDeleteProduct removes a product
func (s *Server) handleDeleteProduct(c echo.Context) error {
	productID := c.Param("id")

	if err := s.store.DeleteProduct(c.Request().Context(), productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, codeProductNotFound, "product not found")
		}
		logger.Error("delete product failed", logger.F("error", err))
		return internalError(c)
	}

	logger.Info("product deleted", logger.F("product_id", productID))
	return c.NoContent(http.StatusNoContent)
}
