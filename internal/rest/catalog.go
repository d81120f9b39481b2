package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shopsmart/domain"
	"shopsmart/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	GetProduct(ctx context.Context, id uint64) (domain.Product, error)
	ListProducts(ctx context.Context, categoryID uint64) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type CatalogHandler struct {
	catalogService CatalogService
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		timeout:        10 * time.Second,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var categoryID uint64
	if raw := c.QueryParam("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid category_id"})
		}
		categoryID = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.catalogService.ListProducts(ctx, categoryID)
	if err != nil {
		logger.Error("Failed to list products", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *CatalogHandler) GetProductByID(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.catalogService.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to find product by id", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find product by id",
		"product": product,
	})
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}
