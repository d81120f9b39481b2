package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shopsmart/domain"
	"shopsmart/pkg/logger"
	"shopsmart/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	RecommendationService interface {
		Recommend(ctx context.Context, externalUserID string, k int, categoryID uint64) (domain.RecommendationResult, error)
		Similar(ctx context.Context, productID uint64, k int) ([]domain.ScoredProduct, error)
	}

	RecommendationHandler struct {
		recommendationService RecommendationService
		validator             *validator.Validate
		timeout               time.Duration
	}

	RecommendationQuery struct {
		UserID     string `query:"user_id" validate:"required"`
		K          int    `query:"k" validate:"omitempty,gte=1,lte=100"`
		CategoryID uint64 `query:"category_id"`
	}

	SimilarProductsQuery struct {
		ProductID uint64 `query:"product_id" validate:"required"`
		K         int    `query:"k" validate:"omitempty,gte=1,lte=100"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: svc,
		validator:             validator.New(),
		timeout:               10 * time.Second,
	}
}

// GET /api/v1/recommendations?user_id=...&k=10&category_id=3
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.RecommendLatency)
	defer timer.ObserveDuration()

	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.K <= 0 {
		q.K = 10
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recommendationService.Recommend(ctx, q.UserID, q.K, q.CategoryID)
	if err != nil {
		logger.Error("Failed to build recommendations", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendRequests.WithLabelValues(string(result.Strategy)).Inc()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id":         q.UserID,
		"recommendations": result.Items,
		"strategy":        result.Strategy,
		"generated_at":    time.Now().UTC(),
	})
}

// GET /api/v1/similar-products?product_id=42&k=10
func (h *RecommendationHandler) SimilarProducts(c echo.Context) error {
	var q SimilarProductsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.K <= 0 {
		q.K = 10
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.recommendationService.Similar(ctx, q.ProductID, q.K)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to find similar products", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.SimilarProductsRequests.Inc()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product_id":       q.ProductID,
		"similar_products": items,
		"generated_at":     time.Now().UTC(),
	})
}
