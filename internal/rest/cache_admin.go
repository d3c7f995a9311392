package rest

import (
	"net/http"

	"scentMatch/pkg/cache"

	"github.com/labstack/echo/v4"
)

type CacheAdminHandler struct {
	explanationCache *cache.Cache
	experienceCache  *cache.Cache
}

func NewCacheAdminHandler(explanationCache, experienceCache *cache.Cache) *CacheAdminHandler {
	return &CacheAdminHandler{
		explanationCache: explanationCache,
		experienceCache:  experienceCache,
	}
}

// GET /api/v1/admin/cache/metrics
func (h *CacheAdminHandler) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"explanation": h.explanationCache.Metrics(),
		"experience":  h.experienceCache.Metrics(),
	})
}
