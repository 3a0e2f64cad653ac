package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dinepos/internal/dto"
	"dinepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const menuCacheTTL = 4 * time.Hour

// MenuHandler serves the public menu endpoint: active categories with their
// active products, grouped for display. No authentication required — no side
// effects whatsoever. Catalog writes invalidate the cache entry.
type MenuHandler struct {
	svc service.CatalogService
	rdb *redis.Client
}

func NewMenuHandler(svc service.CatalogService, rdb *redis.Client) *MenuHandler {
	return &MenuHandler{svc: svc, rdb: rdb}
}

// Get godoc
// @Summary Public menu (no authentication)
// @Tags    menu
// @Produce json
// @Success 200 {object} dto.MenuResponse
// @Router  /v1/menu [get]
func (h *MenuHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, service.MenuCacheKey).Bytes(); err == nil {
		var resp dto.MenuResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.Menu(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), service.MenuCacheKey, b, menuCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
