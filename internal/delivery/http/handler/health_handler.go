package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/infrastructure/asset"
)

// AssetStatus reports which assets are already held in memory.
type AssetStatus interface {
	Has(name string) bool
}

type HealthHandler struct {
	assets AssetStatus
}

func NewHealthHandler(store *asset.Store) *HealthHandler {
	return &HealthHandler{assets: store}
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Assets    map[string]bool `json:"assets"`
}

// Health godoc
// @Summary Health check
// @Description Check if the service is healthy and which assets are loaded
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(entity.NewSuccessResponse(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Assets: map[string]bool{
			asset.FontAsset:   h.assets.Has(asset.FontAsset),
			asset.EmblemAsset: h.assets.Has(asset.EmblemAsset),
		},
	}, "Service is healthy"))
}
