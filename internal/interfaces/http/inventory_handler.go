package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
)

// InventoryHandler expone las sugerencias de reposición.
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment}
}

// LowStock godoc
// @Summary      Lista de reposición
// @Description  Artículos en o bajo su nivel de reorden con la cantidad sugerida de pedido,
//
//	descontando lo ya pedido en órdenes abiertas. Sin stock primero.
//
// @Tags         inventory
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), c.Query("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
