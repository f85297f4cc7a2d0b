package ordertable

import (
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/order-table/billing/:tableId
//
// Read-only snapshot for the billing screen: the table, its active order
// expanded, and how long the guests have been sitting.
func TableBillingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tableID := c.Params("tableId")

		var table models.Table
		err := database.DB.
			Preload("ActiveOrder").
			Preload("ActiveOrder.Items").
			First(&table, "id = ?", tableID).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Table not found")
		}

		return c.JSON(fiber.Map{
			"table_number":  table.TableNumber,
			"status":        table.Status,
			"current_order": table.ActiveOrder,
			"occupied_at":   table.OccupiedAt,
		})
	}
}
