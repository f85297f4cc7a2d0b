package ordertable

import (
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTableRequest struct {
	TableNumber int                `json:"table_number"`
	Seats       int                `json:"seats"`
	Status      models.TableStatus `json:"status"` // optional, defaults to free
}

type UpdateTableRequest struct {
	TableNumber   *int                  `json:"table_number"`
	Seats         *int                  `json:"seats"`
	Status        *models.TableStatus   `json:"status"`
	BillingStatus *models.BillingStatus `json:"billing_status"`
	ReservedAt    *time.Time            `json:"reserved_at"`
}

// POST /api/order-table/tables
func CreateTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.TableNumber <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "table_number is required")
		}
		if body.Seats <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "seats must be greater than 0")
		}

		// Table numbers are unique on the floor
		var count int64
		database.DB.Model(&models.Table{}).
			Where("table_number = ?", body.TableNumber).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Table number already exists")
		}

		status := body.Status
		if status == "" {
			status = models.TableStatusFree
		}

		table := models.Table{
			TableNumber:   body.TableNumber,
			Seats:         body.Seats,
			Status:        status,
			BillingStatus: models.BillingStatusNone,
		}

		if err := database.DB.Create(&table).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error creating table")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Table created",
			"table":   table,
		})
	}
}

// GET /api/order-table/tables
func ListTablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tables []models.Table
		err := database.DB.
			Preload("ActiveOrder").
			Preload("ActiveOrder.Items").
			Order("table_number ASC").
			Find(&tables).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error fetching tables")
		}

		return c.JSON(fiber.Map{
			"message": "Tables fetched",
			"tables":  tables,
		})
	}
}

// PUT /api/order-table/tables/:id
func UpdateTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var table models.Table
		if err := database.DB.First(&table, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Table not found")
		}

		var body UpdateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.TableNumber != nil {
			table.TableNumber = *body.TableNumber
		}
		if body.Seats != nil {
			table.Seats = *body.Seats
		}
		if body.Status != nil {
			table.Status = *body.Status
		}
		if body.BillingStatus != nil {
			table.BillingStatus = *body.BillingStatus
		}
		if body.ReservedAt != nil {
			table.ReservedAt = body.ReservedAt
		}

		if err := database.DB.Save(&table).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error updating table")
		}

		database.DB.Preload("ActiveOrder").Preload("ActiveOrder.Items").First(&table, table.ID)

		return c.JSON(fiber.Map{
			"message": "Table updated",
			"table":   table,
		})
	}
}

// DELETE /api/order-table/tables/:id
func DeleteTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var table models.Table
		if err := database.DB.First(&table, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Table not found")
		}

		if err := database.DB.Delete(&table).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error deleting table")
		}

		return c.JSON(fiber.Map{
			"message": "Table deleted",
		})
	}
}
