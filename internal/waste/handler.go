package waste

import (
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateWasteRequest struct {
	ItemName     string             `json:"item_name"`
	Quantity     float64            `json:"quantity"`
	Unit         string             `json:"unit"`
	PerUnitPrice float64            `json:"per_unit_price"`
	TotalLoss    float64            `json:"total_loss"`
	WasteDate    string             `json:"waste_date"` // "2025-12-09"
	Reason       models.WasteReason `json:"reason"`
	Notes        string             `json:"notes"`
}

type UpdateWasteRequest struct {
	ItemName     *string             `json:"item_name"`
	Quantity     *float64            `json:"quantity"`
	Unit         *string             `json:"unit"`
	PerUnitPrice *float64            `json:"per_unit_price"`
	TotalLoss    *float64            `json:"total_loss"`
	WasteDate    *string             `json:"waste_date"`
	Reason       *models.WasteReason `json:"reason"`
	Notes        *string             `json:"notes"`
}

// POST /api/waste
func CreateWasteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWasteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ItemName == "" || body.Quantity <= 0 || body.PerUnitPrice <= 0 ||
			body.TotalLoss <= 0 || body.WasteDate == "" || body.Reason == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Required fields missing")
		}
		if !models.ValidWasteReason(body.Reason) {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown waste reason")
		}

		d, err := time.Parse("2006-01-02", body.WasteDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "waste_date must be 'YYYY-MM-DD'")
		}

		record := models.WasteRecord{
			ItemName:     body.ItemName,
			Quantity:     body.Quantity,
			Unit:         body.Unit,
			PerUnitPrice: body.PerUnitPrice,
			// Stored as supplied; not recomputed from quantity x price.
			TotalLoss: body.TotalLoss,
			WasteDate: d,
			Reason:    body.Reason,
			Notes:     body.Notes,
		}
		if record.Unit == "" {
			record.Unit = "pcs"
		}

		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error creating waste record")
		}

		return c.Status(fiber.StatusCreated).JSON(record)
	}
}

// GET /api/waste
func ListWasteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []models.WasteRecord
		if err := database.DB.Order("created_at DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error fetching waste records")
		}

		return c.JSON(records)
	}
}

// PUT /api/waste/:id
func UpdateWasteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var record models.WasteRecord
		if err := database.DB.First(&record, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Waste record not found")
		}

		var body UpdateWasteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ItemName != nil {
			record.ItemName = *body.ItemName
		}
		if body.Quantity != nil {
			record.Quantity = *body.Quantity
		}
		if body.Unit != nil {
			record.Unit = *body.Unit
		}
		if body.PerUnitPrice != nil {
			record.PerUnitPrice = *body.PerUnitPrice
		}
		if body.TotalLoss != nil {
			record.TotalLoss = *body.TotalLoss
		}
		if body.WasteDate != nil {
			d, err := time.Parse("2006-01-02", *body.WasteDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "waste_date must be 'YYYY-MM-DD'")
			}
			record.WasteDate = d
		}
		if body.Reason != nil {
			if !models.ValidWasteReason(*body.Reason) {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown waste reason")
			}
			record.Reason = *body.Reason
		}
		if body.Notes != nil {
			record.Notes = *body.Notes
		}

		if err := database.DB.Save(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error updating waste record")
		}

		return c.JSON(record)
	}
}

// DELETE /api/waste/:id
func DeleteWasteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var record models.WasteRecord
		if err := database.DB.First(&record, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Waste record not found")
		}

		if err := database.DB.Delete(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error deleting waste record")
		}

		return c.JSON(fiber.Map{
			"message": "Waste record deleted",
		})
	}
}
