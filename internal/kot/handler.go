package kot

import (
	"errors"
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateKOTRequest struct {
	OrderID uint `json:"order_id"`
}

// KOTResponse is a ticket plus the read-time elapsed annotations the
// kitchen display renders.
type KOTResponse struct {
	models.KOT
	TimeSinceCreated  int  `json:"time_since_created"`
	TimeSinceAccepted *int `json:"time_since_accepted"`
	TimeSinceReady    *int `json:"time_since_ready"`
	TimeSinceServed   *int `json:"time_since_served"`
}

// POST /api/kot/create
func CreateKOTHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateKOTRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.OrderID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "order_id is required")
		}

		var order models.Order
		if err := database.DB.Preload("Items").First(&order, "id = ?", body.OrderID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		// Kitchen copy of the order lines, prices dropped. Frozen at
		// creation time; later edits to the order do not touch it.
		items := make(models.KOTItems, 0, len(order.Items))
		for _, it := range order.Items {
			items = append(items, models.KOTItem{Name: it.Name, Quantity: it.Quantity})
		}

		ticket := models.KOT{
			OrderRef: order.ID,
			TableID:  order.TableID,
			Items:    items,
			Status:   models.KOTStatusPending,
		}

		if err := database.DB.Create(&ticket).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error creating KOT")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "KOT Created",
			"kot":     ticket,
		})
	}
}

// AdvanceKOTHandler serves the four stage routes. All of them go through
// the same transition guard; a backward or repeated call is a conflict,
// a missing ticket is a 404 rather than a silent success.
func AdvanceKOTHandler(target models.KOTStatus, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kotID := c.Params("kotId")

		var ticket models.KOT
		if err := database.DB.First(&ticket, "id = ?", kotID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "KOT not found")
		}

		if err := Advance(&ticket, target, time.Now()); err != nil {
			if errors.Is(err, ErrInvalidTransition) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Error advancing KOT")
		}

		if err := database.DB.Save(&ticket).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error advancing KOT")
		}

		return c.JSON(fiber.Map{
			"message": message,
			"kot":     ticket,
		})
	}
}

// GET /api/kot/all
func ListKOTsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tickets []models.KOT
		err := database.DB.
			Preload("Order").
			Preload("Order.Items").
			Preload("Table").
			Order("created_at DESC").
			Find(&tickets).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error fetching KOT")
		}

		// One clock read for the whole listing.
		now := time.Now()

		resp := make([]KOTResponse, 0, len(tickets))
		for _, t := range tickets {
			created := t.CreatedAt
			resp = append(resp, KOTResponse{
				KOT:               t,
				TimeSinceCreated:  *ElapsedMinutes(&created, now),
				TimeSinceAccepted: ElapsedMinutes(t.AcceptedAt, now),
				TimeSinceReady:    ElapsedMinutes(t.ReadyAt, now),
				TimeSinceServed:   ElapsedMinutes(t.ServedAt, now),
			})
		}

		return c.JSON(fiber.Map{
			"message": "KOT List",
			"kots":    resp,
		})
	}
}
