package cart

import (
	"errors"

	"github.com/dilshodm/hamxona-backend/internal/dto"
	"github.com/dilshodm/hamxona-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService *CartService
}

func NewCartHandler(cartService *CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart handles GET /cart/getCart/.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	items, err := h.cartService.GetCart(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load cart",
		})
	}

	resp := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, CartItemResponse{
			ID:         item.ID,
			Product:    item.Product,
			Quantity:   item.Quantity,
			TotalPrice: item.TotalPrice(),
		})
	}
	return c.JSON(resp)
}

// AddProduct handles POST /cart/addProduct/.
func (h *CartHandler) AddProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "product_id is required",
		})
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "product_id must be a valid id",
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.cartService.AddProduct(user.ID, productID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(CartItemResponse{
		ID:         item.ID,
		Product:    item.Product,
		Quantity:   item.Quantity,
		TotalPrice: item.TotalPrice(),
	})
}

// RemoveProduct handles DELETE /cart/deleteProduct/:product_id/.
func (h *CartHandler) RemoveProduct(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product id",
		})
	}

	if err := h.cartService.RemoveProduct(user.ID, productID); err != nil {
		if errors.Is(err, ErrCartItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Cart item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to remove product",
		})
	}
	return c.JSON(fiber.Map{"message": "Product removed from cart"})
}

// OrderCart handles POST /cart/orderCart/.
func (h *CartHandler) OrderCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	updated, err := h.cartService.OrderCart(user.ID)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to place order",
		})
	}
	return c.JSON(fiber.Map{"message": "Order placed", "updated": updated})
}

// ListCards handles GET /cart/cards/.
func (h *CartHandler) ListCards(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	cards, err := h.cartService.ListCards(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load cards",
		})
	}
	return c.JSON(cards)
}

// AddCard handles POST /cart/cards/.
func (h *CartHandler) AddCard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req AddCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.CardName == "" || req.CardNumber == "" || req.ExpiryDate == "" || req.CVV == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "card_name, card_number, expiry_date and cvv are required",
		})
	}

	card, err := h.cartService.AddCard(user.ID, &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save card",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}
