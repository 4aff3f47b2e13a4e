package ads

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dilshodm/hamxona-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdHandler struct {
	adService *AdService
	uploadDir string
}

func NewAdHandler(adService *AdService, uploadDir string) *AdHandler {
	return &AdHandler{adService: adService, uploadDir: uploadDir}
}

// List handles GET /ads/banners/.
func (h *AdHandler) List(c *fiber.Ctx) error {
	banners, err := h.adService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load advertisements",
		})
	}
	return c.JSON(banners)
}

// Create handles POST /admin/banners/ as multipart/form-data.
func (h *AdHandler) Create(c *fiber.Ctx) error {
	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title is required",
		})
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		ext := filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
		if err := c.SaveFile(file, filepath.Join(h.uploadDir, "banners", filename)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to save image",
			})
		}
		imageURL = "/uploads/banners/" + filename
	}

	banner, err := h.adService.Create(title, c.FormValue("description"), imageURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create advertisement",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(banner)
}

// Delete handles DELETE /admin/banners/:id/.
func (h *AdHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid advertisement id",
		})
	}

	if err := h.adService.Delete(id); err != nil {
		if errors.Is(err, ErrAdNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Advertisement not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete advertisement",
		})
	}
	return c.JSON(fiber.Map{"message": "Advertisement deleted"})
}
