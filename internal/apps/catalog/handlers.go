package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dilshodm/hamxona-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogService *CatalogService
	uploadDir      string
}

func NewCatalogHandler(catalogService *CatalogService, uploadDir string) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, uploadDir: uploadDir}
}

// ListCategories handles GET /category/categories/.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load categories",
		})
	}
	return c.JSON(categories)
}

// ListProducts handles GET /category/products/ with categoryId, search and
// page query parameters.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "categoryId must be a valid id",
			})
		}
		categoryID = &id
	}

	page := c.QueryInt("page", 1)
	search := c.Query("search")

	products, total, err := h.catalogService.ListProducts(categoryID, search, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load products",
		})
	}

	return c.JSON(ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    defaultPageSize,
	})
}

// GetProduct handles GET /category/products/:id/.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product id",
		})
	}

	product, err := h.catalogService.GetProduct(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load product",
		})
	}
	return c.JSON(product)
}

// --- admin handlers ---

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name is required",
		})
	}

	category, err := h.catalogService.CreateCategory(c.Context(), req.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid category id",
		})
	}

	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name is required",
		})
	}

	category, err := h.catalogService.UpdateCategory(c.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update category",
		})
	}
	return c.JSON(category)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid category id",
		})
	}
	if err := h.catalogService.DeleteCategory(c.Context(), id); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete category",
		})
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// CreateProduct handles POST /admin/products/ as multipart/form-data with
// an image upload.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title is required",
		})
	}

	price, err := strconv.ParseFloat(c.FormValue("price", "0"), 64)
	if err != nil || price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "price must be a non-negative number",
		})
	}

	var categoryID *uuid.UUID
	if raw := c.FormValue("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "category_id must be a valid id",
			})
		}
		categoryID = &id
	}

	imageURL, err := saveImage(c, "image", filepath.Join(h.uploadDir, "products"), "/uploads/products")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	product := Product{
		ID:          uuid.New(),
		Title:       title,
		Description: c.FormValue("description"),
		CategoryID:  categoryID,
		Price:       price,
		ImageURL:    imageURL,
	}
	if err := h.catalogService.CreateProduct(c.Context(), &product); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles PUT /admin/products/:id/. Fields absent from the
// form keep their current values.
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product id",
		})
	}

	product, err := h.catalogService.GetProduct(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load product",
		})
	}

	if title := c.FormValue("title"); title != "" {
		product.Title = title
	}
	if description := c.FormValue("description"); description != "" {
		product.Description = description
	}
	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "price must be a non-negative number",
			})
		}
		product.Price = price
	}
	if raw := c.FormValue("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "category_id must be a valid id",
			})
		}
		product.CategoryID = &categoryID
	}

	imageURL, err := saveImage(c, "image", filepath.Join(h.uploadDir, "products"), "/uploads/products")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if imageURL != "" {
		product.ImageURL = imageURL
	}

	if err := h.catalogService.UpdateProduct(c.Context(), product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update product",
		})
	}
	return c.JSON(product)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid product id",
		})
	}
	if err := h.catalogService.DeleteProduct(c.Context(), id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete product",
		})
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// saveImage stores a multipart image upload and returns its public URL.
// An absent file is not an error; the returned URL is empty.
func saveImage(c *fiber.Ctx, field, dir, urlPrefix string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	if file.Size > 10*1024*1024 {
		return "", errors.New("image size must be less than 10MB")
	}
	contentType := file.Header.Get("Content-Type")
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	if !validTypes[contentType] {
		return "", errors.New("invalid image format, only JPEG, PNG and WebP are allowed")
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return "", errors.New("failed to save image")
	}
	return urlPrefix + "/" + filename, nil
}
