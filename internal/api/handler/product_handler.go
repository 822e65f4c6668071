package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aurelia-jewels/storefront-api/internal/api/metrics"
	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
	"github.com/aurelia-jewels/storefront-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type createProductRequest struct {
	Name        string   `json:"name"        validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Category    string   `json:"category"    validate:"required,oneof=necklaces earrings bracelets rings other"`
	ImageURL    string   `json:"imageUrl"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
}

// List handles GET /api/products.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return serverError(c, err, "Server error fetching products")
	}
	return ok(c, http.StatusOK, products, "Products fetched successfully")
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      404  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			return fail(c, http.StatusBadRequest, "Invalid product ID")
		case errors.Is(err, domain.ErrProductNotFound):
			return fail(c, http.StatusNotFound, "Product not found")
		}
		return serverError(c, err, "Server error fetching product")
	}
	return ok(c, http.StatusOK, product, "Product fetched successfully")
}

// Create handles POST /api/products. Any authenticated user may create
// products; there is no admin role in this system.
//
// @Summary      Add a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return failWith(c, http.StatusBadRequest, err.Error(), "validation_error")
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       stock,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			return failWith(c, http.StatusBadRequest, "category must be one of: necklaces earrings bracelets rings other", "validation_error")
		}
		return serverError(c, err, "Server error adding product")
	}

	metrics.ProductsCreatedTotal.WithLabelValues(product.Category).Inc()
	return ok(c, http.StatusCreated, product, "Product added successfully")
}
