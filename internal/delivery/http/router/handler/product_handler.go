package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"pressmart/internal/delivery/http/response"
	"pressmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog and review handlers.
type ProductHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// productIDParam parses the :id path parameter.
func productIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	return id, nil
}

// ListApproved handles the public catalog listing request.
func (h *ProductHandler) ListApproved(c echo.Context) error {
	input := &usecase.ListProductsInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid limit parameter")
		}
		input.Limit = limit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid offset parameter")
		}
		input.Offset = offset
	}

	products, err := h.uc.ListApproved(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "Products retrieved successfully")
}

// GetByID handles the public product detail request.
func (h *ProductHandler) GetByID(c echo.Context) error {
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	product, err := h.uc.GetByID(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product retrieved successfully")
}

// ListMine handles the caller's own listings request.
func (h *ProductHandler) ListMine(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	products, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "Products retrieved successfully")
}

// Create handles the listing creation request.
func (h *ProductHandler) Create(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

// Update handles the listing edit request.
func (h *ProductHandler) Update(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	var input *usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), userID, productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// Delete handles the listing removal request.
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// AddReview handles the review submission request.
func (h *ProductHandler) AddReview(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	var input *usecase.AddReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	product, err := h.uc.AddReview(c.Request().Context(), userID, productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Review added successfully")
}

// SellerStats handles the seller dashboard summary request.
func (h *ProductHandler) SellerStats(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.uc.SellerStats(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Seller stats retrieved successfully")
}

// RecentProducts handles the seller dashboard recent listings request.
func (h *ProductHandler) RecentProducts(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	products, err := h.uc.RecentProducts(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "Recent products retrieved successfully")
}
