package handler

import (
	"log/slog"
	"net/http"

	"pressmart/internal/delivery/http/response"
	"pressmart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the admin moderation handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListUsers handles the platform-wide account listing request.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	users, err := h.uc.ListUsers(c.Request().Context(), actorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponseList(users), "Users retrieved successfully")
}

// ListPendingManufacturers handles the verification queue request.
func (h *AdminHandler) ListPendingManufacturers(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	users, err := h.uc.ListPendingManufacturers(c.Request().Context(), actorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponseList(users), "Pending manufacturers retrieved successfully")
}

// UpdateUserRole handles the admin role reassignment request.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	var input *usecase.UpdateUserRoleInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	user, err := h.uc.UpdateUserRole(c.Request().Context(), actorID, targetID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User role updated successfully")
}

// UpdateUserVerification handles the manufacturer verification decision request.
func (h *AdminHandler) UpdateUserVerification(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	var input *usecase.UpdateUserVerificationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}

	user, err := h.uc.UpdateUserVerification(c.Request().Context(), actorID, targetID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "Verification updated successfully")
}

// ListAllProducts handles the full catalog moderation listing request.
func (h *AdminHandler) ListAllProducts(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	products, err := h.uc.ListAllProducts(c.Request().Context(), actorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "Products retrieved successfully")
}

// SetProductStatus handles the product moderation decision request.
func (h *AdminHandler) SetProductStatus(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	var input *usecase.SetProductStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	product, err := h.uc.SetProductStatus(c.Request().Context(), actorID, productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product status updated successfully")
}

// Stats handles the admin dashboard counters request.
func (h *AdminHandler) Stats(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.uc.Stats(c.Request().Context(), actorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Stats retrieved successfully")
}
