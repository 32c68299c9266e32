package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sellerdesk/internal/auth"
	"sellerdesk/internal/repo"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

// AdminUserHandler handles user administration endpoints
type AdminUserHandler struct {
	userRepo    *repo.UserRepository
	authService *auth.Service
}

// NewAdminUserHandler creates a new admin user handler
func NewAdminUserHandler(userRepo *repo.UserRepository, authService *auth.Service) *AdminUserHandler {
	return &AdminUserHandler{userRepo: userRepo, authService: authService}
}

// CreateUserRequest creates a back-office user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin manager viewer"`
}

// List godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param search query string false "Search username or email"
// @Success 200 {object} models.PaginationResult[models.User]
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminUserHandler) List(c echo.Context) error {
	limit, offset, page := paginationParams(c)

	users, total, err := h.userRepo.List(limit, offset, c.QueryParam("search"))
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list users", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(users, total, page, limit))
}

// Get godoc
// @Summary Get user by ID
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *AdminUserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userRepo.GetByID(id)
	if err != nil {
		return notFound(c, "user")
	}

	return c.JSON(http.StatusOK, user)
}

// Create godoc
// @Summary Create user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users [post]
func (h *AdminUserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.userRepo.GetByEmail(req.Email); err == nil {
		return respondError(c, apierr.New(apierr.CodeConflict, "email already in use"))
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to hash password", err))
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		IsActive: true,
	}
	if err := h.userRepo.Create(&user); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to create user", err))
	}

	return c.JSON(http.StatusCreated, user)
}

// UpdateEmail godoc
// @Summary Update a user's email
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body map[string]string true "New email"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{id}/email [put]
func (h *AdminUserHandler) UpdateEmail(c echo.Context) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	return h.updateUser(c, &req, func(user *models.User) error {
		if existing, err := h.userRepo.GetByEmail(req.Email); err == nil && existing.ID != user.ID {
			return apierr.New(apierr.CodeConflict, "email already in use")
		}
		user.Email = req.Email
		return nil
	})
}

// UpdateUsername godoc
// @Summary Update a user's username
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body map[string]string true "New username"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{id}/username [put]
func (h *AdminUserHandler) UpdateUsername(c echo.Context) error {
	var req struct {
		Username string `json:"username" validate:"required"`
	}
	return h.updateUser(c, &req, func(user *models.User) error {
		user.Username = req.Username
		return nil
	})
}

// UpdatePassword godoc
// @Summary Set a user's password
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body map[string]string true "New password"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{id}/password [put]
func (h *AdminUserHandler) UpdatePassword(c echo.Context) error {
	var req struct {
		Password string `json:"password" validate:"required,min=6"`
	}
	return h.updateUser(c, &req, func(user *models.User) error {
		hash, err := h.authService.HashPassword(req.Password)
		if err != nil {
			return apierr.Wrap(apierr.CodeInternal, "failed to hash password", err)
		}
		user.Password = hash
		return nil
	})
}

// UpdateRole godoc
// @Summary Update a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body map[string]string true "New role"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (h *AdminUserHandler) UpdateRole(c echo.Context) error {
	var req struct {
		Role string `json:"role" validate:"required,oneof=admin manager viewer"`
	}
	return h.updateUser(c, &req, func(user *models.User) error {
		user.Role = req.Role
		return nil
	})
}

// Delete godoc
// @Summary Delete user
// @Tags admin
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{id}/delete [delete]
func (h *AdminUserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if selfID, ok := currentUserID(c); ok && selfID == id {
		return badRequest(c, "cannot delete your own account")
	}

	if _, err := h.userRepo.GetByID(id); err != nil {
		return notFound(c, "user")
	}

	if err := h.userRepo.Delete(id); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to delete user", err))
	}

	return c.NoContent(http.StatusNoContent)
}

// updateUser binds req, loads the target user, applies fn and saves
func (h *AdminUserHandler) updateUser(c echo.Context, req interface{}, fn func(*models.User) error) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.userRepo.GetByID(id)
	if err != nil {
		return notFound(c, "user")
	}

	if err := fn(user); err != nil {
		return respondError(c, err)
	}

	if err := h.userRepo.Update(user); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to update user", err))
	}

	return c.JSON(http.StatusOK, user)
}
