package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-address-api/internal/api/metrics"
	"github.com/usermgmt/user-address-api/internal/core/access"
	"github.com/usermgmt/user-address-api/internal/core/domain"
	"github.com/usermgmt/user-address-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user account operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type updateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// Create handles POST /users/v1/created. Open registration, no auth.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      200   {object}  ports.UserRecord
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/v1/created [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusOK, user)
}

// Me handles GET /users/v1/me, returning the authenticated account.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserRecord
// @Failure      401  {object}  map[string]string
// @Router       /users/v1/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByEmail(c.Request().Context(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /users/v1/list. Paged listing, optionally filtered by a
// name substring. Admin-gated at the route level.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Page (1-based)"
// @Param        size       query  int     false  "Page size"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        direction  query  string  false  "asc or desc"
// @Param        name       query  string  false  "Name substring filter"
// @Success      200  {object}  ports.UserPage
// @Failure      403  {object}  map[string]string
// @Router       /users/v1/list [get]
func (h *UserHandler) List(c echo.Context) error {
	if name := c.QueryParam("name"); name != "" {
		users, err := h.service.SearchByName(c.Request().Context(), name)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, users)
	}

	page, err := h.service.List(c.Request().Context(), pageFilter(c, "name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetByID handles GET /users/v1/list/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  ports.UserRecord
// @Failure      404  {object}  map[string]string
// @Router       /users/v1/list/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/v1/update/:id. Owner-or-admin only.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "User id"
// @Param        body  body  updateUserRequest  true  "Updated details"
// @Success      200  {object}  ports.UserRecord
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/v1/update/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := access.RequireOwnerOrAdmin(principal, id); err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateRole handles PUT /users/v1/:id/role?role=ADMIN. Admin-gated at the
// route level.
//
// @Summary      Change a user's role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id    path   int     true  "User id"
// @Param        role  query  string  true  "New role (USER or ADMIN)"
// @Success      200  {object}  ports.UserRecord
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/v1/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	role := c.QueryParam("role")
	if !domain.ValidRole(role) {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be USER or ADMIN")
	}

	user, err := h.service.UpdateRole(c.Request().Context(), id, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/v1/delete/:id. Admin-gated at the route
// level; cascades to the user's addresses.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/v1/delete/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// pageFilter reads the shared pagination query parameters.
func pageFilter(c echo.Context, defaultSort string) ports.PageFilter {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = defaultSort
	}
	return ports.PageFilter{
		Page:      page,
		Size:      size,
		SortBy:    sortBy,
		Direction: c.QueryParam("direction"),
	}
}
