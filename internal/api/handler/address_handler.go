package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-address-api/internal/api/metrics"
	"github.com/usermgmt/user-address-api/internal/core/domain"
	"github.com/usermgmt/user-address-api/internal/core/ports"
)

// AddressHandler handles HTTP requests for address operations.
type AddressHandler struct {
	service ports.AddressService
	cep     ports.CepLookup
}

func NewAddressHandler(service ports.AddressService, cep ports.CepLookup) *AddressHandler {
	return &AddressHandler{service: service, cep: cep}
}

// addressRequest carries the caller-supplied fields. Street, neighborhood,
// city and state may be sent but are always replaced by the postal lookup's
// canonical values.
type addressRequest struct {
	Street       string `json:"street"`
	Number       string `json:"number" validate:"required"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code" validate:"required,cep"`
	Type         string `json:"type" validate:"required,oneof=RESIDENTIAL COMMERCIAL"`
}

func (req addressRequest) toInput() *ports.AddressInput {
	return &ports.AddressInput{
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Type:         domain.AddressType(req.Type),
	}
}

// cepResponse is the raw lookup passthrough shape, mirroring an address
// record without persistence.
type cepResponse struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Create handles POST /addresses/v1/create/:userId.
//
// @Summary      Create an address for a user
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int             true  "Owning user id"
// @Param        body    body  addressRequest  true  "Address details"
// @Success      200  {object}  ports.AddressRecord
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /addresses/v1/create/{userId} [post]
func (h *AddressHandler) Create(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	address, err := h.service.Create(c.Request().Context(), req.toInput(), userID)
	if err != nil {
		return err
	}

	metrics.AddressesCreatedTotal.WithLabelValues(string(address.Type)).Inc()
	return c.JSON(http.StatusOK, address)
}

// List handles GET /addresses/v1/list. Admin-gated at the route level.
//
// @Summary      List all addresses
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Page (1-based)"
// @Param        size       query  int     false  "Page size"
// @Param        sortBy     query  string  false  "Sort field"
// @Param        direction  query  string  false  "asc or desc"
// @Success      200  {object}  ports.AddressPage
// @Failure      403  {object}  map[string]string
// @Router       /addresses/v1/list [get]
func (h *AddressHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), pageFilter(c, "street"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetByID handles GET /addresses/v1/list/:id under the ownership policy.
//
// @Summary      Get an address by id
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Address id"
// @Success      200  {object}  ports.AddressRecord
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /addresses/v1/list/{id} [get]
func (h *AddressHandler) GetByID(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	address, err := h.service.GetByID(c.Request().Context(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, address)
}

// ListByOwner handles GET /addresses/v1/list-addresses/:userId.
//
// @Summary      List a user's addresses
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "Owning user id"
// @Success      200  {array}  ports.AddressRecord
// @Router       /addresses/v1/list-addresses/{userId} [get]
func (h *AddressHandler) ListByOwner(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	addresses, err := h.service.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addresses)
}

// Update handles PUT /addresses/v1/update/:id under the ownership policy.
//
// @Summary      Update an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int             true  "Address id"
// @Param        body  body  addressRequest  true  "Updated details"
// @Success      200  {object}  ports.AddressRecord
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /addresses/v1/update/{id} [put]
func (h *AddressHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	address, err := h.service.Update(c.Request().Context(), principal, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, address)
}

// Delete handles DELETE /addresses/v1/delete/:id under the ownership policy.
//
// @Summary      Delete an address
// @Tags         addresses
// @Security     BearerAuth
// @Param        id  path  int  true  "Address id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /addresses/v1/delete/{id} [delete]
func (h *AddressHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// LookupCep handles GET /addresses/v1/cep/:cep. Raw postal lookup
// passthrough with no persistence.
//
// @Summary      Resolve a postal code
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        cep  path  string  true  "Postal code"
// @Success      200  {object}  cepResponse
// @Failure      400  {object}  map[string]string
// @Router       /addresses/v1/cep/{cep} [get]
func (h *AddressHandler) LookupCep(c echo.Context) error {
	cep := c.Param("cep")

	start := time.Now()
	result, err := h.cep.Lookup(c.Request().Context(), cep)
	metrics.CepLookupDuration.Observe(time.Since(start).Seconds())

	if err != nil || result == nil || result.Cep == "" || result.NotFound {
		return domain.ErrInvalidCep
	}

	return c.JSON(http.StatusOK, cepResponse{
		ZipCode:      result.Cep,
		Street:       result.Street,
		Complement:   result.Complement,
		Neighborhood: result.Neighborhood,
		City:         result.City,
		State:        result.State,
	})
}
