package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ResourceHandler serves the protected demo resources. Role enforcement
// happens in middleware; handlers only read the injected claims.
type ResourceHandler struct{}

func NewResourceHandler() *ResourceHandler {
	return &ResourceHandler{}
}

type identityResponse struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// Me returns the identity embedded in the presented token.
//
// @Summary      Current identity
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *ResourceHandler) Me(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identityResponse{ID: userID, Role: role})
}

// AdminArea greets users holding the admin role.
//
// @Summary      Admin-only area
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin-area [get]
func (h *ResourceHandler) AdminArea(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "welcome, admin"})
}

// Download is available to every authenticated user regardless of role.
//
// @Summary      Download a file
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /download [get]
func (h *ResourceHandler) Download(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "here is your file"})
}

// DeleteItem confirms deletion of the item with the given numeric id.
//
// @Summary      Delete an item
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /delete-item/{id} [delete]
func (h *ResourceHandler) DeleteItem(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "item id must be numeric")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("item %d deleted", itemID)})
}

// EditItem confirms editing of the item with the given numeric id.
//
// @Summary      Edit an item
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /edit-item/{id} [put]
func (h *ResourceHandler) EditItem(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "item id must be numeric")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("item %d edited", itemID)})
}
