package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createItemRequest struct {
	Name        string `json:"name" example:"Kettle"`
	Description string `json:"description" example:"1.7l, stainless steel"`
}

// @Summary      List items
// @Tags         items
// @Produce      json
// @Success      200  {array}   models.Item
// @Failure      500  {object}  errorResponse
// @Router       /api/items [get]
func (h *Handler) listItems(c *gin.Context) {
	items, err := h.services.ListItems(c.Request.Context())
	if err != nil {
		h.respondError(c, "items_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Get item
// @Tags         items
// @Produce      json
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  models.Item
// @Failure      404     {object}  errorResponse
// @Router       /api/items/{itemId} [get]
func (h *Handler) getItem(c *gin.Context) {
	item, err := h.services.GetItem(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		h.respondError(c, "item_get_failed", err, "item_id", c.Param("itemId"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      createItemRequest  true  "Item"
// @Success      201   {object}  models.Item
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/items [post]
// @Security     BearerAuth
func (h *Handler) createItem(c *gin.Context, actorID string) {
	var req createItemRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	item, err := h.services.CreateItem(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.respondError(c, "item_create_failed", err, "user_id", actorID)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   models.User
// @Router       /api/users [get]
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, "users_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
