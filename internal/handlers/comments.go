package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Comment string `json:"comment" example:"agreed"`
}

// @Summary      List comments of a review
// @Tags         comments
// @Produce      json
// @Param        itemId    path      string  true  "Item ID"
// @Param        reviewId  path      string  true  "Review ID"
// @Success      200       {array}   models.Comment
// @Failure      404       {object}  errorResponse
// @Router       /api/items/{itemId}/reviews/{reviewId}/comments [get]
func (h *Handler) listComments(c *gin.Context) {
	comments, err := h.services.ListComments(c.Request.Context(), c.Param("itemId"), c.Param("reviewId"))
	if err != nil {
		h.respondError(c, "comments_list_failed", err, "review_id", c.Param("reviewId"))
		return
	}
	c.JSON(http.StatusOK, comments)
}

// @Summary      Comment on a review
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        itemId    path      string          true  "Item ID"
// @Param        reviewId  path      string          true  "Review ID"
// @Param        body      body      commentRequest  true  "Comment"
// @Success      201       {object}  models.Comment
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /api/items/{itemId}/reviews/{reviewId}/comments [post]
// @Security     BearerAuth
func (h *Handler) createComment(c *gin.Context, actorID string) {
	var req commentRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cm, err := h.services.CreateComment(c.Request.Context(), actorID, c.Param("itemId"), c.Param("reviewId"), req.Comment)
	if err != nil {
		h.respondError(c, "comment_create_failed", err, "user_id", actorID, "review_id", c.Param("reviewId"))
		return
	}
	c.JSON(http.StatusCreated, cm)
}

// @Summary      Update own comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        userId  path      string          true  "Owner ID"
// @Param        id      path      string          true  "Comment ID"
// @Param        body    body      commentRequest  true  "Comment"
// @Success      200     {object}  models.Comment
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/users/{userId}/comments/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateComment(c *gin.Context, actorID string) {
	var req commentRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cm, err := h.services.UpdateComment(c.Request.Context(), actorID, c.Param("userId"), c.Param("id"), req.Comment)
	if err != nil {
		h.respondError(c, "comment_update_failed", err, "user_id", actorID, "comment_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, cm)
}

// @Summary      Delete own comment
// @Tags         comments
// @Param        userId  path  string  true  "Owner ID"
// @Param        id      path  string  true  "Comment ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{userId}/comments/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteComment(c *gin.Context, actorID string) {
	err := h.services.DeleteComment(c.Request.Context(), actorID, c.Param("userId"), c.Param("id"))
	if err != nil {
		h.respondError(c, "comment_delete_failed", err, "user_id", actorID, "comment_id", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      My comments
// @Tags         comments
// @Produce      json
// @Success      200  {array}   models.Comment
// @Failure      401  {object}  errorResponse
// @Router       /api/comments/me [get]
// @Security     BearerAuth
func (h *Handler) listMyComments(c *gin.Context, actorID string) {
	comments, err := h.services.ListUserComments(c.Request.Context(), actorID)
	if err != nil {
		h.respondError(c, "comments_mine_failed", err, "user_id", actorID)
		return
	}
	c.JSON(http.StatusOK, comments)
}
