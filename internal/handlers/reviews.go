package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	ar "acme_reviews"
	"acme_reviews/internal/models"
	"acme_reviews/internal/service"

	"github.com/gin-gonic/gin"
)

// reviewRequest keeps rating raw so that any bad rating (missing, fractional,
// quoted, out of range) is a 422 rather than a binding 400.
type reviewRequest struct {
	Rating json.RawMessage `json:"rating" swaggertype:"integer" example:"5"`
	Review string          `json:"review" example:"great"`
}

func (r reviewRequest) input() (service.ReviewInput, error) {
	rating, err := parseRating(r.Rating)
	if err != nil {
		return service.ReviewInput{}, err
	}
	return service.ReviewInput{Rating: rating, Review: r.Review}, nil
}

// parseRating accepts a JSON integer. A missing or null rating becomes 0 and
// is rejected by the range check downstream.
func parseRating(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil || n != math.Trunc(n) ||
		n < models.MinRating || n > models.MaxRating {
		return 0, ar.Validationf("rating must be an integer between %d and %d", models.MinRating, models.MaxRating)
	}
	return int(n), nil
}

// @Summary      List reviews of an item
// @Tags         reviews
// @Produce      json
// @Param        itemId  path     string  true  "Item ID"
// @Success      200     {array}  models.Review
// @Router       /api/items/{itemId}/reviews [get]
func (h *Handler) listReviews(c *gin.Context) {
	reviews, err := h.services.ListReviews(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		h.respondError(c, "reviews_list_failed", err, "item_id", c.Param("itemId"))
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// @Summary      Get review
// @Tags         reviews
// @Produce      json
// @Param        itemId    path      string  true  "Item ID"
// @Param        reviewId  path      string  true  "Review ID"
// @Success      200       {object}  models.Review
// @Failure      404       {object}  errorResponse
// @Router       /api/items/{itemId}/reviews/{reviewId} [get]
func (h *Handler) getReview(c *gin.Context) {
	rv, err := h.services.GetReview(c.Request.Context(), c.Param("itemId"), c.Param("reviewId"))
	if err != nil {
		h.respondError(c, "review_get_failed", err, "review_id", c.Param("reviewId"))
		return
	}
	c.JSON(http.StatusOK, rv)
}

// @Summary      Create review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        itemId  path      string         true  "Item ID"
// @Param        body    body      reviewRequest  true  "Review"
// @Success      201     {object}  models.Review
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/items/{itemId}/reviews [post]
// @Security     BearerAuth
func (h *Handler) createReview(c *gin.Context, actorID string) {
	var req reviewRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	in, err := req.input()
	if err != nil {
		h.respondError(c, "review_create_failed", err)
		return
	}
	rv, err := h.services.CreateReview(c.Request.Context(), actorID, c.Param("itemId"), in)
	if err != nil {
		h.respondError(c, "review_create_failed", err, "user_id", actorID, "item_id", c.Param("itemId"))
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// @Summary      Update own review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        userId  path      string         true  "Owner ID"
// @Param        id      path      string         true  "Review ID"
// @Param        body    body      reviewRequest  true  "Review"
// @Success      200     {object}  models.Review
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/users/{userId}/reviews/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateReview(c *gin.Context, actorID string) {
	var req reviewRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	in, err := req.input()
	if err != nil {
		h.respondError(c, "review_update_failed", err)
		return
	}
	rv, err := h.services.UpdateReview(c.Request.Context(), actorID, c.Param("userId"), c.Param("id"), in)
	if err != nil {
		h.respondError(c, "review_update_failed", err, "user_id", actorID, "review_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, rv)
}

// @Summary      Delete own review
// @Description  Comments on the review are deleted with it
// @Tags         reviews
// @Param        userId  path  string  true  "Owner ID"
// @Param        id      path  string  true  "Review ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{userId}/reviews/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteReview(c *gin.Context, actorID string) {
	err := h.services.DeleteReview(c.Request.Context(), actorID, c.Param("userId"), c.Param("id"))
	if err != nil {
		h.respondError(c, "review_delete_failed", err, "user_id", actorID, "review_id", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      My reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {array}   models.Review
// @Failure      401  {object}  errorResponse
// @Router       /api/reviews/me [get]
// @Security     BearerAuth
func (h *Handler) listMyReviews(c *gin.Context, actorID string) {
	reviews, err := h.services.ListUserReviews(c.Request.Context(), actorID)
	if err != nil {
		h.respondError(c, "reviews_mine_failed", err, "user_id", actorID)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
