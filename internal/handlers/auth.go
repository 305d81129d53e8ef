package handlers

import (
	"errors"
	"net/http"

	ar "acme_reviews"
	"acme_reviews/internal/models"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both register and login.
type authCredentials struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"pw123"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type registerResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// @Summary      Register
// @Description  Creates a user and returns a token for it
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, "auth_register_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{Token: token, User: user})
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username)
		}
		h.respondError(c, "auth_login_failed", err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context, actorID string) {
	user, err := h.services.Me(c.Request.Context(), actorID)
	if errors.Is(err, ar.ErrNotFound) {
		// a valid token for a user that no longer exists
		err = ar.ErrUnauthorized
	}
	if err != nil {
		h.respondError(c, "auth_me_failed", err, "user_id", actorID)
		return
	}
	c.JSON(http.StatusOK, user)
}
