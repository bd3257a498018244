package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errSignUp = "failed to register operator"
	errSignIn = "failed to issue token"
)

// Credentials is the body of both sign-up and sign-in.
type Credentials struct {
	Username string `json:"username" binding:"required" example:"operator"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// bindJSONOrBadRequest writes a 400 and returns false when dst cannot be bound.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Register an operator
// @Description  Username up to 64 characters, password at least 6.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      Credentials  true  "Username and password"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input Credentials
	if !h.bindJSONOrBadRequest(c, &input) {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondServiceError(c, err, errSignUp, "auth_sign_up_failed", "username", input.Username)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Obtain a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      Credentials  true  "Username and password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input Credentials
	if !h.bindJSONOrBadRequest(c, &input) {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondServiceError(c, err, errSignIn, "auth_sign_in_failed", "username", input.Username)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
