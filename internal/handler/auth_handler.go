package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-marketplace/internal/logger"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stemsi/course-marketplace/internal/response"
	"github.com/stemsi/course-marketplace/internal/service"
	"github.com/stemsi/course-marketplace/internal/validator"
)

const (
	msgSignedUp = "Signed up successfully"
	// Clients match on this exact text.
	msgSignedIn = "Signined in Successfully"
)

// AuthHandler handles signup and signin for one principal kind.
// The router mounts one instance for admins and one for users.
type AuthHandler struct {
	accounts *service.AccountService
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		log:      logger.Component(log, string(accounts.Kind())+"_auth_handler"),
	}
}

// Signup godoc
// POST /api/v1/{admin|user}/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, response.ErrValidation, fields)
		return
	}

	id, err := h.accounts.Signup(c.Request.Context(), req)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, model.SignupResponse{
		Message: msgSignedUp,
		ID:      id.String(),
	})
}

// Signin godoc
// POST /api/v1/{admin|user}/signin
// Returns a token signed with the kind's own secret.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.SigninRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, response.ErrValidation, fields)
		return
	}

	token, err := h.accounts.Signin(c.Request.Context(), req)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, model.SigninResponse{
		Message: msgSignedIn,
		Token:   token,
	})
}
