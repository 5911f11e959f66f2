package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-marketplace/internal/logger"
	"github.com/stemsi/course-marketplace/internal/middleware"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stemsi/course-marketplace/internal/response"
	"github.com/stemsi/course-marketplace/internal/service"
)

const msgPurchased = "Purchased Successfully"

// PurchaseHandler handles user purchases.
type PurchaseHandler struct {
	purchases *service.PurchaseService
	users     *service.AccountService
	log       zerolog.Logger
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchases *service.PurchaseService, users *service.AccountService, log zerolog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchases: purchases,
		users:     users,
		log:       logger.Component(log, "purchase_handler"),
	}
}

// Purchase godoc
// POST /api/v1/courses/purchase/:course_id
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	userID, ok := h.resolveUser(c)
	if !ok {
		return
	}

	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID)
		return
	}

	purchase, err := h.purchases.Purchase(c.Request.Context(), userID, courseID)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, model.PurchaseResponse{
		ID:      purchase.ID.String(),
		Message: msgPurchased,
	})
}

// List godoc
// GET /api/v1/user/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	userID, ok := h.resolveUser(c)
	if !ok {
		return
	}

	purchases, err := h.purchases.ListByUser(c.Request.Context(), userID)
	if err != nil {
		failWith(c, h.log, err)
		return
	}
	if purchases == nil {
		purchases = []model.Purchase{}
	}

	response.Success(c, http.StatusOK, purchases)
}

func (h *PurchaseHandler) resolveUser(c *gin.Context) (uuid.UUID, bool) {
	user, ok := middleware.GetUser(c)
	if !ok || user.Email == "" {
		response.Fail(c, response.ErrPrincipalMissing)
		return uuid.Nil, false
	}

	id, err := h.users.ResolveID(c.Request.Context(), user.Email)
	if err != nil {
		failWith(c, h.log, err)
		return uuid.Nil, false
	}
	return id, true
}
