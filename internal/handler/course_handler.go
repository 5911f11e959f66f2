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
	"github.com/stemsi/course-marketplace/internal/validator"
)

// CourseHandler handles admin course management and the public catalog.
type CourseHandler struct {
	courses *service.CourseService
	admins  *service.AccountService
	log     zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses *service.CourseService, admins *service.AccountService, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courses: courses,
		admins:  admins,
		log:     logger.Component(log, "course_handler"),
	}
}

// Create godoc
// POST /api/v1/admin/course
func (h *CourseHandler) Create(c *gin.Context) {
	adminID, ok := h.resolveAdmin(c)
	if !ok {
		return
	}

	var req model.CourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, response.ErrValidation, fields)
		return
	}

	course, err := h.courses.Create(c.Request.Context(), adminID, req)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, course.ToResponse())
}

// Update godoc
// PUT /api/v1/admin/course/:id
// Only the owning admin may update; the owner never changes.
func (h *CourseHandler) Update(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, response.ErrInvalidID)
		return
	}

	adminID, ok := h.resolveAdmin(c)
	if !ok {
		return
	}

	var req model.CourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, response.ErrValidation, fields)
		return
	}

	course, err := h.courses.Update(c.Request.Context(), adminID, courseID, req)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, course.ToResponse())
}

// ListMine godoc
// GET /api/v1/admin/course/courses
func (h *CourseHandler) ListMine(c *gin.Context) {
	adminID, ok := h.resolveAdmin(c)
	if !ok {
		return
	}

	courses, err := h.courses.ListByAdmin(c.Request.Context(), adminID)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, model.CourseResponses(courses))
}

// ListAll godoc
// GET /api/v1/courses
func (h *CourseHandler) ListAll(c *gin.Context) {
	courses, err := h.courses.ListAll(c.Request.Context())
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, model.CourseResponses(courses))
}

func (h *CourseHandler) resolveAdmin(c *gin.Context) (uuid.UUID, bool) {
	admin, ok := middleware.GetAdmin(c)
	if !ok || admin.Email == "" {
		response.Fail(c, response.ErrPrincipalMissing)
		return uuid.Nil, false
	}

	id, err := h.admins.ResolveID(c.Request.Context(), admin.Email)
	if err != nil {
		failWith(c, h.log, err)
		return uuid.Nil, false
	}
	return id, true
}
