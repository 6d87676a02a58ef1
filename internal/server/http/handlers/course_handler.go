package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/server/http/dto"
)

// CourseHandler serves the public catalog.
type CourseHandler struct {
	facade CourseFacade
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(facade CourseFacade) *CourseHandler {
	return &CourseHandler{facade: facade}
}

// List handles GET /api/courses.
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.facade.Courses(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseListResponse(courses))
}

// Get handles GET /api/courses/:id.
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	course, err := h.facade.Course(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// Create handles POST /api/courses. Educator role is enforced by
// middleware; the handler trusts the claims.
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	course, err := h.facade.CreateCourse(c.Request.Context(), model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		ThumbnailURL: req.ThumbnailURL,
		EducatorID:   CurrentUserID(c),
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrValidation) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCourseResponse(course))
}
