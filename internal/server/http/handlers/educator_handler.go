package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edumart/edumart/internal/server/http/dto"
)

// EducatorHandler serves educator-scoped endpoints.
type EducatorHandler struct {
	facade PlatformFacade
}

// NewEducatorHandler constructs EducatorHandler.
func NewEducatorHandler(facade PlatformFacade) *EducatorHandler {
	return &EducatorHandler{facade: facade}
}

// Courses handles GET /api/educator/courses.
func (h *EducatorHandler) Courses(c *gin.Context) {
	courses, err := h.facade.EducatorCourses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseListResponse(courses))
}

// Dashboard handles GET /api/educator/dashboard.
func (h *EducatorHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.facade.EducatorDashboard(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewDashboardResponse(dashboard))
}

// Educators handles GET /api/educators.
func (h *EducatorHandler) Educators(c *gin.Context) {
	educators, err := h.facade.Educators(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	out := make([]dto.UserResponse, 0, len(educators))
	for i := range educators {
		out = append(out, dto.NewUserResponse(&educators[i]))
	}
	c.JSON(http.StatusOK, out)
}
