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

// UserHandler serves student-scoped endpoints.
type UserHandler struct {
	facade PlatformFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade PlatformFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Me handles GET /api/user/me. The account row is created from token
// claims on first sight, so a valid token is enough to exist.
func (h *UserHandler) Me(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	user, err := h.facade.EnsureUser(c.Request.Context(), model.User{
		ID:        claims.UserID,
		Name:      claims.Name,
		Email:     claims.Email,
		AvatarURL: claims.AvatarURL,
		Role:      model.Role(claims.Role),
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrValidation) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Courses handles GET /api/user/courses.
func (h *UserHandler) Courses(c *gin.Context) {
	courses, err := h.facade.EnrolledCourses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewEnrolledCourseListResponse(courses))
}

// UpdateProgress handles POST /api/user/progress.
func (h *UserHandler) UpdateProgress(c *gin.Context) {
	var req dto.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.UpdateProgress(c.Request.Context(), CurrentUserID(c), req.CourseID, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotEnrolled):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.ProgressResponse{CourseID: req.CourseID, Progress: req.Progress})
}

// GetProgress handles GET /api/user/progress/:courseId.
func (h *UserHandler) GetProgress(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("courseId"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	progress, err := h.facade.Progress(c.Request.Context(), CurrentUserID(c), courseID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotEnrolled) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ProgressResponse{CourseID: courseID, Progress: progress})
}

// Rate handles POST /api/user/ratings.
func (h *UserHandler) Rate(c *gin.Context) {
	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.RateCourse(c.Request.Context(), model.Rating{
		CourseID: req.CourseID,
		UserID:   CurrentUserID(c),
		Rating:   req.Rating,
		Review:   req.Review,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotEnrolled):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusCreated)
}
