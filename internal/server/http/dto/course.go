package dto

import (
	"time"

	"github.com/edumart/edumart/internal/domain/model"
)

// CreateCourseRequest describes a new catalog entry.
// Price is in currency minor units.
type CreateCourseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// CourseResponse represents a catalog entry.
type CourseResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	EducatorID   string    `json:"educatorId"`
	TotalRatings int64     `json:"totalRatings"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewCourseResponse maps a course model to its API shape.
func NewCourseResponse(course *model.Course) CourseResponse {
	return CourseResponse{
		ID:           course.ID,
		Title:        course.Title,
		Description:  course.Description,
		Price:        course.Price,
		ThumbnailURL: course.ThumbnailURL,
		EducatorID:   course.EducatorID,
		TotalRatings: course.TotalRatings,
		CreatedAt:    course.CreatedAt,
	}
}

// NewCourseListResponse maps a course slice to its API shape.
func NewCourseListResponse(courses []model.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, NewCourseResponse(&courses[i]))
	}
	return out
}

// RatingRequest describes a course review submission.
type RatingRequest struct {
	CourseID int64  `json:"courseId"`
	Rating   int    `json:"rating"`
	Review   string `json:"review"`
}

// DashboardResponse aggregates educator catalog performance.
type DashboardResponse struct {
	TotalCourses      int64                      `json:"totalCourses"`
	TotalStudents     int64                      `json:"totalStudents"`
	TotalEarnings     int64                      `json:"totalEarnings"`
	RecentEnrollments []RecentEnrollmentResponse `json:"recentEnrollments"`
}

// RecentEnrollmentResponse is one recently completed purchase.
type RecentEnrollmentResponse struct {
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	CourseTitle string    `json:"courseTitle"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}

// NewDashboardResponse maps the dashboard aggregate to its API shape.
func NewDashboardResponse(dashboard *model.EducatorDashboard) DashboardResponse {
	recent := make([]RecentEnrollmentResponse, 0, len(dashboard.RecentEnrollments))
	for _, e := range dashboard.RecentEnrollments {
		recent = append(recent, RecentEnrollmentResponse{
			StudentID:   e.StudentID,
			StudentName: e.StudentName,
			CourseTitle: e.CourseTitle,
			EnrolledAt:  e.EnrolledAt,
		})
	}
	return DashboardResponse{
		TotalCourses:      dashboard.TotalCourses,
		TotalStudents:     dashboard.TotalStudents,
		TotalEarnings:     dashboard.TotalEarnings,
		RecentEnrollments: recent,
	}
}
