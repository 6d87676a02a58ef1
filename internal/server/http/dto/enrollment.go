package dto

import "github.com/edumart/edumart/internal/domain/model"

// EnrolledCourseResponse combines a course with learning progress.
type EnrolledCourseResponse struct {
	Course   CourseResponse `json:"course"`
	Progress int            `json:"progress"`
}

// NewEnrolledCourseListResponse maps enrolled courses to their API shape.
func NewEnrolledCourseListResponse(courses []model.EnrolledCourse) []EnrolledCourseResponse {
	out := make([]EnrolledCourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, EnrolledCourseResponse{
			Course:   NewCourseResponse(&courses[i].Course),
			Progress: courses[i].Progress,
		})
	}
	return out
}

// ProgressRequest updates completion percentage for a course.
type ProgressRequest struct {
	CourseID int64 `json:"courseId"`
	Progress int   `json:"progress"`
}

// ProgressResponse reports stored completion percentage.
type ProgressResponse struct {
	CourseID int64 `json:"courseId"`
	Progress int   `json:"progress"`
}
