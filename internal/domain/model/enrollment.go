package model

import "time"

// Enrollment links a user to a course exactly once and carries progress.
type Enrollment struct {
	UserID     string
	CourseID   int64
	Progress   int
	EnrolledAt time.Time
}

// EnrolledCourse combines course data with the student's progress.
type EnrolledCourse struct {
	Course   Course
	Progress int
}
