package model

import "time"

// Course describes a catalog entry published by an educator.
// Price is stored in currency minor units.
type Course struct {
	ID           int64
	Title        string
	Description  string
	Price        int64
	ThumbnailURL string
	EducatorID   string
	TotalRatings int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Rating is a single review left by an enrolled student.
type Rating struct {
	ID        int64
	CourseID  int64
	UserID    string
	Rating    int
	Review    string
	CreatedAt time.Time
}

// EducatorDashboard aggregates an educator's catalog performance.
type EducatorDashboard struct {
	TotalCourses      int64
	TotalStudents     int64
	TotalEarnings     int64
	RecentEnrollments []RecentEnrollment
}

// RecentEnrollment describes a recently completed purchase for dashboards.
type RecentEnrollment struct {
	StudentID   string
	StudentName string
	CourseTitle string
	EnrolledAt  time.Time
}
