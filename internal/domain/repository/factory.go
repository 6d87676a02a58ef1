package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Courses() CourseRepository
	Purchases() PurchaseRepository
	Enrollments() EnrollmentRepository
}
