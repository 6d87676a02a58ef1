package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
)

func (r *enrollmentRepository) Enroll(ctx context.Context, userID string, courseID int64) error {
	// Set semantics: replaying a confirmed payment must not duplicate the link.
	const query = `INSERT INTO enrollments (user_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, userID, courseID)
	return err
}

func (r *enrollmentRepository) IsEnrolled(ctx context.Context, userID string, courseID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id=$1 AND course_id=$2)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID string) ([]model.EnrolledCourse, error) {
	const query = `SELECT c.id, c.title, c.description, c.price, c.thumbnail_url, c.educator_id,
                          c.total_ratings, c.created_at, c.updated_at, e.progress
                   FROM enrollments e
                   JOIN courses c ON c.id = e.course_id
                   WHERE e.user_id=$1
                   ORDER BY e.enrolled_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.EnrolledCourse
	for rows.Next() {
		var ec model.EnrolledCourse
		c := &ec.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.ThumbnailURL, &c.EducatorID,
			&c.TotalRatings, &c.CreatedAt, &c.UpdatedAt, &ec.Progress); err != nil {
			return nil, err
		}
		result = append(result, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *enrollmentRepository) UpdateProgress(ctx context.Context, userID string, courseID int64, progress int) error {
	const query = `UPDATE enrollments SET progress=$3 WHERE user_id=$1 AND course_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, courseID, progress)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotEnrolled
	}
	return nil
}

func (r *enrollmentRepository) GetProgress(ctx context.Context, userID string, courseID int64) (int, error) {
	const query = `SELECT progress FROM enrollments WHERE user_id=$1 AND course_id=$2`
	var progress int
	err := r.storage.pool.QueryRow(ctx, query, userID, courseID).Scan(&progress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotEnrolled
		}
		return 0, err
	}
	return progress, nil
}

func (r *enrollmentRepository) CountByEducator(ctx context.Context, educatorID string) (int64, error) {
	const query = `SELECT COUNT(*)
                   FROM enrollments e
                   JOIN courses c ON c.id = e.course_id
                   WHERE c.educator_id=$1`
	var count int64
	if err := r.storage.pool.QueryRow(ctx, query, educatorID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
