package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
)

const courseColumns = `id, title, description, price, thumbnail_url, educator_id, total_ratings, created_at, updated_at`

func scanCourse(row pgx.Row) (*model.Course, error) {
	var c model.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.ThumbnailURL, &c.EducatorID, &c.TotalRatings, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) Create(ctx context.Context, course model.Course) (*model.Course, error) {
	const query = `INSERT INTO courses (title, description, price, thumbnail_url, educator_id)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	c := course
	err := r.storage.pool.QueryRow(ctx, query, course.Title, course.Description, course.Price, course.ThumbnailURL, course.EducatorID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id=$1`
	course, err := scanCourse(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return course, nil
}

func (r *courseRepository) List(ctx context.Context) ([]model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC`
	return r.queryCourses(ctx, query)
}

func (r *courseRepository) ListByEducator(ctx context.Context, educatorID string) ([]model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE educator_id=$1 ORDER BY created_at DESC`
	return r.queryCourses(ctx, query, educatorID)
}

func (r *courseRepository) queryCourses(ctx context.Context, query string, args ...any) ([]model.Course, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *courseRepository) AddRating(ctx context.Context, rating model.Rating) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertRating = `INSERT INTO ratings (course_id, user_id, rating, review) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertRating, rating.CourseID, rating.UserID, rating.Rating, rating.Review); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23505":
					return domainErrors.ErrAlreadyExists
				case "23503":
					return domainErrors.ErrNotFound
				}
			}
			return err
		}

		const bumpCounter = `UPDATE courses SET total_ratings = total_ratings + 1, updated_at = NOW() WHERE id=$1`
		if _, err := tx.Exec(ctx, bumpCounter, rating.CourseID); err != nil {
			return err
		}
		return nil
	})
}
