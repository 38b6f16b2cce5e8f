package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/restaurant-management/internal/model"
)

// ReviewRepo provides CRUD access to guest reviews plus the
// aggregate statistics endpoint's query.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create inserts a review and returns it with the generated id.
func (r *ReviewRepo) Create(ctx context.Context, name string, rating uint8, comment string) (model.Review, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO reviews (name, rating, comment) VALUES (?, ?, ?)`,
		name, rating, comment)
	if err != nil {
		return model.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Review{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one review; sql.ErrNoRows when absent.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	var rev model.Review
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, rating, comment, created_at FROM reviews WHERE id = ?`,
		id).Scan(&rev.ID, &rev.Name, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	return rev, err
}

// List returns all reviews, newest first.
func (r *ReviewRepo) List(ctx context.Context) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, rating, comment, created_at FROM reviews
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.Name, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// Delete removes a review; the bool reports whether a row existed.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Stats aggregates review counts, the average rating, the rating
// distribution and the number of reviews from the last seven days.
type Stats struct {
	Total        int            `json:"total_reviews"`
	Average      float64        `json:"average_rating"`
	Recent7Days  int            `json:"recent_reviews_7days"`
	Distribution map[string]int `json:"rating_distribution"`
}

// Stats computes review statistics in two queries.
func (r *ReviewRepo) Stats(ctx context.Context) (Stats, error) {
	s := Stats{Distribution: make(map[string]int)}

	var avg sql.NullFloat64
	cutoff := time.Now().UTC().AddDate(0, 0, -7)
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(rating),
		        COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		 FROM reviews`, cutoff).Scan(&s.Total, &avg, &s.Recent7Days)
	if err != nil {
		return Stats{}, err
	}
	if avg.Valid {
		// one decimal, matching the original stats endpoint
		s.Average = float64(int(avg.Float64*10+0.5)) / 10
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT rating, COUNT(*) FROM reviews GROUP BY rating ORDER BY rating DESC`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return Stats{}, err
		}
		s.Distribution[starKey(rating)] = count
	}
	return s, rows.Err()
}

func starKey(rating int) string {
	switch rating {
	case 1:
		return "1_star"
	case 2:
		return "2_star"
	case 3:
		return "3_star"
	case 4:
		return "4_star"
	default:
		return "5_star"
	}
}
