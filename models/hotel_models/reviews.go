package hotel_models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrReviewNotFound = errors.New("review not found")

type GuestReview struct {
	ID          uuid.UUID `json:"id"`
	HotelID     uuid.UUID `json:"hotel_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	GuestRating float64   `json:"guest_rating"`
	Comment     string    `json:"comment"`
}

// ReviewResponse is a review joined with the reviewer's display name.
type ReviewResponse struct {
	CustomerName string  `json:"customer_name"`
	GuestRating  float64 `json:"guest_rating"`
	Comment      string  `json:"comment"`
}

// GetReviews returns a hotel's reviews with customer names resolved.
// Reviews whose customer no longer exists are skipped, matching how the
// review feed tolerates deleted accounts.
func GetReviews(ctx context.Context, db *pgxpool.Pool, hotelID uuid.UUID) ([]ReviewResponse, error) {
	rows, err := db.Query(ctx, `
		SELECT c.user_name, r.guest_rating, r.comment
		FROM guest_reviews r
		JOIN customers c ON c.id = r.customer_id
		WHERE r.hotel_id = $1
		ORDER BY r.created_at`, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews for hotel %s: %w", hotelID, err)
	}
	defer rows.Close()

	var reviews []ReviewResponse
	for rows.Next() {
		var r ReviewResponse
		if err := rows.Scan(&r.CustomerName, &r.GuestRating, &r.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// AddReview attaches a guest review to the hotel.
func AddReview(ctx context.Context, db *pgxpool.Pool, review *GuestReview) (*GuestReview, error) {
	if review.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate UUID: %w", err)
		}
		review.ID = id
	}

	_, err := db.Exec(ctx, `
		INSERT INTO guest_reviews (id, hotel_id, customer_id, guest_rating, comment)
		VALUES ($1, $2, $3, $4, $5)`,
		review.ID, review.HotelID, review.CustomerID, review.GuestRating, review.Comment)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return review, nil
}

// DeleteReview removes one review from a hotel.
func DeleteReview(ctx context.Context, db *pgxpool.Pool, hotelID, reviewID uuid.UUID) error {
	tag, err := db.Exec(ctx, `
		DELETE FROM guest_reviews WHERE id = $1 AND hotel_id = $2`, reviewID, hotelID)
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", reviewID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}
