package customer_models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joy095/roomstay/logger"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Customer is the guest profile the booking flow needs: identity, the email
// confirmations go to, and the hotels recently visited.
type Customer struct {
	ID           uuid.UUID   `json:"id"`
	UserName     string      `json:"user_name"`
	Email        string      `json:"email"`
	RecentVisits []uuid.UUID `json:"recent_visits"`
}

// GetCustomerByID fetches a customer profile.
func GetCustomerByID(ctx context.Context, db *pgxpool.Pool, customerID uuid.UUID) (*Customer, error) {
	var c Customer
	err := db.QueryRow(ctx, `
		SELECT id, user_name, email, recent_visits
		FROM customers WHERE id = $1`, customerID).
		Scan(&c.ID, &c.UserName, &c.Email, &c.RecentVisits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", customerID, err)
	}
	return &c, nil
}

// GetCustomerByEmail fetches a customer profile by email address.
func GetCustomerByEmail(ctx context.Context, db *pgxpool.Pool, email string) (*Customer, error) {
	var c Customer
	err := db.QueryRow(ctx, `
		SELECT id, user_name, email, recent_visits
		FROM customers WHERE email = $1`, email).
		Scan(&c.ID, &c.UserName, &c.Email, &c.RecentVisits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer by email: %w", err)
	}
	return &c, nil
}

// CreateCustomer inserts a new customer profile.
func CreateCustomer(ctx context.Context, db *pgxpool.Pool, userName, email string) (*Customer, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for customer: %w", err)
	}

	c := &Customer{ID: id, UserName: userName, Email: email, RecentVisits: []uuid.UUID{}}
	_, err = db.Exec(ctx, `
		INSERT INTO customers (id, user_name, email, recent_visits)
		VALUES ($1, $2, $3, $4)`,
		c.ID, c.UserName, c.Email, c.RecentVisits)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	logger.InfoLogger.Infof("Customer %s created", c.ID)
	return c, nil
}

// AddRecentVisit records the hotel in the customer's recent-visits list and
// persists the profile. Already-listed hotels are left alone.
func AddRecentVisit(ctx context.Context, db *pgxpool.Pool, customer *Customer, hotelID uuid.UUID) error {
	for _, id := range customer.RecentVisits {
		if id == hotelID {
			return nil
		}
	}
	customer.RecentVisits = append(customer.RecentVisits, hotelID)

	_, err := db.Exec(ctx, `
		UPDATE customers SET recent_visits = $2 WHERE id = $1`,
		customer.ID, customer.RecentVisits)
	if err != nil {
		return fmt.Errorf("failed to update recent visits for customer %s: %w", customer.ID, err)
	}
	return nil
}
