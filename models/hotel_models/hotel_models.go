package hotel_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joy095/roomstay/logger"
)

var (
	ErrHotelNotFound = errors.New("hotel not found")
	ErrRoomNotFound  = errors.New("room not found")
)

// Hotel is the root aggregate: it owns its rooms, and every room owns its
// reservation ledger.
type Hotel struct {
	ID                uuid.UUID `json:"id"`
	HotelName         string    `json:"hotel_name"`
	HotelType         string    `json:"hotel_type"`
	City              string    `json:"city"`
	Rating            float64   `json:"rating"`
	OverallReview     string    `json:"overall_review"`
	NumReviews        int       `json:"num_reviews"`
	PriceStartingFrom int       `json:"price_starting_from"`
	Overview          string    `json:"overview"`
	LocationFeatures  []string  `json:"location_features"`
	Amenities         []string  `json:"amenities"`
	Images            []string  `json:"images"`
	Rooms             []Room    `json:"rooms"`
}

type Room struct {
	ID                uuid.UUID             `json:"id"`
	HotelID           uuid.UUID             `json:"hotel_id"`
	RoomType          string                `json:"room_type"`
	RoomSpecification string                `json:"room_specification"`
	RoomCount         int                   `json:"room_count"`
	RoomRate          float64               `json:"room_rate"`
	Reservations      []ReservationInterval `json:"reservations"`
}

// ReservationInterval is one ledger entry: the units a confirmed booking
// holds over [CheckInDate, CheckOutDate). Entries are appended on confirm,
// removed on cancel, never mutated in place.
type ReservationInterval struct {
	BookingID    uuid.UUID `json:"booking_id"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	RoomCount    int       `json:"room_count"`
}

// FindRoom returns the room with the given id from the hotel's room list.
func (h *Hotel) FindRoom(roomID uuid.UUID) (*Room, error) {
	for i := range h.Rooms {
		if h.Rooms[i].ID == roomID {
			return &h.Rooms[i], nil
		}
	}
	return nil, ErrRoomNotFound
}

// --- Database operations ---

// GetHotelByID loads a hotel with its rooms and each room's reservation
// ledger in insertion order.
func GetHotelByID(ctx context.Context, db *pgxpool.Pool, hotelID uuid.UUID) (*Hotel, error) {
	hotel, err := scanHotel(db.QueryRow(ctx, `
		SELECT id, hotel_name, hotel_type, city, rating, overall_review,
		       num_reviews, price_starting_from, overview,
		       location_features, amenities, images
		FROM hotels WHERE id = $1`, hotelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to fetch hotel %s: %w", hotelID, err)
	}

	if err := loadRooms(ctx, db, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

// GetHotelsByCity returns all hotels whose city matches exactly, rooms and
// ledgers included.
func GetHotelsByCity(ctx context.Context, db *pgxpool.Pool, city string) ([]Hotel, error) {
	rows, err := db.Query(ctx, `
		SELECT id, hotel_name, hotel_type, city, rating, overall_review,
		       num_reviews, price_starting_from, overview,
		       location_features, amenities, images
		FROM hotels WHERE city = $1`, city)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels for city %q: %w", city, err)
	}
	defer rows.Close()

	var hotels []Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel row: %w", err)
		}
		hotels = append(hotels, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading hotel rows: %w", err)
	}

	for i := range hotels {
		if err := loadRooms(ctx, db, &hotels[i]); err != nil {
			return nil, err
		}
	}
	return hotels, nil
}

// GetAllHotels returns every hotel without rooms, for listing pages.
func GetAllHotels(ctx context.Context, db *pgxpool.Pool) ([]Hotel, error) {
	rows, err := db.Query(ctx, `
		SELECT id, hotel_name, hotel_type, city, rating, overall_review,
		       num_reviews, price_starting_from, overview,
		       location_features, amenities, images
		FROM hotels ORDER BY hotel_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer rows.Close()

	var hotels []Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel row: %w", err)
		}
		hotels = append(hotels, *h)
	}
	return hotels, rows.Err()
}

func scanHotel(row pgx.Row) (*Hotel, error) {
	var h Hotel
	err := row.Scan(&h.ID, &h.HotelName, &h.HotelType, &h.City, &h.Rating,
		&h.OverallReview, &h.NumReviews, &h.PriceStartingFrom, &h.Overview,
		&h.LocationFeatures, &h.Amenities, &h.Images)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func loadRooms(ctx context.Context, db *pgxpool.Pool, hotel *Hotel) error {
	rows, err := db.Query(ctx, `
		SELECT id, hotel_id, room_type, room_specification, room_count, room_rate
		FROM rooms WHERE hotel_id = $1 ORDER BY created_at`, hotel.ID)
	if err != nil {
		return fmt.Errorf("failed to query rooms for hotel %s: %w", hotel.ID, err)
	}
	defer rows.Close()

	hotel.Rooms = nil
	for rows.Next() {
		var r Room
		if err := rows.Scan(&r.ID, &r.HotelID, &r.RoomType, &r.RoomSpecification,
			&r.RoomCount, &r.RoomRate); err != nil {
			return fmt.Errorf("failed to scan room row: %w", err)
		}
		hotel.Rooms = append(hotel.Rooms, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading room rows: %w", err)
	}

	for i := range hotel.Rooms {
		ledger, err := getReservations(ctx, db, hotel.Rooms[i].ID)
		if err != nil {
			return err
		}
		hotel.Rooms[i].Reservations = ledger
	}
	return nil
}

// getReservations returns the room's ledger ordered by append order.
func getReservations(ctx context.Context, db *pgxpool.Pool, roomID uuid.UUID) ([]ReservationInterval, error) {
	rows, err := db.Query(ctx, `
		SELECT booking_id, check_in_date, check_out_date, room_count
		FROM reservations WHERE room_id = $1 ORDER BY seq`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations for room %s: %w", roomID, err)
	}
	defer rows.Close()

	var ledger []ReservationInterval
	for rows.Next() {
		var ri ReservationInterval
		if err := rows.Scan(&ri.BookingID, &ri.CheckInDate, &ri.CheckOutDate, &ri.RoomCount); err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		ledger = append(ledger, ri)
	}
	return ledger, rows.Err()
}

// CreateHotel inserts a hotel and its initial rooms.
func CreateHotel(ctx context.Context, db *pgxpool.Pool, hotel *Hotel) (*Hotel, error) {
	if hotel.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate UUID: %w", err)
		}
		hotel.ID = id
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO hotels (id, hotel_name, hotel_type, city, rating, overall_review,
		                    num_reviews, price_starting_from, overview,
		                    location_features, amenities, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		hotel.ID, hotel.HotelName, hotel.HotelType, hotel.City, hotel.Rating,
		hotel.OverallReview, hotel.NumReviews, hotel.PriceStartingFrom,
		hotel.Overview, hotel.LocationFeatures, hotel.Amenities, hotel.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to insert hotel: %w", err)
	}

	for i := range hotel.Rooms {
		room := &hotel.Rooms[i]
		room.HotelID = hotel.ID
		if err := insertRoom(ctx, tx, room); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit hotel insert: %w", err)
	}

	logger.InfoLogger.Infof("Hotel %s created with %d rooms", hotel.ID, len(hotel.Rooms))
	return hotel, nil
}

func insertRoom(ctx context.Context, tx pgx.Tx, room *Room) error {
	if room.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate UUID: %w", err)
		}
		room.ID = id
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO rooms (id, hotel_id, room_type, room_specification, room_count, room_rate)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		room.ID, room.HotelID, room.RoomType, room.RoomSpecification,
		room.RoomCount, room.RoomRate)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}
	return nil
}

// UpdateHotel overwrites the hotel's descriptive fields. Rooms and ledgers
// are managed through AddRoom and the payment lifecycle, not here.
func UpdateHotel(ctx context.Context, db *pgxpool.Pool, hotel *Hotel) error {
	tag, err := db.Exec(ctx, `
		UPDATE hotels
		SET hotel_name = $2, hotel_type = $3, city = $4, rating = $5,
		    overall_review = $6, num_reviews = $7, price_starting_from = $8,
		    overview = $9, location_features = $10, amenities = $11, images = $12
		WHERE id = $1`,
		hotel.ID, hotel.HotelName, hotel.HotelType, hotel.City, hotel.Rating,
		hotel.OverallReview, hotel.NumReviews, hotel.PriceStartingFrom,
		hotel.Overview, hotel.LocationFeatures, hotel.Amenities, hotel.Images)
	if err != nil {
		return fmt.Errorf("failed to update hotel %s: %w", hotel.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// DeleteHotel removes the hotel; rooms and reservations cascade.
func DeleteHotel(ctx context.Context, db *pgxpool.Pool, hotelID uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM hotels WHERE id = $1`, hotelID)
	if err != nil {
		return fmt.Errorf("failed to delete hotel %s: %w", hotelID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrHotelNotFound
	}
	logger.InfoLogger.Infof("Hotel %s deleted", hotelID)
	return nil
}

// AddRoom appends a new room type to an existing hotel.
func AddRoom(ctx context.Context, db *pgxpool.Pool, hotelID uuid.UUID, room *Room) (*Room, error) {
	var exists bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM hotels WHERE id = $1)`, hotelID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check hotel %s: %w", hotelID, err)
	}
	if !exists {
		return nil, ErrHotelNotFound
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	room.HotelID = hotelID
	if err := insertRoom(ctx, tx, room); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit room insert: %w", err)
	}

	logger.InfoLogger.Infof("Room %s added to hotel %s", room.ID, hotelID)
	return room, nil
}

// --- Ledger operations (transactional) ---
//
// The callers own the transaction. LockRoom must be called first so two
// concurrent confirmations of the same room serialize instead of both
// reading a stale ledger.

// LockRoom takes a row lock on the room for the duration of the transaction
// and returns its current static fields.
func LockRoom(ctx context.Context, tx pgx.Tx, roomID uuid.UUID) (*Room, error) {
	var r Room
	err := tx.QueryRow(ctx, `
		SELECT id, hotel_id, room_type, room_specification, room_count, room_rate
		FROM rooms WHERE id = $1 FOR UPDATE`, roomID).
		Scan(&r.ID, &r.HotelID, &r.RoomType, &r.RoomSpecification, &r.RoomCount, &r.RoomRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to lock room %s: %w", roomID, err)
	}
	return &r, nil
}

// AppendReservation adds one ledger entry for the booking.
func AppendReservation(ctx context.Context, tx pgx.Tx, roomID uuid.UUID, ri ReservationInterval) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO reservations (room_id, booking_id, check_in_date, check_out_date, room_count)
		VALUES ($1, $2, $3, $4, $5)`,
		roomID, ri.BookingID, ri.CheckInDate, ri.CheckOutDate, ri.RoomCount)
	if err != nil {
		return fmt.Errorf("failed to append reservation for room %s: %w", roomID, err)
	}
	return nil
}

// RemoveReservation deletes the ledger entries belonging to the booking and
// reports how many were removed.
func RemoveReservation(ctx context.Context, tx pgx.Tx, roomID, bookingID uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, `
		DELETE FROM reservations WHERE room_id = $1 AND booking_id = $2`,
		roomID, bookingID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove reservation for booking %s: %w", bookingID, err)
	}
	return tag.RowsAffected(), nil
}
