package hotel_models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailableCapacity(t *testing.T) {
	checkIn := date(2024, time.June, 10)
	checkOut := date(2024, time.June, 12)

	t.Run("EmptyLedgerReturnsFullCount", func(t *testing.T) {
		room := &Room{ID: uuid.New(), RoomCount: 5}
		assert.Equal(t, 5, AvailableCapacity(room, checkIn, checkOut))
	})

	t.Run("OverlappingIntervalSubtracts", func(t *testing.T) {
		room := &Room{ID: uuid.New(), RoomCount: 5, Reservations: []ReservationInterval{
			{BookingID: uuid.New(), CheckInDate: checkIn, CheckOutDate: checkOut, RoomCount: 2},
		}}
		assert.Equal(t, 3, AvailableCapacity(room, checkIn, checkOut))
	})

	t.Run("MultipleOverlapsAccumulate", func(t *testing.T) {
		room := &Room{ID: uuid.New(), RoomCount: 5, Reservations: []ReservationInterval{
			{CheckInDate: date(2024, time.June, 9), CheckOutDate: date(2024, time.June, 11), RoomCount: 1},
			{CheckInDate: date(2024, time.June, 11), CheckOutDate: date(2024, time.June, 14), RoomCount: 2},
		}}
		assert.Equal(t, 2, AvailableCapacity(room, checkIn, checkOut))
	})

	t.Run("NeverExceedsRoomCount", func(t *testing.T) {
		room := &Room{ID: uuid.New(), RoomCount: 4, Reservations: []ReservationInterval{
			{CheckInDate: date(2024, time.July, 1), CheckOutDate: date(2024, time.July, 5), RoomCount: 2},
		}}
		got := AvailableCapacity(room, checkIn, checkOut)
		assert.LessOrEqual(t, got, room.RoomCount)
		assert.Equal(t, 4, got, "non-overlapping interval must not subtract")
	})

	// Pins the half-open overlap policy: checking out the day another guest
	// checks in does not collide.
	t.Run("BackToBackStaysDoNotOverlap", func(t *testing.T) {
		room := &Room{ID: uuid.New(), RoomCount: 1, Reservations: []ReservationInterval{
			{CheckInDate: date(2024, time.June, 12), CheckOutDate: date(2024, time.June, 15), RoomCount: 1},
		}}
		assert.Equal(t, 1, AvailableCapacity(room, checkIn, checkOut))
		assert.Equal(t, 1, AvailableCapacity(room, date(2024, time.June, 15), date(2024, time.June, 17)))
		assert.Equal(t, 0, AvailableCapacity(room, date(2024, time.June, 14), date(2024, time.June, 16)))
	})
}

func TestFilterHotels(t *testing.T) {
	checkIn := date(2024, time.June, 10)
	checkOut := date(2024, time.June, 12)

	roomA := Room{ID: uuid.New(), RoomType: "Deluxe", RoomCount: 3}
	roomB := Room{ID: uuid.New(), RoomType: "Suite", RoomCount: 1}

	hotelA := Hotel{
		ID: uuid.New(), HotelName: "Grand Hotel", City: "Pune", Rating: 4.5,
		Amenities: []string{"wifi", "pool", "parking"},
		Rooms:     []Room{roomA},
	}
	hotelB := Hotel{
		ID: uuid.New(), HotelName: "Budget Inn", City: "Pune", Rating: 3.0,
		Amenities: []string{"wifi"},
		Rooms:     []Room{roomB},
	}

	t.Run("AmenitySupersetKeepsHotel", func(t *testing.T) {
		result := FilterHotels([]Hotel{hotelA, hotelB}, SearchParams{
			Amenities: []string{"wifi", "pool"},
		})
		require.Len(t, result.Hotels, 1)
		assert.Equal(t, "Grand Hotel", result.Hotels[0].HotelName)
	})

	t.Run("RatingFilterIsStrict", func(t *testing.T) {
		result := FilterHotels([]Hotel{hotelA, hotelB}, SearchParams{Rating: 4.5})
		assert.Empty(t, result.Hotels, "rating must be strictly greater than the threshold")

		result = FilterHotels([]Hotel{hotelA, hotelB}, SearchParams{Rating: 4.0})
		require.Len(t, result.Hotels, 1)
		assert.Equal(t, "Grand Hotel", result.Hotels[0].HotelName)
	})

	t.Run("NoDatesMeansNoRoomIDs", func(t *testing.T) {
		result := FilterHotels([]Hotel{hotelA, hotelB}, SearchParams{CountOfRooms: 1})
		assert.Len(t, result.Hotels, 2)
		assert.Empty(t, result.AvailableRoomIDs)
	})

	t.Run("AvailabilityThresholdIsStrict", func(t *testing.T) {
		// roomA has 3 free units: available for 2 wanted, not for 3.
		result := FilterHotels([]Hotel{hotelA}, SearchParams{
			CheckInDate: &checkIn, CheckOutDate: &checkOut, CountOfRooms: 2,
		})
		assert.Equal(t, []uuid.UUID{roomA.ID}, result.AvailableRoomIDs)

		result = FilterHotels([]Hotel{hotelA}, SearchParams{
			CheckInDate: &checkIn, CheckOutDate: &checkOut, CountOfRooms: 3,
		})
		assert.Empty(t, result.AvailableRoomIDs)
	})

	t.Run("HotelWithoutAvailableRoomsStaysListed", func(t *testing.T) {
		result := FilterHotels([]Hotel{hotelA, hotelB}, SearchParams{
			CheckInDate: &checkIn, CheckOutDate: &checkOut, CountOfRooms: 2,
		})
		assert.Len(t, result.Hotels, 2, "hotels are not filtered by availability, only room ids are")
		assert.Equal(t, []uuid.UUID{roomA.ID}, result.AvailableRoomIDs)
	})

	t.Run("ConfirmedReservationReducesCapacity", func(t *testing.T) {
		// Before confirmation: 3 free units, available for 2 wanted.
		fresh := hotelA
		result := FilterHotels([]Hotel{fresh}, SearchParams{
			CheckInDate: &checkIn, CheckOutDate: &checkOut, CountOfRooms: 2,
		})
		require.Contains(t, result.AvailableRoomIDs, roomA.ID)

		// After a confirmed booking for 2 units on the same range only 1
		// unit remains, which is not strictly more than 2.
		booked := hotelA
		booked.Rooms = []Room{{
			ID: roomA.ID, RoomType: roomA.RoomType, RoomCount: roomA.RoomCount,
			Reservations: []ReservationInterval{
				{BookingID: uuid.New(), CheckInDate: checkIn, CheckOutDate: checkOut, RoomCount: 2},
			},
		}}
		result = FilterHotels([]Hotel{booked}, SearchParams{
			CheckInDate: &checkIn, CheckOutDate: &checkOut, CountOfRooms: 2,
		})
		assert.NotContains(t, result.AvailableRoomIDs, roomA.ID)
	})

	t.Run("RoomIDsDeduplicatedFirstSeenOrder", func(t *testing.T) {
		shared := Room{ID: uuid.New(), RoomCount: 5}
		other := Room{ID: uuid.New(), RoomCount: 5}
		h1 := Hotel{ID: uuid.New(), Rooms: []Room{shared, other}}
		h2 := Hotel{ID: uuid.New(), Rooms: []Room{shared}}

		result := FilterHotels([]Hotel{h1, h2}, SearchParams{
			CheckInDate: &checkIn, CheckOutDate: &checkOut, CountOfRooms: 1,
		})
		assert.Equal(t, []uuid.UUID{shared.ID, other.ID}, result.AvailableRoomIDs)
	})
}

func TestFindRoom(t *testing.T) {
	room := Room{ID: uuid.New(), RoomType: "Deluxe"}
	hotel := Hotel{ID: uuid.New(), Rooms: []Room{room}}

	found, err := hotel.FindRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deluxe", found.RoomType)

	_, err = hotel.FindRoom(uuid.New())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
