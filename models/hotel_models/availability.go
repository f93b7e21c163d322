package hotel_models

import (
	"time"

	"github.com/google/uuid"
)

// AvailableCapacity returns how many units of the room remain free over the
// requested range: the room's static count minus every overlapping ledger
// entry. An empty ledger means the full count is free. Overlap uses the
// standard half-open [checkIn, checkOut) test, so back-to-back stays where
// one guest checks out the day another checks in do not collide.
func AvailableCapacity(room *Room, checkIn, checkOut time.Time) int {
	capacity := room.RoomCount
	for _, ri := range room.Reservations {
		if overlaps(checkIn, checkOut, ri.CheckInDate, ri.CheckOutDate) {
			capacity -= ri.RoomCount
		}
	}
	return capacity
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// SearchParams carries the hotel search criteria. PriceRangeMin and
// PriceRangeMax are accepted for API compatibility but not applied yet;
// callers should not rely on price filtering.
type SearchParams struct {
	City          string
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
	CountOfRooms  int
	PriceRangeMin int
	PriceRangeMax int
	Rating        float64
	Amenities     []string
}

// SearchResult pairs the surviving hotels with the ids of their rooms that
// can take the requested unit count. A hotel stays in Hotels even when none
// of its rooms are available; consumers cross-reference AvailableRoomIDs.
type SearchResult struct {
	Hotels           []Hotel     `json:"hotels"`
	AvailableRoomIDs []uuid.UUID `json:"available_room_ids"`
}

// FilterHotels runs the search pipeline over hotels already narrowed to the
// requested city: amenities, then rating, then per-room availability.
func FilterHotels(hotels []Hotel, params SearchParams) SearchResult {
	hotels = filterByAmenities(hotels, params.Amenities)
	hotels = filterByRating(hotels, params.Rating)

	var roomIDs []uuid.UUID
	if params.CheckInDate != nil && params.CheckOutDate != nil {
		roomIDs = availableRoomIDs(hotels, *params.CheckInDate, *params.CheckOutDate, params.CountOfRooms)
	}

	return SearchResult{Hotels: hotels, AvailableRoomIDs: roomIDs}
}

// filterByAmenities keeps hotels whose amenity set contains every requested
// amenity. An empty request keeps everything.
func filterByAmenities(hotels []Hotel, amenities []string) []Hotel {
	if len(amenities) == 0 {
		return hotels
	}
	filtered := make([]Hotel, 0, len(hotels))
	for _, h := range hotels {
		if hasAllAmenities(h.Amenities, amenities) {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

func hasAllAmenities(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, a := range have {
		set[a] = struct{}{}
	}
	for _, a := range want {
		if _, ok := set[a]; !ok {
			return false
		}
	}
	return true
}

// filterByRating keeps hotels rated strictly above the threshold. A zero or
// negative threshold keeps everything.
func filterByRating(hotels []Hotel, rating float64) []Hotel {
	if rating <= 0 {
		return hotels
	}
	filtered := make([]Hotel, 0, len(hotels))
	for _, h := range hotels {
		if h.Rating > rating {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// availableRoomIDs collects, across all hotels, the rooms whose remaining
// capacity strictly exceeds the requested count. Order is first seen;
// duplicates are dropped.
func availableRoomIDs(hotels []Hotel, checkIn, checkOut time.Time, countOfRooms int) []uuid.UUID {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for i := range hotels {
		for j := range hotels[i].Rooms {
			room := &hotels[i].Rooms[j]
			if AvailableCapacity(room, checkIn, checkOut) > countOfRooms {
				if _, dup := seen[room.ID]; dup {
					continue
				}
				seen[room.ID] = struct{}{}
				ids = append(ids, room.ID)
			}
		}
	}
	return ids
}
