package booking_controller

import "errors"

var (
	ErrRoomUnavailable = errors.New("no available rooms")
	ErrNoHotelImages   = errors.New("hotel has no images")
)
