package services

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound covers a missing record and a record belonging to another
// hotel; callers cannot tell the two apart.
var ErrNotFound = errors.New("not_found")

// ValidationError rejects structurally bad input before any datastore access.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// RoomUnavailableError: the room exists but is not bookable right now.
type RoomUnavailableError struct {
	RoomID uint
	Status string
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %d is %s, not available", e.RoomID, e.Status)
}

// BookingConflictError carries the stay that blocked the requested range so
// controllers can build a user-facing message.
type BookingConflictError struct {
	StayID        uint
	StayType      string
	PaymentStatus string
	CheckInDate   time.Time
	CheckOutDate  time.Time
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("room already has a %s stay from %s to %s",
		e.StayType, e.CheckInDate.Format("2006-01-02"), e.CheckOutDate.Format("2006-01-02"))
}

type InvalidTransitionError struct {
	Current   string
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move status from %s to %s", e.Current, e.Requested)
}

type InvalidPaymentTransitionError struct {
	Current   string
	Requested string
}

func (e *InvalidPaymentTransitionError) Error() string {
	return fmt.Sprintf("cannot move payment status from %s to %s", e.Current, e.Requested)
}
