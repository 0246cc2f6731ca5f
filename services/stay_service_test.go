package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotelops-backend/models"
)

func reservedInput(roomID uint, checkIn, checkOut, paymentDate string) CreateStayInput {
	pd := date(paymentDate)
	return CreateStayInput{
		RoomID:       roomID,
		GuestName:    "John Smith",
		PhoneNumber:  "555-0101",
		CheckInDate:  date(checkIn),
		CheckOutDate: date(checkOut),
		Adults:       2,
		Type:         models.StayTypeReserved,
		PaymentDate:  &pd,
	}
}

func TestCreateStayValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		mut   func(*CreateStayInput)
		field string
	}{
		{"missing guest name", func(in *CreateStayInput) { in.GuestName = "" }, "guestName"},
		{"missing phone", func(in *CreateStayInput) { in.PhoneNumber = "" }, "phoneNumber"},
		{"bad type", func(in *CreateStayInput) { in.Type = "overnight" }, "type"},
		{"reversed dates", func(in *CreateStayInput) {
			in.CheckInDate, in.CheckOutDate = in.CheckOutDate, in.CheckInDate
		}, "checkOutDate"},
		{"equal dates", func(in *CreateStayInput) { in.CheckOutDate = in.CheckInDate }, "checkOutDate"},
		{"reservation without payment date", func(in *CreateStayInput) { in.PaymentDate = nil }, "paymentDate"},
		{"payment date after check-in", func(in *CreateStayInput) {
			pd := date("2025-03-11")
			in.PaymentDate = &pd
		}, "paymentDate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05")
			tc.mut(&in)
			_, err := f.stays.CreateStay(ctx, f.hotelID, in)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validation.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, validation.Field)
			}
		})
	}

	// fail fast: nothing was written
	var count int64
	f.db.Model(&models.Stay{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected inputs must not create stays, found %d", count)
	}
}

func TestCreateStayRoomChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(9999, "2025-03-10", "2025-03-12", "2025-03-05"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing room, got %v", err)
	}

	if err := f.db.Model(&models.Room{}).Where("id = ?", f.roomID).
		Update("status", models.RoomStatusMaintenance).Error; err != nil {
		t.Fatal(err)
	}
	_, err = f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05"))
	var unavailable *RoomUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected RoomUnavailableError, got %v", err)
	}
	if unavailable.Status != models.RoomStatusMaintenance {
		t.Errorf("error should carry room status, got %q", unavailable.Status)
	}
}

// Front-desk happy path: a pending reservation inside its payment window
// blocks a walk-in, paying it derives rate*nights, and check-out hands the
// room to housekeeping.
func TestReservedStayLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stayA, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05"))
	if err != nil {
		t.Fatalf("create reserved stay: %v", err)
	}
	if stayA.Status != models.StayStatusConfirmed || stayA.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("reserved stay should start confirmed/pending, got %s/%s", stayA.Status, stayA.PaymentStatus)
	}
	if stayA.TotalAmount != 0 || stayA.PaidAmount != 0 {
		t.Errorf("reserved stay has no totals before payment, got %v/%v", stayA.TotalAmount, stayA.PaidAmount)
	}

	// Overlapping walk-in is blocked while the reservation's payment window
	// is open.
	_, err = f.stays.CreateStay(ctx, f.hotelID, CreateStayInput{
		RoomID:       f.roomID,
		GuestName:    "Walk In",
		PhoneNumber:  "555-0202",
		CheckInDate:  date("2025-03-11"),
		CheckOutDate: date("2025-03-13"),
		Type:         models.StayTypeWalkIn,
	})
	var conflict *BookingConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected BookingConflictError, got %v", err)
	}
	if conflict.StayID != stayA.ID || conflict.StayType != models.StayTypeReserved {
		t.Errorf("conflict should carry the blocking stay, got %+v", conflict)
	}

	// Pay the reservation: 2 nights * 100.
	paid, err := f.stays.EditStay(ctx, f.hotelID, stayA.ID, EditStayInput{
		PaymentStatus: strPtr(models.PaymentStatusPaid),
	})
	if err != nil {
		t.Fatalf("pay reservation: %v", err)
	}
	if paid.TotalAmount != 200 || paid.PaidAmount != 200 {
		t.Fatalf("expected totals 200/200, got %v/%v", paid.TotalAmount, paid.PaidAmount)
	}

	// Check in, then out.
	checkedIn, err := f.stays.EditStay(ctx, f.hotelID, stayA.ID, EditStayInput{
		Status: strPtr(models.StayStatusCheckedIn),
	})
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if checkedIn.Status != models.StayStatusCheckedIn {
		t.Fatalf("expected checked_in, got %s", checkedIn.Status)
	}
	if got := f.roomStatus(t); got != models.RoomStatusOccupied {
		t.Errorf("check-in should occupy the room, got %s", got)
	}

	checkedOut, err := f.stays.EditStay(ctx, f.hotelID, stayA.ID, EditStayInput{
		Status: strPtr(models.StayStatusCheckedOut),
	})
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if checkedOut.Status != models.StayStatusCheckedOut {
		t.Fatalf("expected checked_out, got %s", checkedOut.Status)
	}
	if got := f.roomStatus(t); got != models.RoomStatusMarkedForCleaning {
		t.Errorf("check-out must hand the room to housekeeping, got %s", got)
	}
}

func TestWalkInDerivationsAndSideEffect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stay, err := f.stays.CreateStay(ctx, f.hotelID, CreateStayInput{
		RoomID:       f.roomID,
		GuestName:    "Walk In",
		PhoneNumber:  "555-0202",
		CheckInDate:  date("2025-03-01"),
		CheckOutDate: date("2025-03-02"),
		Type:         models.StayTypeWalkIn,
	})
	if err != nil {
		t.Fatalf("create walk-in: %v", err)
	}
	if stay.Status != models.StayStatusCheckedIn || stay.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("walk-in should start checked_in/paid, got %s/%s", stay.Status, stay.PaymentStatus)
	}
	if stay.TotalAmount != 100 || stay.PaidAmount != 100 {
		t.Errorf("walk-in totals come from the room rate, got %v/%v", stay.TotalAmount, stay.PaidAmount)
	}
	if stay.PaymentDate == nil || !stay.PaymentDate.Equal(f.clock.Now()) {
		t.Errorf("walk-in payment date should be today, got %v", stay.PaymentDate)
	}
	if got := f.roomStatus(t); got != models.RoomStatusOccupied {
		t.Errorf("walk-in must occupy the room immediately, got %s", got)
	}
}

func TestBookedStayStartsPaidConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stay, err := f.stays.CreateStay(ctx, f.hotelID, CreateStayInput{
		RoomID:       f.roomID,
		GuestName:    "Booked Guest",
		PhoneNumber:  "555-0303",
		CheckInDate:  date("2025-03-10"),
		CheckOutDate: date("2025-03-12"),
		Type:         models.StayTypeBooked,
	})
	if err != nil {
		t.Fatalf("create booked stay: %v", err)
	}
	if stay.Status != models.StayStatusConfirmed || stay.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("booked stay should start confirmed/paid, got %s/%s", stay.Status, stay.PaymentStatus)
	}
	if stay.TotalAmount != 100 || stay.PaidAmount != 100 {
		t.Errorf("booked totals come from the room rate, got %v/%v", stay.TotalAmount, stay.PaidAmount)
	}
	if got := f.roomStatus(t); got != models.RoomStatusAvailable {
		t.Errorf("booking a future stay must not change the room, got %s", got)
	}
}

func TestAdjacentRangesDoNotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05")); err != nil {
		t.Fatalf("first stay: %v", err)
	}
	// checkout day == checkin day: allowed
	if _, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-12", "2025-03-14", "2025-03-06")); err != nil {
		t.Fatalf("adjacent stay should be admitted: %v", err)
	}
}

func TestExpiredReservationDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05")); err != nil {
		t.Fatalf("first stay: %v", err)
	}

	// Past the payment window, still pending: the reservation no longer
	// holds the room.
	f.clock.Set(date("2025-03-06"))
	if _, err := f.stays.CreateStay(ctx, f.hotelID, CreateStayInput{
		RoomID:       f.roomID,
		GuestName:    "Second Guest",
		PhoneNumber:  "555-0404",
		CheckInDate:  date("2025-03-10"),
		CheckOutDate: date("2025-03-12"),
		Type:         models.StayTypeBooked,
	}); err != nil {
		t.Fatalf("expired pending reservation must not block, got %v", err)
	}
}

func TestPaidReservationBlocksAfterWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stay, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05"))
	if err != nil {
		t.Fatalf("first stay: %v", err)
	}
	if _, err := f.stays.EditStay(ctx, f.hotelID, stay.ID, EditStayInput{
		PaymentStatus: strPtr(models.PaymentStatusPaid),
	}); err != nil {
		t.Fatalf("pay: %v", err)
	}

	f.clock.Set(date("2025-03-08"))
	_, err = f.stays.CreateStay(ctx, f.hotelID, CreateStayInput{
		RoomID:       f.roomID,
		GuestName:    "Second Guest",
		PhoneNumber:  "555-0404",
		CheckInDate:  date("2025-03-11"),
		CheckOutDate: date("2025-03-13"),
		Type:         models.StayTypeBooked,
	})
	var conflict *BookingConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("paid reservation blocks regardless of window, got %v", err)
	}
}

func TestEditStayRejectsRegression(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stay, err := f.stays.CreateStay(ctx, f.hotelID, CreateStayInput{
		RoomID:       f.roomID,
		GuestName:    "Booked Guest",
		PhoneNumber:  "555-0303",
		CheckInDate:  date("2025-03-10"),
		CheckOutDate: date("2025-03-12"),
		Type:         models.StayTypeBooked,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.stays.EditStay(ctx, f.hotelID, stay.ID, EditStayInput{
		Status: strPtr(models.StayStatusCheckedIn),
	}); err != nil {
		t.Fatal(err)
	}

	_, err = f.stays.EditStay(ctx, f.hotelID, stay.ID, EditStayInput{
		Status: strPtr(models.StayStatusConfirmed),
	})
	var transition *InvalidTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if transition.Current != models.StayStatusCheckedIn || transition.Requested != models.StayStatusConfirmed {
		t.Errorf("error should carry both statuses, got %+v", transition)
	}

	// rejected edits must not mutate
	reloaded, err := f.stays.GetByID(f.hotelID, stay.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Status != models.StayStatusCheckedIn {
		t.Errorf("rejected transition mutated the stay to %s", reloaded.Status)
	}
}

func TestEditStayRejectsBadPaymentTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stay, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.stays.EditStay(ctx, f.hotelID, stay.ID, EditStayInput{
		PaymentStatus: strPtr(models.PaymentStatusRefunded),
	})
	var payTransition *InvalidPaymentTransitionError
	if !errors.As(err, &payTransition) {
		t.Fatalf("pending -> refunded must be rejected, got %v", err)
	}
}

// paid -> refunded -> paid recomputes the same totals each time.
func TestDerivedTotalsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stay, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05"))
	if err != nil {
		t.Fatal(err)
	}

	for _, status := range []string{
		models.PaymentStatusPaid,
		models.PaymentStatusRefunded,
		models.PaymentStatusPaid,
	} {
		s := status
		stay, err = f.stays.EditStay(ctx, f.hotelID, stay.ID, EditStayInput{PaymentStatus: &s})
		if err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
	}
	if stay.TotalAmount != 200 || stay.PaidAmount != 200 {
		t.Errorf("repay must recompute identically, got %v/%v", stay.TotalAmount, stay.PaidAmount)
	}
}

func TestEditStayGuestFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stay, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05"))
	if err != nil {
		t.Fatal(err)
	}
	updated, err := f.stays.EditStay(ctx, f.hotelID, stay.ID, EditStayInput{
		GuestName:       strPtr("Johnny Smith"),
		SpecialRequests: strPtr("late arrival"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.GuestName != "Johnny Smith" || updated.SpecialRequests != "late arrival" {
		t.Errorf("guest fields not applied: %+v", updated)
	}
	if updated.Status != models.StayStatusConfirmed {
		t.Errorf("plain edits must not touch status, got %s", updated.Status)
	}
}

func TestTenantScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherHotel := models.Hotel{Name: "Other Hotel"}
	if err := f.db.Create(&otherHotel).Error; err != nil {
		t.Fatal(err)
	}

	stay, err := f.stays.CreateStay(ctx, f.hotelID, reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.stays.GetByID(otherHotel.ID, stay.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant read must look like NotFound, got %v", err)
	}
	if _, err := f.stays.EditStay(ctx, otherHotel.ID, stay.ID, EditStayInput{
		Status: strPtr(models.StayStatusCancelled),
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant edit must look like NotFound, got %v", err)
	}
	if _, err := f.stays.CreateStay(ctx, otherHotel.ID, reservedInput(f.roomID, "2025-04-01", "2025-04-02", "2025-03-20")); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant room use must look like NotFound, got %v", err)
	}
}

// Two concurrent creations for the same room and overlapping dates must not
// both pass the conflict check.
func TestConcurrentCreateIsSerializedPerRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			in := reservedInput(f.roomID, "2025-03-10", "2025-03-12", "2025-03-05")
			in.GuestName = "Guest " + string(rune('A'+slot))
			_, results[slot] = f.stays.CreateStay(ctx, f.hotelID, in)
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		var conflict *BookingConflictError
		switch {
		case err == nil:
			successes++
		case errors.As(err, &conflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one admit and one conflict, got %d/%d", successes, conflicts)
	}
}

func TestNightsRounding(t *testing.T) {
	cases := []struct {
		in, out time.Time
		want    int
	}{
		{date("2025-03-10"), date("2025-03-11"), 1},
		{date("2025-03-10"), date("2025-03-12"), 2},
		{date("2025-03-10"), date("2025-03-10").Add(6 * time.Hour), 1},
		{date("2025-03-10"), date("2025-03-12").Add(6 * time.Hour), 3},
	}
	for _, tc := range cases {
		if got := nightsBetween(tc.in, tc.out); got != tc.want {
			t.Errorf("nightsBetween(%v, %v) = %d, want %d", tc.in, tc.out, got, tc.want)
		}
	}
}
