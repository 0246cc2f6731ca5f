package models

// Stay types
const (
	StayTypeReserved = "reserved"
	StayTypeBooked   = "booked"
	StayTypeWalkIn   = "walk_in"
)

// Stay statuses
const (
	StayStatusConfirmed  = "confirmed"
	StayStatusCheckedIn  = "checked_in"
	StayStatusCheckedOut = "checked_out"
	StayStatusCancelled  = "cancelled"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusCancelled = "cancelled"
)

// Room occupancy statuses
const (
	RoomStatusAvailable          = "available"
	RoomStatusOccupied           = "occupied"
	RoomStatusMaintenance        = "maintenance"
	RoomStatusMarkedForCleaning  = "marked_for_cleaning"
	RoomStatusCleaning           = "cleaning"
	RoomStatusUnavailable        = "unavailable"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusReady     = "ready"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// stayStatusTransitions spells out every allowed move. Forward jumps
// (confirmed straight to checked_out or cancelled, checked_in straight to
// cancelled) are allowed on purpose; nothing leaves cancelled.
var stayStatusTransitions = map[string]map[string]bool{
	StayStatusConfirmed: {
		StayStatusConfirmed:  true,
		StayStatusCheckedIn:  true,
		StayStatusCheckedOut: true,
		StayStatusCancelled:  true,
	},
	StayStatusCheckedIn: {
		StayStatusCheckedIn:  true,
		StayStatusCheckedOut: true,
		StayStatusCancelled:  true,
	},
	StayStatusCheckedOut: {
		StayStatusCheckedOut: true,
		StayStatusCancelled:  true,
	},
	StayStatusCancelled: {
		StayStatusCancelled: true,
	},
}

// paymentStatusTransitions: refund-then-repay is legal, so this is a table,
// not an ordering.
var paymentStatusTransitions = map[string][]string{
	PaymentStatusPending:   {PaymentStatusPaid, PaymentStatusCancelled},
	PaymentStatusPaid:      {PaymentStatusRefunded, PaymentStatusCancelled},
	PaymentStatusRefunded:  {PaymentStatusPaid},
	PaymentStatusCancelled: {PaymentStatusPaid},
}

// orderStatusRank preserves the legacy progression pending -> cancelled ->
// ready -> paid. The placement of cancelled is inherited behavior; see the
// pinning test before reordering.
var orderStatusRank = []string{
	OrderStatusPending,
	OrderStatusCancelled,
	OrderStatusReady,
	OrderStatusPaid,
}

func CanTransitionStayStatus(current, next string) bool {
	allowed, ok := stayStatusTransitions[current]
	return ok && allowed[next]
}

func CanTransitionPaymentStatus(current, next string) bool {
	if current == next {
		return true
	}
	for _, s := range paymentStatusTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

func OrderStatusRank(status string) int {
	for i, s := range orderStatusRank {
		if s == status {
			return i
		}
	}
	return -1
}

func CanTransitionOrderStatus(current, next string) bool {
	ci, ni := OrderStatusRank(current), OrderStatusRank(next)
	return ci >= 0 && ni >= 0 && ni >= ci
}

func IsValidStayType(t string) bool {
	return t == StayTypeReserved || t == StayTypeBooked || t == StayTypeWalkIn
}

func IsValidStayStatus(s string) bool {
	_, ok := stayStatusTransitions[s]
	return ok
}

func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

func IsValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance,
		RoomStatusMarkedForCleaning, RoomStatusCleaning, RoomStatusUnavailable:
		return true
	}
	return false
}

func IsValidOrderStatus(s string) bool {
	return OrderStatusRank(s) >= 0
}
