package domain

import "time"

type BookingStatus string

const (
	BookingDraft     BookingStatus = "draft"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
	BookingDone      BookingStatus = "done"
)

// Booking is the order-level aggregate a reservation belongs to. Add-on line
// items (cakes, food, shows) hang off it elsewhere; the scheduling core only
// needs its identity and status. Booking status is independent of the
// statuses of its reservations, it just mirrors them at creation.
type Booking struct {
	ID          int64         `json:"id"`
	BranchID    int64         `json:"branch_id"`
	EventDate   string        `json:"event_date"`
	ClientName  string        `json:"client_name"`
	ClientPhone string        `json:"client_phone,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PlaceholderClientName labels quick-booked orders created without a client.
const PlaceholderClientName = "New booking"
