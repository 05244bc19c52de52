package schedule

import (
	"venueops/internal/domain"
	"venueops/internal/timegrid"
)

type QuickBookRequest struct {
	BranchID        int64  `json:"branch_id" binding:"required"`
	ResourceID      int64  `json:"resource_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
	Comment         string `json:"comment"`
}

type MoveRequest struct {
	// ResourceID moves the reservation to another column; zero keeps the
	// current resource.
	ResourceID int64  `json:"resource_id"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

type CreateReservationRequest struct {
	BookingID             int64  `json:"booking_id" binding:"required"`
	ResourceID            int64  `json:"resource_id" binding:"required"`
	Date                  string `json:"date" binding:"required"`
	StartTime             string `json:"start_time" binding:"required"`
	EndTime               string `json:"end_time" binding:"required"`
	Title                 string `json:"title"`
	Comment               string `json:"comment"`
	AnimatorName          string `json:"animator_name"`
	CleaningBufferMinutes *int   `json:"cleaning_buffer_minutes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateDetailsRequest struct {
	Title        string `json:"title" binding:"required"`
	Comment      string `json:"comment"`
	AnimatorName string `json:"animator_name"`
}

type ReservationView struct {
	ID                    int64  `json:"id"`
	ResourceID            int64  `json:"resource_id"`
	BookingID             int64  `json:"booking_id"`
	Date                  string `json:"date"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	Status                string `json:"status"`
	CleaningBufferMinutes int    `json:"cleaning_buffer_minutes"`
	Title                 string `json:"title"`
	Comment               string `json:"comment,omitempty"`
	AnimatorName          string `json:"animator_name,omitempty"`
}

type TableColumn struct {
	Table        domain.TableResource `json:"table"`
	Reservations []ReservationView    `json:"reservations"`
}

type ZoneView struct {
	Zone   domain.Zone   `json:"zone"`
	Tables []TableColumn `json:"tables"`
}

type TableDayView struct {
	BranchID int64      `json:"branch_id"`
	Date     string     `json:"date"`
	Slots    []string   `json:"slots"`
	Zones    []ZoneView `json:"zones"`
}

type QuestColumn struct {
	Quest        domain.QuestResource `json:"quest"`
	Reservations []ReservationView    `json:"reservations"`
}

type QuestDayView struct {
	BranchID int64         `json:"branch_id"`
	Date     string        `json:"date"`
	Slots    []string      `json:"slots"`
	Quests   []QuestColumn `json:"quests"`
}

type QuickBookResponse struct {
	Booking     domain.Booking  `json:"booking"`
	Reservation ReservationView `json:"reservation"`
}

func toView(r *domain.Reservation) ReservationView {
	return ReservationView{
		ID:                    r.ID,
		ResourceID:            r.ResourceID,
		BookingID:             r.BookingID,
		Date:                  r.EventDate,
		StartTime:             timegrid.MinutesToTime(r.StartMin),
		EndTime:               timegrid.MinutesToTime(r.EndMin),
		Status:                string(r.Status),
		CleaningBufferMinutes: r.CleaningBufferMin,
		Title:                 r.Title,
		Comment:               r.Comment,
		AnimatorName:          r.AnimatorName,
	}
}

// parseAlignedTime parses "HH:MM" and rejects anything off the 30-minute
// grid before any overlap check runs.
func parseAlignedTime(hhmm string) (int, error) {
	mins, err := timegrid.TimeToMinutes(hhmm)
	if err != nil {
		return 0, ErrValidation
	}
	if !timegrid.Aligned(mins) {
		return 0, ErrValidation
	}
	return mins, nil
}

// parseWindow validates an aligned half-open window with end after start.
func parseWindow(startStr, endStr string) (startMin, endMin int, err error) {
	startMin, err = parseAlignedTime(startStr)
	if err != nil {
		return 0, 0, err
	}
	endMin, err = parseAlignedTime(endStr)
	if err != nil {
		return 0, 0, err
	}
	if endMin <= startMin {
		return 0, 0, ErrValidation
	}
	return startMin, endMin, nil
}
