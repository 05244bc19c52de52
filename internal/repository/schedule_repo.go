package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"venueops/internal/domain"
)

type reservationModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	ResourceKind      string    `gorm:"column:resource_kind;index:idx_resource_day"`
	ResourceID        int64     `gorm:"column:resource_id;index:idx_resource_day"`
	BookingID         int64     `gorm:"column:booking_id;index"`
	EventDate         string    `gorm:"column:event_date;index:idx_resource_day"`
	StartMin          int       `gorm:"column:start_min"`
	EndMin            int       `gorm:"column:end_min"`
	Status            string    `gorm:"column:status"`
	CleaningBufferMin int       `gorm:"column:cleaning_buffer_min"`
	Title             string    `gorm:"column:title"`
	Comment           *string   `gorm:"column:comment"`
	AnimatorName      *string   `gorm:"column:animator_name"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

type bookingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	BranchID    int64     `gorm:"column:branch_id;index"`
	EventDate   string    `gorm:"column:event_date"`
	ClientName  string    `gorm:"column:client_name"`
	ClientPhone *string   `gorm:"column:client_phone"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	r := &domain.Reservation{
		ID:                m.ID,
		Kind:              domain.ResourceKind(m.ResourceKind),
		ResourceID:        m.ResourceID,
		BookingID:         m.BookingID,
		EventDate:         m.EventDate,
		StartMin:          m.StartMin,
		EndMin:            m.EndMin,
		Status:            domain.ReservationStatus(m.Status),
		CleaningBufferMin: m.CleaningBufferMin,
		Title:             m.Title,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.Comment != nil {
		r.Comment = *m.Comment
	}
	if m.AnimatorName != nil {
		r.AnimatorName = *m.AnimatorName
	}
	return r
}

func toReservationModel(r *domain.Reservation) reservationModel {
	m := reservationModel{
		ID:                r.ID,
		ResourceKind:      string(r.Kind),
		ResourceID:        r.ResourceID,
		BookingID:         r.BookingID,
		EventDate:         r.EventDate,
		StartMin:          r.StartMin,
		EndMin:            r.EndMin,
		Status:            string(r.Status),
		CleaningBufferMin: r.CleaningBufferMin,
		Title:             r.Title,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.Comment != "" {
		v := r.Comment
		m.Comment = &v
	}
	if r.AnimatorName != "" {
		v := r.AnimatorName
		m.AnimatorName = &v
	}
	return m
}

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:         m.ID,
		BranchID:   m.BranchID,
		EventDate:  m.EventDate,
		ClientName: m.ClientName,
		Status:     domain.BookingStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.ClientPhone != nil {
		b.ClientPhone = *m.ClientPhone
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:         b.ID,
		BranchID:   b.BranchID,
		EventDate:  b.EventDate,
		ClientName: b.ClientName,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if b.ClientPhone != "" {
		v := b.ClientPhone
		m.ClientPhone = &v
	}
	return m
}

// ScheduleTx is the set of schedule store operations available both on the
// base repository and inside a serialized section opened by Atomic.
type ScheduleTx interface {
	CreateBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	CreateReservation(ctx context.Context, r *domain.Reservation) error
	GetReservation(ctx context.Context, kind domain.ResourceKind, id int64) (*domain.Reservation, error)
	ListForResourceDate(ctx context.Context, kind domain.ResourceKind, resourceID int64, date string) ([]domain.Reservation, error)
	UpdateReservationSlot(ctx context.Context, kind domain.ResourceKind, id, resourceID int64, startMin, endMin int) error
	UpdateReservationStatus(ctx context.Context, kind domain.ResourceKind, id int64, status domain.ReservationStatus) error
}

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Atomic runs fn inside one transaction serialized per resource: on postgres
// it takes a row lock on the resource record first, so concurrent
// check-then-act sequences on the same resource-day queue up instead of both
// validating against a stale read. SQLite serializes writers on its own.
func (r *ScheduleRepository) Atomic(ctx context.Context, kind domain.ResourceKind, resourceID int64, fn func(tx ScheduleTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			table := "venue_tables"
			if kind == domain.KindQuest {
				table = "quests"
			}
			var locked int64
			res := tx.Raw("SELECT id FROM "+table+" WHERE id = ? FOR UPDATE", resourceID).Scan(&locked)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return fn(&ScheduleRepository{db: tx})
	})
}

func (r *ScheduleRepository) CreateBooking(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *ScheduleRepository) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainBooking(m), nil
}

func (r *ScheduleRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ScheduleRepository) GetReservation(ctx context.Context, kind domain.ResourceKind, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND resource_kind = ?", id, string(kind)).
		First(&m)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainReservation(m), nil
}

// ListForResourceDate returns every non-canceled reservation on one
// resource-day, ordered by start time. Canceled rows are kept for history
// but never block a slot.
func (r *ScheduleRepository) ListForResourceDate(ctx context.Context, kind domain.ResourceKind, resourceID int64, date string) ([]domain.Reservation, error) {
	var ms []reservationModel
	tx := r.db.WithContext(ctx).
		Where("resource_kind = ? AND resource_id = ? AND event_date = ? AND status <> ?",
			string(kind), resourceID, date, string(domain.ReservationCanceled)).
		Order("start_min").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Reservation, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// ListForBranchDate feeds the day grid: all non-canceled reservations of one
// kind across a branch's resources.
func (r *ScheduleRepository) ListForBranchDate(ctx context.Context, kind domain.ResourceKind, branchID int64, date string) ([]domain.Reservation, error) {
	q := `
SELECT r.* FROM reservations r
JOIN quests q ON q.id = r.resource_id
WHERE r.resource_kind = ? AND q.branch_id = ? AND r.event_date = ? AND r.status <> ?
ORDER BY r.resource_id, r.start_min
`
	if kind == domain.KindTable {
		q = `
SELECT r.* FROM reservations r
JOIN venue_tables t ON t.id = r.resource_id
JOIN zones z ON z.id = t.zone_id
WHERE r.resource_kind = ? AND z.branch_id = ? AND r.event_date = ? AND r.status <> ?
ORDER BY r.resource_id, r.start_min
`
	}
	var ms []reservationModel
	tx := r.db.WithContext(ctx).Raw(q,
		string(kind), branchID, date, string(domain.ReservationCanceled)).Scan(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Reservation, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *ScheduleRepository) UpdateReservationSlot(ctx context.Context, kind domain.ResourceKind, id, resourceID int64, startMin, endMin int) error {
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ? AND resource_kind = ?", id, string(kind)).
		Updates(map[string]any{
			"resource_id": resourceID,
			"start_min":   startMin,
			"end_min":     endMin,
			"updated_at":  time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) UpdateReservationStatus(ctx context.Context, kind domain.ResourceKind, id int64, status domain.ReservationStatus) error {
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ? AND resource_kind = ?", id, string(kind)).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateReservationDetails edits display fields only; time and resource
// changes must go through the move path so the overlap check cannot be
// bypassed.
func (r *ScheduleRepository) UpdateReservationDetails(ctx context.Context, kind domain.ResourceKind, id int64, title, comment, animator string) error {
	var cp, ap *string
	if comment != "" {
		cp = &comment
	}
	if animator != "" {
		ap = &animator
	}
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ? AND resource_kind = ?", id, string(kind)).
		Updates(map[string]any{
			"title":         title,
			"comment":       cp,
			"animator_name": ap,
			"updated_at":    time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
