package schedule

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"venueops/internal/domain"
	"venueops/internal/repository"
	"venueops/internal/timegrid"
)

type Service struct {
	store     ScheduleStore
	resources ResourceDirectory
	cache     DayCache
	events    EventSink
}

// NewService wires the scheduling core. cache and events may be nil.
func NewService(store ScheduleStore, resources ResourceDirectory, cache DayCache, events EventSink) *Service {
	return &Service{
		store:     store,
		resources: resources,
		cache:     cache,
		events:    events,
	}
}

func dayKey(kind domain.ResourceKind, branchID int64, date string) string {
	return fmt.Sprintf("schedule:%s:%d:%s", kind, branchID, date)
}

// DayTables returns the branch's table grid for one day: zones, their
// tables, and each table's non-canceled reservations.
func (s *Service) DayTables(ctx context.Context, branchID int64, date string) (*TableDayView, error) {
	date, err := timegrid.ParseDate(date)
	if err != nil {
		return nil, ErrValidation
	}

	key := dayKey(domain.KindTable, branchID, date)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var view TableDayView
			if err := json.Unmarshal(raw, &view); err == nil {
				return &view, nil
			}
		}
	}

	if _, err := s.resources.GetBranch(ctx, branchID); err != nil {
		return nil, mapRepoErr(err)
	}
	zones, err := s.resources.ListZones(ctx, branchID)
	if err != nil {
		return nil, err
	}
	tables, err := s.resources.ListTables(ctx, branchID)
	if err != nil {
		return nil, err
	}
	reservations, err := s.store.ListForBranchDate(ctx, domain.KindTable, branchID, date)
	if err != nil {
		return nil, err
	}

	byResource := make(map[int64][]ReservationView)
	for i := range reservations {
		r := &reservations[i]
		byResource[r.ResourceID] = append(byResource[r.ResourceID], toView(r))
	}

	view := &TableDayView{
		BranchID: branchID,
		Date:     date,
		Slots:    timegrid.Slots(),
		Zones:    make([]ZoneView, 0, len(zones)),
	}
	for _, z := range zones {
		zv := ZoneView{Zone: z, Tables: []TableColumn{}}
		for _, t := range tables {
			if t.ZoneID != z.ID {
				continue
			}
			col := TableColumn{Table: t, Reservations: byResource[t.ID]}
			if col.Reservations == nil {
				col.Reservations = []ReservationView{}
			}
			zv.Tables = append(zv.Tables, col)
		}
		view.Zones = append(view.Zones, zv)
	}

	s.cacheSet(ctx, key, view)
	return view, nil
}

// DayQuests returns the branch's quest grid for one day.
func (s *Service) DayQuests(ctx context.Context, branchID int64, date string) (*QuestDayView, error) {
	date, err := timegrid.ParseDate(date)
	if err != nil {
		return nil, ErrValidation
	}

	key := dayKey(domain.KindQuest, branchID, date)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var view QuestDayView
			if err := json.Unmarshal(raw, &view); err == nil {
				return &view, nil
			}
		}
	}

	if _, err := s.resources.GetBranch(ctx, branchID); err != nil {
		return nil, mapRepoErr(err)
	}
	quests, err := s.resources.ListQuests(ctx, branchID)
	if err != nil {
		return nil, err
	}
	reservations, err := s.store.ListForBranchDate(ctx, domain.KindQuest, branchID, date)
	if err != nil {
		return nil, err
	}

	byResource := make(map[int64][]ReservationView)
	for i := range reservations {
		r := &reservations[i]
		byResource[r.ResourceID] = append(byResource[r.ResourceID], toView(r))
	}

	view := &QuestDayView{
		BranchID: branchID,
		Date:     date,
		Slots:    timegrid.Slots(),
		Quests:   make([]QuestColumn, 0, len(quests)),
	}
	for _, q := range quests {
		col := QuestColumn{Quest: q, Reservations: byResource[q.ID]}
		if col.Reservations == nil {
			col.Reservations = []ReservationView{}
		}
		view.Quests = append(view.Quests, col)
	}

	s.cacheSet(ctx, key, view)
	return view, nil
}

// QuickBook turns one grid gesture into a Booking plus exactly one
// Reservation. Both rows are created in the same serialized section; on
// conflict nothing is written.
func (s *Service) QuickBook(ctx context.Context, kind domain.ResourceKind, req QuickBookRequest) (*QuickBookResponse, error) {
	date, err := timegrid.ParseDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	startMin, err := parseAlignedTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	buffer := 0
	switch kind {
	case domain.KindTable:
		if _, err := s.resources.GetTable(ctx, req.ResourceID); err != nil {
			return nil, mapRepoErr(err)
		}
		buffer = domain.DefaultCleaningBufferMin
	case domain.KindQuest:
		q, err := s.resources.GetQuest(ctx, req.ResourceID)
		if err != nil {
			return nil, mapRepoErr(err)
		}
		if duration == 0 {
			duration = q.FixedDurationMin
		}
	default:
		return nil, ErrValidation
	}

	if duration <= 0 || duration%timegrid.SlotMinutes != 0 {
		return nil, ErrValidation
	}
	endMin := startMin + duration
	if endMin > timegrid.MinutesPerDay {
		return nil, ErrValidation
	}

	// the resource, not the request, decides which branch the booking and
	// the invalidation belong to
	branchID, err := s.resources.BranchOf(ctx, kind, req.ResourceID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if req.BranchID != branchID {
		return nil, ErrValidation
	}

	// the grid block is labeled with the client, not the resource
	clientName := req.ClientName
	if clientName == "" {
		clientName = domain.PlaceholderClientName
	}

	booking := &domain.Booking{
		BranchID:    branchID,
		EventDate:   date,
		ClientName:  clientName,
		ClientPhone: req.ClientPhone,
		Status:      domain.BookingDraft,
	}
	reservation := &domain.Reservation{
		Kind:              kind,
		ResourceID:        req.ResourceID,
		EventDate:         date,
		StartMin:          startMin,
		EndMin:            endMin,
		Status:            domain.ReservationDraft,
		CleaningBufferMin: buffer,
		Title:             clientName,
		Comment:           req.Comment,
	}

	err = s.store.Atomic(ctx, kind, req.ResourceID, func(tx repository.ScheduleTx) error {
		existing, err := tx.ListForResourceDate(ctx, kind, req.ResourceID, date)
		if err != nil {
			return err
		}
		if c := FindConflict(existing, startMin, endMin, 0); c != nil {
			return &SlotTakenError{Conflict: *c}
		}
		if err := tx.CreateBooking(ctx, booking); err != nil {
			return err
		}
		reservation.BookingID = booking.ID
		return tx.CreateReservation(ctx, reservation)
	})
	if err != nil {
		if repository.IsDoubleBooking(err) {
			return nil, &SlotTakenError{}
		}
		return nil, mapRepoErr(err)
	}

	s.afterMutation(ctx, kind, branchID, date)
	return &QuickBookResponse{Booking: *booking, Reservation: toView(reservation)}, nil
}

// Move re-validates and persists a changed time range (and optionally a
// changed resource) for an existing reservation, excluding the reservation
// itself from the overlap check. It serves drag-to-move, edge-resize and
// manual reschedule alike; on conflict nothing is mutated.
func (s *Service) Move(ctx context.Context, kind domain.ResourceKind, id int64, req MoveRequest) (*domain.Reservation, error) {
	startMin, endMin, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	current, err := s.store.GetReservation(ctx, kind, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if current.Status == domain.ReservationCanceled {
		return nil, ErrInvalidTransition
	}

	targetID := current.ResourceID
	if req.ResourceID != 0 {
		targetID = req.ResourceID
	}
	if targetID != current.ResourceID {
		if kind == domain.KindTable {
			if _, err := s.resources.GetTable(ctx, targetID); err != nil {
				return nil, mapRepoErr(err)
			}
		} else {
			if _, err := s.resources.GetQuest(ctx, targetID); err != nil {
				return nil, mapRepoErr(err)
			}
		}
	}

	var fresh *domain.Reservation
	err = s.store.Atomic(ctx, kind, targetID, func(tx repository.ScheduleTx) error {
		// re-read inside the lock so a concurrent move of the same
		// reservation cannot slip a stale interval past the check
		var err error
		fresh, err = tx.GetReservation(ctx, kind, id)
		if err != nil {
			return err
		}
		existing, err := tx.ListForResourceDate(ctx, kind, targetID, fresh.EventDate)
		if err != nil {
			return err
		}
		if c := FindConflict(existing, startMin, endMin, id); c != nil {
			return &SlotTakenError{Conflict: *c}
		}
		return tx.UpdateReservationSlot(ctx, kind, id, targetID, startMin, endMin)
	})
	if err != nil {
		if repository.IsDoubleBooking(err) {
			return nil, &SlotTakenError{}
		}
		return nil, mapRepoErr(err)
	}

	s.invalidateForResource(ctx, kind, fresh.ResourceID, fresh.EventDate)
	if targetID != fresh.ResourceID {
		s.invalidateForResource(ctx, kind, targetID, fresh.EventDate)
	}

	// echo the in-lock state, not the pre-transaction read; a concurrent
	// details or status edit must not be reverted in the response
	moved := *fresh
	moved.ResourceID = targetID
	moved.StartMin = startMin
	moved.EndMin = endMin
	return &moved, nil
}

// Cancel soft-cancels a reservation. The row is kept for history and stops
// blocking its slot immediately.
func (s *Service) Cancel(ctx context.Context, kind domain.ResourceKind, id int64) error {
	return s.UpdateStatus(ctx, kind, id, domain.ReservationCanceled)
}

// UpdateStatus applies a lifecycle transition, rejecting anything the state
// machine does not allow.
func (s *Service) UpdateStatus(ctx context.Context, kind domain.ResourceKind, id int64, next domain.ReservationStatus) error {
	current, err := s.store.GetReservation(ctx, kind, id)
	if err != nil {
		return mapRepoErr(err)
	}
	if !current.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	if err := s.store.UpdateReservationStatus(ctx, kind, id, next); err != nil {
		return mapRepoErr(err)
	}
	s.invalidateForResource(ctx, kind, current.ResourceID, current.EventDate)
	return nil
}

// CreateReservation attaches an explicitly timed reservation to an existing
// booking, through the same serialized overlap check as every other write.
func (s *Service) CreateReservation(ctx context.Context, kind domain.ResourceKind, req CreateReservationRequest) (*domain.Reservation, error) {
	date, err := timegrid.ParseDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	startMin, endMin, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	booking, err := s.store.GetBooking(ctx, req.BookingID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	buffer := 0
	animator := ""
	if kind == domain.KindTable {
		if _, err := s.resources.GetTable(ctx, req.ResourceID); err != nil {
			return nil, mapRepoErr(err)
		}
		buffer = domain.DefaultCleaningBufferMin
		if req.CleaningBufferMinutes != nil {
			if *req.CleaningBufferMinutes < 0 {
				return nil, ErrValidation
			}
			buffer = *req.CleaningBufferMinutes
		}
	} else {
		if _, err := s.resources.GetQuest(ctx, req.ResourceID); err != nil {
			return nil, mapRepoErr(err)
		}
		animator = req.AnimatorName
	}

	title := req.Title
	if title == "" {
		title = booking.ClientName
	}

	reservation := &domain.Reservation{
		Kind:              kind,
		ResourceID:        req.ResourceID,
		BookingID:         booking.ID,
		EventDate:         date,
		StartMin:          startMin,
		EndMin:            endMin,
		Status:            domain.ReservationDraft,
		CleaningBufferMin: buffer,
		Title:             title,
		Comment:           req.Comment,
		AnimatorName:      animator,
	}

	err = s.store.Atomic(ctx, kind, req.ResourceID, func(tx repository.ScheduleTx) error {
		existing, err := tx.ListForResourceDate(ctx, kind, req.ResourceID, date)
		if err != nil {
			return err
		}
		if c := FindConflict(existing, startMin, endMin, 0); c != nil {
			return &SlotTakenError{Conflict: *c}
		}
		return tx.CreateReservation(ctx, reservation)
	})
	if err != nil {
		if repository.IsDoubleBooking(err) {
			return nil, &SlotTakenError{}
		}
		return nil, mapRepoErr(err)
	}

	s.invalidateForResource(ctx, kind, req.ResourceID, date)
	return reservation, nil
}

func (s *Service) GetReservation(ctx context.Context, kind domain.ResourceKind, id int64) (*domain.Reservation, error) {
	r, err := s.store.GetReservation(ctx, kind, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return r, nil
}

func (s *Service) UpdateDetails(ctx context.Context, kind domain.ResourceKind, id int64, req UpdateDetailsRequest) (*domain.Reservation, error) {
	if err := s.store.UpdateReservationDetails(ctx, kind, id, req.Title, req.Comment, req.AnimatorName); err != nil {
		return nil, mapRepoErr(err)
	}
	r, err := s.store.GetReservation(ctx, kind, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidateForResource(ctx, kind, r.ResourceID, r.EventDate)
	return r, nil
}

func (s *Service) cacheSet(ctx context.Context, key string, view any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, raw)
}

func (s *Service) invalidateForResource(ctx context.Context, kind domain.ResourceKind, resourceID int64, date string) {
	if s.cache == nil && s.events == nil {
		return
	}
	branchID, err := s.resources.BranchOf(ctx, kind, resourceID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind":        kind,
			"resource_id": resourceID,
		}).Warn("branch lookup for invalidation failed")
		return
	}
	s.afterMutation(ctx, kind, branchID, date)
}

func (s *Service) afterMutation(ctx context.Context, kind domain.ResourceKind, branchID int64, date string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, dayKey(kind, branchID, date))
	}
	if s.events != nil {
		s.events.ScheduleChanged(kind, branchID, date)
	}
}

func mapRepoErr(err error) error {
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}
