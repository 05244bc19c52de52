package schedule

import (
	"context"

	"venueops/internal/domain"
	"venueops/internal/repository"
)

// ScheduleStore persists bookings and reservations. Atomic opens a section
// serialized per (kind, resource); every validate-then-write sequence runs
// inside it.
type ScheduleStore interface {
	repository.ScheduleTx
	Atomic(ctx context.Context, kind domain.ResourceKind, resourceID int64, fn func(tx repository.ScheduleTx) error) error
	ListForBranchDate(ctx context.Context, kind domain.ResourceKind, branchID int64, date string) ([]domain.Reservation, error)
	UpdateReservationDetails(ctx context.Context, kind domain.ResourceKind, id int64, title, comment, animator string) error
}

// ResourceDirectory is the narrow read-only catalog lookup the scheduling
// core consumes: display titles, capacities, fixed durations, branch
// resolution. Catalog management is owned elsewhere.
type ResourceDirectory interface {
	GetBranch(ctx context.Context, id int64) (*domain.Branch, error)
	GetTable(ctx context.Context, id int64) (*domain.TableResource, error)
	GetQuest(ctx context.Context, id int64) (*domain.QuestResource, error)
	ListZones(ctx context.Context, branchID int64) ([]domain.Zone, error)
	ListTables(ctx context.Context, branchID int64) ([]domain.TableResource, error)
	ListQuests(ctx context.Context, branchID int64) ([]domain.QuestResource, error)
	BranchOf(ctx context.Context, kind domain.ResourceKind, resourceID int64) (int64, error)
}

// DayCache caches marshaled day views. Implementations must tolerate being
// nil-configured out; the service treats a nil cache as a miss-everything
// cache.
type DayCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
	Invalidate(ctx context.Context, key string)
}

// EventSink is notified after a committed mutation so connected grid
// sessions can re-fetch the affected day.
type EventSink interface {
	ScheduleChanged(kind domain.ResourceKind, branchID int64, date string)
}
