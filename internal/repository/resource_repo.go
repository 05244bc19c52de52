package repository

import (
	"context"

	"gorm.io/gorm"

	"venueops/internal/domain"
)

type branchModel struct {
	ID    int64  `gorm:"column:id;primaryKey"`
	Title string `gorm:"column:title"`
}

func (branchModel) TableName() string { return "branches" }

type zoneModel struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	BranchID int64  `gorm:"column:branch_id;index"`
	Title    string `gorm:"column:title"`
}

func (zoneModel) TableName() string { return "zones" }

// "tables" would read terribly in raw SQL next to information_schema, hence
// venue_tables.
type tableModel struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	ZoneID   int64  `gorm:"column:zone_id;index"`
	Title    string `gorm:"column:title"`
	Capacity int    `gorm:"column:capacity"`
}

func (tableModel) TableName() string { return "venue_tables" }

type questModel struct {
	ID               int64  `gorm:"column:id;primaryKey"`
	BranchID         int64  `gorm:"column:branch_id;index"`
	Title            string `gorm:"column:title"`
	FixedDurationMin int    `gorm:"column:fixed_duration_min"`
}

func (questModel) TableName() string { return "quests" }

// ResourceRepository is the read-only view of the catalog the scheduling
// core is allowed: titles, zones, capacities and fixed durations. Catalog
// CRUD lives elsewhere.
type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) GetBranch(ctx context.Context, id int64) (*domain.Branch, error) {
	var m branchModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return &domain.Branch{ID: m.ID, Title: m.Title}, nil
}

func (r *ResourceRepository) GetTable(ctx context.Context, id int64) (*domain.TableResource, error) {
	var m tableModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return &domain.TableResource{ID: m.ID, ZoneID: m.ZoneID, Title: m.Title, Capacity: m.Capacity}, nil
}

func (r *ResourceRepository) GetQuest(ctx context.Context, id int64) (*domain.QuestResource, error) {
	var m questModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return &domain.QuestResource{ID: m.ID, BranchID: m.BranchID, Title: m.Title, FixedDurationMin: m.FixedDurationMin}, nil
}

func (r *ResourceRepository) ListZones(ctx context.Context, branchID int64) ([]domain.Zone, error) {
	var ms []zoneModel
	tx := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Zone, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.Zone{ID: m.ID, BranchID: m.BranchID, Title: m.Title})
	}
	return out, nil
}

func (r *ResourceRepository) ListTables(ctx context.Context, branchID int64) ([]domain.TableResource, error) {
	var ms []tableModel
	tx := r.db.WithContext(ctx).Raw(`
SELECT t.* FROM venue_tables t
JOIN zones z ON z.id = t.zone_id
WHERE z.branch_id = ?
ORDER BY t.zone_id, t.id
`, branchID).Scan(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.TableResource, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.TableResource{ID: m.ID, ZoneID: m.ZoneID, Title: m.Title, Capacity: m.Capacity})
	}
	return out, nil
}

func (r *ResourceRepository) ListQuests(ctx context.Context, branchID int64) ([]domain.QuestResource, error) {
	var ms []questModel
	tx := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.QuestResource, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.QuestResource{ID: m.ID, BranchID: m.BranchID, Title: m.Title, FixedDurationMin: m.FixedDurationMin})
	}
	return out, nil
}

// BranchOf resolves the branch a resource belongs to, used for cache
// invalidation and live update fan-out after a mutation.
func (r *ResourceRepository) BranchOf(ctx context.Context, kind domain.ResourceKind, resourceID int64) (int64, error) {
	var branchID int64
	var tx *gorm.DB
	if kind == domain.KindTable {
		tx = r.db.WithContext(ctx).Raw(`
SELECT z.branch_id FROM venue_tables t
JOIN zones z ON z.id = t.zone_id
WHERE t.id = ?
`, resourceID).Scan(&branchID)
	} else {
		tx = r.db.WithContext(ctx).Raw(`SELECT branch_id FROM quests WHERE id = ?`, resourceID).Scan(&branchID)
	}
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return branchID, nil
}
