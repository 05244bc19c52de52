package repository

import (
	"time"

	"gorm.io/gorm"

	"venueops/internal/domain"
)

// SeedDemo fills an empty database with one branch, two zones of tables,
// two quests and a pair of sample reservations for today's date. Existing
// schedule data is wiped first, so this is for local development only.
func SeedDemo(db *gorm.DB) error {
	for _, table := range []string{"reservations", "bookings", "venue_tables", "zones", "quests", "branches"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	branch := branchModel{ID: 1, Title: "Central"}
	if err := db.Create(&branch).Error; err != nil {
		return err
	}

	zones := []zoneModel{
		{ID: 1, BranchID: 1, Title: "Main hall"},
		{ID: 2, BranchID: 1, Title: "VIP"},
	}
	if err := db.Create(&zones).Error; err != nil {
		return err
	}

	tables := []tableModel{
		{ID: 1, ZoneID: 1, Title: "T1", Capacity: 4},
		{ID: 2, ZoneID: 1, Title: "T2", Capacity: 6},
		{ID: 3, ZoneID: 2, Title: "V1", Capacity: 10},
	}
	if err := db.Create(&tables).Error; err != nil {
		return err
	}

	quests := []questModel{
		{ID: 1, BranchID: 1, Title: "Pirate Island", FixedDurationMin: 60},
		{ID: 2, BranchID: 1, Title: "Space Station", FixedDurationMin: 90},
	}
	if err := db.Create(&quests).Error; err != nil {
		return err
	}

	today := time.Now().Format("2006-01-02")
	now := time.Now()

	booking := bookingModel{
		ID:         1,
		BranchID:   1,
		EventDate:  today,
		ClientName: "Ivanov family",
		Status:     string(domain.BookingConfirmed),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.Create(&booking).Error; err != nil {
		return err
	}

	reservations := []reservationModel{
		{
			ResourceKind:      string(domain.KindTable),
			ResourceID:        1,
			BookingID:         1,
			EventDate:         today,
			StartMin:          12 * 60,
			EndMin:            14 * 60,
			Status:            string(domain.ReservationConfirmed),
			CleaningBufferMin: domain.DefaultCleaningBufferMin,
			Title:             "Ivanov family",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ResourceKind: string(domain.KindQuest),
			ResourceID:   1,
			BookingID:    1,
			EventDate:    today,
			StartMin:     13 * 60,
			EndMin:       14 * 60,
			Status:       string(domain.ReservationConfirmed),
			Title:        "Ivanov family",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	return db.Create(&reservations).Error
}
