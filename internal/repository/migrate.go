package repository

import "gorm.io/gorm"

// Migrate creates the schedule schema. On postgres it also installs the
// no_double_booking exclusion constraint: two non-canceled reservations on
// one resource-day may never have overlapping effective intervals
// [start_min, end_min + cleaning_buffer_min). The application validates the
// same rule inside its serialized section; the constraint is the backstop.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&branchModel{},
		&zoneModel{},
		&tableModel{},
		&questModel{},
		&bookingModel{},
		&reservationModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	var cnt int64
	if err := db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = 'no_double_booking'`).Scan(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		err := db.Exec(`
ALTER TABLE reservations ADD CONSTRAINT no_double_booking
EXCLUDE USING gist (
    resource_kind WITH =,
    resource_id WITH =,
    event_date WITH =,
    int4range(start_min, end_min + cleaning_buffer_min) WITH &&
) WHERE (status <> 'canceled')
`).Error
		if err != nil {
			return err
		}
	}

	// Deleting a booking takes its reservations with it. This is the only
	// hard-delete path for reservations; cancellation is a status change.
	var fkCnt int64
	if err := db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = 'fk_reservations_booking'`).Scan(&fkCnt).Error; err != nil {
		return err
	}
	if fkCnt == 0 {
		err := db.Exec(`
ALTER TABLE reservations ADD CONSTRAINT fk_reservations_booking
FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE CASCADE
`).Error
		if err != nil {
			return err
		}
	}
	return nil
}
