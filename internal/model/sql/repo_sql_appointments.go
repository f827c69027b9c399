package sql

import (
	"context"
	"fmt"
	"hospital/internal/entity"
	"hospital/internal/entity/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// date and time are keywords in several dialects, so ordering goes through
// clause.Column to get them quoted.
var (
	orderDateDescTimeAsc = clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Table: clause.CurrentTable, Name: "date"}, Desc: true},
		{Column: clause.Column{Table: clause.CurrentTable, Name: "time"}},
		{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}},
	}}
	orderTimeAsc = clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Table: clause.CurrentTable, Name: "time"}},
		{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}},
	}}
)

// CreateAppointment inserts the appointment after checking, inside the same
// transaction, that the doctor has no other live booking in that slot.
func (r *GormRepository) CreateAppointment(ctx context.Context, appointment *db.Appointment) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if appointment == nil {
		return fmt.Errorf("appointment is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSlotFree(tx, appointment.DoctorID, appointment.Date, appointment.Time, 0); err != nil {
			return err
		}
		return tx.Create(appointment).Error
	})
}

// GetAppointment loads an appointment with both participants.
func (r *GormRepository) GetAppointment(ctx context.Context, id uint) (*db.Appointment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid appointment id")
	}
	var appointment db.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListPatientAppointments returns a patient's appointments, newest date first
// and earliest time first within a day.
func (r *GormRepository) ListPatientAppointments(ctx context.Context, patientID uint) ([]db.Appointment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var records []db.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order(orderDateDescTimeAsc).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListDoctorAppointments returns a doctor's appointments for one date ordered by time.
func (r *GormRepository) ListDoctorAppointments(ctx context.Context, doctorID uint, date string) ([]db.Appointment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var records []db.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where(map[string]interface{}{"doctor_id": doctorID, "date": date}).
		Order(orderTimeAsc).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateAppointmentStatus moves the appointment from one status to another.
// The row is locked and re-checked, so a concurrent change surfaces as
// entity.ErrStatusChanged instead of being overwritten.
func (r *GormRepository) UpdateAppointmentStatus(ctx context.Context, id uint, from, to string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid appointment id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockAppointment(tx, id, from); err != nil {
			return err
		}
		result := tx.Model(&db.Appointment{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrStatusChanged
		}
		return nil
	})
}

// RescheduleAppointment overwrites date and time of a waiting appointment,
// rejecting a slot the doctor already holds.
func (r *GormRepository) RescheduleAppointment(ctx context.Context, id uint, date, time string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid appointment id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockAppointment(tx, id, db.AppointmentStatusWaiting)
		if err != nil {
			return err
		}
		if err := ensureSlotFree(tx, current.DoctorID, date, time, id); err != nil {
			return err
		}
		return tx.Model(&db.Appointment{}).
			Where("id = ? AND status = ?", id, db.AppointmentStatusWaiting).
			Updates(map[string]interface{}{"date": date, "time": time}).Error
	})
}

// UpdateTreatment overwrites every clinical field plus the status, provided
// the appointment is still in the status the caller validated against.
func (r *GormRepository) UpdateTreatment(ctx context.Context, id uint, from string, updates entity.TreatmentUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid appointment id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockAppointment(tx, id, from); err != nil {
			return err
		}
		return tx.Model(&db.Appointment{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates.ToMap()).Error
	})
}

// ListBookedTimes returns the times a doctor already holds on a date,
// ignoring cancelled appointments.
func (r *GormRepository) ListBookedTimes(ctx context.Context, doctorID uint, date string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var times []string
	err := r.db.WithContext(ctx).
		Model(&db.Appointment{}).
		Where(map[string]interface{}{"doctor_id": doctorID, "date": date}).
		Where("status <> ?", db.AppointmentStatusCancelled).
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// lockAppointment 加行锁读取预约，并确认状态仍是 expected
func lockAppointment(tx *gorm.DB, id uint, expected string) (*db.Appointment, error) {
	var current db.Appointment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "doctor_id", "status").
		First(&current, id).Error
	if err != nil {
		return nil, err
	}
	if current.Status != expected {
		return nil, entity.ErrStatusChanged
	}
	return &current, nil
}

// ensureSlotFree 先锁住医生行，使同一医生的并发预约串行化，再检查号源
func ensureSlotFree(tx *gorm.DB, doctorID uint, date, time string, excludeID uint) error {
	var doctor db.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&doctor, doctorID).Error; err != nil {
		return err
	}

	query := tx.Model(&db.Appointment{}).
		Where(map[string]interface{}{"doctor_id": doctorID, "date": date, "time": time}).
		Where("status <> ?", db.AppointmentStatusCancelled)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return entity.ErrSlotTaken
	}
	return nil
}
