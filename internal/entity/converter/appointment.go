package converter

import (
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
)

// AppointmentToItem converts a db.Appointment (with optional preloaded
// participants) to dto.AppointmentItem.
func AppointmentToItem(a *db.Appointment) dto.AppointmentItem {
	if a == nil {
		return dto.AppointmentItem{}
	}
	item := dto.AppointmentItem{
		ID:            a.ID,
		PatientID:     a.PatientID,
		DoctorID:      a.DoctorID,
		Date:          a.Date,
		Time:          a.Time,
		Status:        a.Status,
		Symptoms:      a.Symptoms,
		Diagnosis:     a.Diagnosis,
		Prescription:  a.Prescription,
		DoctorOpinion: a.DoctorOpinion,
		Memo:          a.Memo,
		CreatedAt:     a.CreatedAt,
	}
	if a.Patient != nil {
		item.PatientName = a.Patient.Name
	}
	if a.Doctor != nil {
		item.DoctorName = a.Doctor.Name
		item.Department = a.Doctor.Department
	}
	return item
}

// AppointmentsToItems converts a slice of db.Appointment.
func AppointmentsToItems(records []db.Appointment) []dto.AppointmentItem {
	items := make([]dto.AppointmentItem, len(records))
	for i := range records {
		items[i] = AppointmentToItem(&records[i])
	}
	return items
}

// CountAppointmentStats derives the day statistics from an already loaded list.
func CountAppointmentStats(records []db.Appointment) dto.AppointmentStats {
	stats := dto.AppointmentStats{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case db.AppointmentStatusWaiting:
			stats.Waiting++
		case db.AppointmentStatusProgress:
			stats.Progress++
		case db.AppointmentStatusCompleted:
			stats.Completed++
		case db.AppointmentStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}
