package dto

import "time"

// AppointmentItem is the response representation of an appointment, carrying
// the display names of both participants.
type AppointmentItem struct {
	ID            uint      `json:"id"`
	PatientID     uint      `json:"patient_id"`
	PatientName   string    `json:"patient_name,omitempty"`
	DoctorID      uint      `json:"doctor_id"`
	DoctorName    string    `json:"doctor_name,omitempty"`
	Department    *string   `json:"department,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	Symptoms      string    `json:"symptoms"`
	Diagnosis     *string   `json:"diagnosis"`
	Prescription  *string   `json:"prescription"`
	DoctorOpinion *string   `json:"doctor_opinion"`
	Memo          *string   `json:"memo"`
	CreatedAt     time.Time `json:"created_at"`
}

// AppointmentCreateRequest books a new appointment. PatientID is only honoured
// for admins; patients always book for themselves.
type AppointmentCreateRequest struct {
	PatientID uint   `json:"patient_id"`
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required,datetime=15:04"`
	Symptoms  string `json:"symptoms" binding:"max=2000"`
}

// AppointmentChangeRequest reschedules an appointment.
type AppointmentChangeRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Time string `json:"time" binding:"required,datetime=15:04"`
}

// TreatmentUpdateRequest overwrites all clinical fields and the status.
type TreatmentUpdateRequest struct {
	Status        string  `json:"status" binding:"required,oneof=progress completed"`
	Memo          *string `json:"memo"`
	Diagnosis     *string `json:"diagnosis"`
	Prescription  *string `json:"prescription"`
	DoctorOpinion *string `json:"doctor_opinion"`
}

// DoctorDayQuery selects one doctor's schedule for one day.
type DoctorDayQuery struct {
	DoctorID uint   `form:"doctorId"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// AppointmentStats is derived from the same result set as the list.
type AppointmentStats struct {
	Total     int `json:"total"`
	Waiting   int `json:"waiting"`
	Progress  int `json:"progress"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// DoctorDayResponse is the doctor's daily view.
type DoctorDayResponse struct {
	Stats        AppointmentStats  `json:"stats"`
	Appointments []AppointmentItem `json:"appointments"`
}

// SlotQuery asks for slot availability.
type SlotQuery struct {
	DoctorID uint   `form:"doctorId" binding:"required"`
	Date     string `form:"date" binding:"required,datetime=2006-01-02"`
}

// Slot is one bookable time slot.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// SlotListResponse lists a doctor's slots for a day.
type SlotListResponse struct {
	DoctorID uint   `json:"doctor_id"`
	Date     string `json:"date"`
	Slots    []Slot `json:"slots"`
}

// AppointmentListResponse is the response for a patient's appointment list.
type AppointmentListResponse struct {
	Appointments []AppointmentItem `json:"appointments"`
}
