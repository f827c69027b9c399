package dto

import "time"

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	Department *string   `json:"department"`
	Birth      *string   `json:"birth"`
	Gender     *string   `json:"gender"`
	CreatedAt  time.Time `json:"created_at"`
}

// DoctorSummary is the projection used by the doctor picker.
type DoctorSummary struct {
	ID         uint    `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
}

// PatientSummary omits role and credentials; used by doctor-side lookups.
type PatientSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Birth     *string   `json:"birth"`
	Gender    *string   `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}

// UserCreateRequest is the payload for an admin creating a user.
type UserCreateRequest struct {
	Username   string  `json:"username" binding:"required,max=64"`
	Password   string  `json:"password" binding:"required,min=4,max=72"`
	Role       string  `json:"role" binding:"required,oneof=patient doctor admin"`
	Name       string  `json:"name" binding:"required,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Birth      *string `json:"birth" binding:"omitempty,datetime=2006-01-02"`
	Gender     *string `json:"gender" binding:"omitempty,max=16"`
}

// UserUpdateRequest is the payload for an admin updating a user.
type UserUpdateRequest struct {
	Username   *string `json:"username,omitempty" binding:"omitempty,min=1,max=64"`
	Password   *string `json:"password,omitempty" binding:"omitempty,min=4,max=72"`
	Role       *string `json:"role,omitempty" binding:"omitempty,oneof=patient doctor admin"`
	Name       *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Department *string `json:"department,omitempty" binding:"omitempty,max=100"`
	Birth      *string `json:"birth,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Gender     *string `json:"gender,omitempty" binding:"omitempty,max=16"`
}

// UserListResponse is the response for listing users.
type UserListResponse struct {
	Users []UserSummary `json:"users"`
}

// PatientDetailResponse bundles a patient's profile with their visit history.
type PatientDetailResponse struct {
	Info    PatientSummary    `json:"info"`
	History []AppointmentItem `json:"history"`
}

// DoctorListResponse is the response for listing doctors.
type DoctorListResponse struct {
	Doctors []DoctorSummary `json:"doctors"`
}

// PatientListResponse is the response for a patient search.
type PatientListResponse struct {
	Patients []PatientSummary `json:"patients"`
}
