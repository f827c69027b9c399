package converter

import (
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
)

// UserToSummary converts a db.User to dto.UserSummary.
func UserToSummary(u *db.User) dto.UserSummary {
	if u == nil {
		return dto.UserSummary{}
	}
	return dto.UserSummary{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		Name:       u.Name,
		Department: u.Department,
		Birth:      u.Birth,
		Gender:     u.Gender,
		CreatedAt:  u.CreatedAt,
	}
}

// UsersToSummaries converts a slice of db.User to dto.UserSummary.
func UsersToSummaries(users []db.User) []dto.UserSummary {
	summaries := make([]dto.UserSummary, len(users))
	for i := range users {
		summaries[i] = UserToSummary(&users[i])
	}
	return summaries
}

// UsersToDoctors projects doctors to id/username/name/department.
func UsersToDoctors(users []db.User) []dto.DoctorSummary {
	doctors := make([]dto.DoctorSummary, len(users))
	for i, u := range users {
		doctors[i] = dto.DoctorSummary{
			ID:         u.ID,
			Username:   u.Username,
			Name:       u.Name,
			Department: u.Department,
		}
	}
	return doctors
}

// UserToPatient drops role and credentials.
func UserToPatient(u *db.User) dto.PatientSummary {
	if u == nil {
		return dto.PatientSummary{}
	}
	return dto.PatientSummary{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Birth:     u.Birth,
		Gender:    u.Gender,
		CreatedAt: u.CreatedAt,
	}
}

// UsersToPatients converts a slice of db.User to dto.PatientSummary.
func UsersToPatients(users []db.User) []dto.PatientSummary {
	patients := make([]dto.PatientSummary, len(users))
	for i := range users {
		patients[i] = UserToPatient(&users[i])
	}
	return patients
}
