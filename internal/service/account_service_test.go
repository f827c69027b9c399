package service

import (
	"context"
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRegisterAndLogin(t *testing.T) {
	repo := newTestRepo(t)
	accounts := newTestAccounts(t, repo)
	ctx := context.Background()

	patient, err := accounts.Register(ctx, dto.AuthRegisterRequest{
		Username:   "alice",
		Password:   "pw1234",
		Role:       db.UserRolePatient,
		Name:       "Alice",
		Department: strPtr("내과"),
		Birth:      strPtr("1990-04-01"),
	})
	require.NoError(t, err)
	assert.Nil(t, patient.Department, "non-doctors never keep a department")
	assert.NotEqual(t, "pw1234", patient.PasswordHash)
	require.NotNil(t, patient.Birth)
	assert.Equal(t, "1990-04-01", *patient.Birth)

	doctor, err := accounts.Register(ctx, dto.AuthRegisterRequest{
		Username: "drbob", Password: "pw1234", Role: db.UserRoleDoctor, Name: "Bob", Department: strPtr("내과"),
	})
	require.NoError(t, err)
	require.NotNil(t, doctor.Department)
	assert.Equal(t, "내과", *doctor.Department)

	session, err := accounts.Login(ctx, "alice", "pw1234")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, patient.ID, session.User.ID)
	assert.Equal(t, db.UserRolePatient, session.User.Role)

	_, err = accounts.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = accounts.Login(ctx, "nobody", "pw1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = accounts.Login(ctx, "ALICE", "pw1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "usernames are matched exactly")

	_, err = accounts.Register(ctx, dto.AuthRegisterRequest{Username: "alice", Password: "pw1234", Role: db.UserRolePatient, Name: "Other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = accounts.Register(ctx, dto.AuthRegisterRequest{Username: "mallory", Password: "pw1234", Role: db.UserRoleAdmin, Name: "Mallory"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListDoctorsOrderedByName(t *testing.T) {
	repo := newTestRepo(t)
	accounts := newTestAccounts(t, repo)
	ctx := context.Background()

	for _, req := range []dto.AuthRegisterRequest{
		{Username: "drz", Password: "pw1234", Role: db.UserRoleDoctor, Name: "Zed"},
		{Username: "dra", Password: "pw1234", Role: db.UserRoleDoctor, Name: "Amy"},
		{Username: "pat", Password: "pw1234", Role: db.UserRolePatient, Name: "Pat"},
	} {
		_, err := accounts.Register(ctx, req)
		require.NoError(t, err)
	}

	doctors, err := accounts.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "Amy", doctors[0].Name)
	assert.Equal(t, "Zed", doctors[1].Name)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := actorOf(f.admin)

	updated, err := f.accounts.UpdateUser(ctx, admin, f.doctor.ID, dto.UserUpdateRequest{Role: strPtr(db.UserRolePatient)})
	require.NoError(t, err)
	assert.Equal(t, db.UserRolePatient, updated.Role)
	assert.Nil(t, updated.Department, "department is cleared once the user is no longer a doctor")

	updated, err = f.accounts.UpdateUser(ctx, admin, f.patient.ID, dto.UserUpdateRequest{
		Name:     strPtr("Alice Kim"),
		Password: strPtr("newpass"),
		Gender:   strPtr("F"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Kim", updated.Name)
	require.NotNil(t, updated.Gender)
	assert.Equal(t, "F", *updated.Gender)

	_, err = f.accounts.Login(ctx, "alice", "pw1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.accounts.Login(ctx, "alice", "newpass")
	assert.NoError(t, err)

	_, err = f.accounts.UpdateUser(ctx, admin, f.patient.ID, dto.UserUpdateRequest{Username: strPtr("carol")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.accounts.UpdateUser(ctx, admin, f.admin.ID, dto.UserUpdateRequest{Role: strPtr(db.UserRolePatient)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.accounts.UpdateUser(ctx, actorOf(f.patient), f.other.ID, dto.UserUpdateRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.accounts.UpdateUser(ctx, admin, 9999, dto.UserUpdateRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := actorOf(f.admin)

	_, err := f.booking.Create(ctx, actorOf(f.patient), dto.AppointmentCreateRequest{
		DoctorID: f.doctor.ID, Date: "2025-03-10", Time: "09:00", Symptoms: "fever",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.accounts.DeleteUser(ctx, admin, f.admin.ID), ErrInvalidInput)
	assert.ErrorIs(t, f.accounts.DeleteUser(ctx, admin, f.patient.ID), ErrUserInUse)
	assert.ErrorIs(t, f.accounts.DeleteUser(ctx, admin, f.doctor.ID), ErrUserInUse)
	assert.ErrorIs(t, f.accounts.DeleteUser(ctx, actorOf(f.patient), f.other.ID), ErrForbidden)

	require.NoError(t, f.accounts.DeleteUser(ctx, admin, f.other.ID))
	assert.ErrorIs(t, f.accounts.DeleteUser(ctx, admin, f.other.ID), ErrUserNotFound)

	users, err := f.accounts.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUsernameIsStoredAsGiven(t *testing.T) {
	repo := newTestRepo(t)
	accounts := newTestAccounts(t, repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
	}{
		{name: "首尾空格", username: " dave "},
		{name: "尾部空格", username: "dave "},
		{name: "制表符", username: "\tdave"},
		{name: "全是空白", username: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounts.Register(ctx, dto.AuthRegisterRequest{
				Username: tt.username, Password: "pw1234", Role: db.UserRolePatient, Name: "Dave",
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	registered, err := accounts.Register(ctx, dto.AuthRegisterRequest{
		Username: "dave", Password: "pw1234", Role: db.UserRolePatient, Name: "Dave",
	})
	require.NoError(t, err)
	session, err := accounts.Login(ctx, "dave", "pw1234")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, session.User.ID)
}

func TestRoleChangeBlockedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := actorOf(f.admin)

	_, err := f.booking.Create(ctx, actorOf(f.patient), dto.AppointmentCreateRequest{
		DoctorID: f.doctor.ID, Date: "2025-03-10", Time: "09:00",
	})
	require.NoError(t, err)

	_, err = f.accounts.UpdateUser(ctx, admin, f.doctor.ID, dto.UserUpdateRequest{Role: strPtr(db.UserRolePatient)})
	assert.ErrorIs(t, err, ErrUserInUse)
	_, err = f.accounts.UpdateUser(ctx, admin, f.patient.ID, dto.UserUpdateRequest{Role: strPtr(db.UserRoleDoctor)})
	assert.ErrorIs(t, err, ErrUserInUse)

	doctor, err := f.accounts.GetUser(ctx, f.doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, db.UserRoleDoctor, doctor.Role)
	require.NotNil(t, doctor.Department)

	// 其他字段仍可修改，同角色写入不算角色变更
	renamed, err := f.accounts.UpdateUser(ctx, admin, f.doctor.ID, dto.UserUpdateRequest{
		Name: strPtr("Dr. Bob"), Role: strPtr(db.UserRoleDoctor),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Bob", renamed.Name)

	schedule, err := f.booking.DoctorDay(ctx, actorOf(f.doctor), 0, "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, schedule.Appointments, 1)

	_, err = f.accounts.UpdateUser(ctx, admin, f.patient.ID, dto.UserUpdateRequest{Username: strPtr(" alice2")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
