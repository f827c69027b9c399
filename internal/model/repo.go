package model

import (
	"context"
	"hospital/internal/entity"
	"hospital/internal/entity/db"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *db.User) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByUsername(ctx context.Context, username string) (*db.User, error)
	GetUserByID(ctx context.Context, id uint) (*db.User, error)
	ListUsers(ctx context.Context) ([]db.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]db.User, error)
	SearchPatients(ctx context.Context, keyword string) ([]db.User, error)
	DeleteUser(ctx context.Context, id uint) error
	CountAppointmentsForUser(ctx context.Context, userID uint) (int64, error)

	// 预约
	CreateAppointment(ctx context.Context, appointment *db.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*db.Appointment, error)
	ListPatientAppointments(ctx context.Context, patientID uint) ([]db.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID uint, date string) ([]db.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uint, from, to string) error
	RescheduleAppointment(ctx context.Context, id uint, date, time string) error
	UpdateTreatment(ctx context.Context, id uint, from string, updates entity.TreatmentUpdates) error
	ListBookedTimes(ctx context.Context, doctorID uint, date string) ([]string, error)

	// 公告板
	CreatePost(ctx context.Context, post *db.Post) error
	GetPost(ctx context.Context, id uint) (*db.Post, error)
	ListPosts(ctx context.Context) ([]db.Post, error)
	UpdatePost(ctx context.Context, id uint, updates entity.PostUpdates) error
	DeletePost(ctx context.Context, id uint) error

	// 连接生命周期
	Ping(ctx context.Context) error
	Close() error
}
