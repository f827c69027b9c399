package service

import (
	"context"
	"errors"
	"fmt"
	"hospital/internal/entity"
	"hospital/internal/entity/converter"
	"hospital/internal/entity/db"
	"hospital/internal/entity/dto"
	"hospital/internal/model"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// slotCatalogue 上午 09:00-12:00、下午 14:00-17:00，每 30 分钟一个号
var slotCatalogue = buildSlotCatalogue()

func buildSlotCatalogue() []string {
	var slots []string
	for _, span := range [][2]int{{9, 12}, {14, 17}} {
		for hour := span[0]; hour < span[1]; hour++ {
			slots = append(slots, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
		}
		slots = append(slots, fmt.Sprintf("%02d:00", span[1]))
	}
	return slots
}

// BookingService 封装预约的创建、改期、取消以及医生端的诊疗流程
type BookingService struct {
	repo model.Repository
	now  func() time.Time
}

// NewBookingService 创建预约服务实例
func NewBookingService(repo model.Repository) *BookingService {
	return &BookingService{repo: repo, now: time.Now}
}

// DoctorSchedule 是医生某一天的预约列表及统计
type DoctorSchedule struct {
	DoctorID     uint
	Date         string
	Appointments []db.Appointment
	Stats        dto.AppointmentStats
}

// Create 预约挂号。患者只能为自己预约，管理员需显式指定 patient_id。
func (s *BookingService) Create(ctx context.Context, actor Actor, req dto.AppointmentCreateRequest) (*db.Appointment, error) {
	var patientID uint
	switch {
	case actor.IsAdmin():
		patientID = req.PatientID
		if patientID == 0 {
			return nil, invalidInput("patient_id is required")
		}
	case actor.is(db.UserRolePatient):
		if req.PatientID != 0 && req.PatientID != actor.ID {
			return nil, ErrForbidden
		}
		patientID = actor.ID
	default:
		return nil, ErrForbidden
	}

	date, slot, err := normalizeSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, patientID, db.UserRolePatient); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, req.DoctorID, db.UserRoleDoctor); err != nil {
		return nil, err
	}

	appointment := &db.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      slot,
		Status:    db.AppointmentStatusWaiting,
		Symptoms:  strings.TrimSpace(req.Symptoms),
	}
	if err := s.repo.CreateAppointment(ctx, appointment); err != nil {
		if errors.Is(err, entity.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"patient_id":     patientID,
		"doctor_id":      req.DoctorID,
	}).Info("appointment created")
	return s.load(ctx, appointment.ID)
}

// ListForPatient 返回患者的全部预约，日期倒序、同日按时间正序
func (s *BookingService) ListForPatient(ctx context.Context, actor Actor, patientID uint) ([]db.Appointment, error) {
	if !actor.IsAdmin() && !(actor.is(db.UserRolePatient) && actor.ID == patientID) {
		return nil, ErrForbidden
	}
	return s.repo.ListPatientAppointments(ctx, patientID)
}

// Cancel 取消预约（软删除）。已取消的预约再次取消直接成功。
func (s *BookingService) Cancel(ctx context.Context, actor Actor, id uint) (*db.Appointment, error) {
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownsAppointment(actor, appointment) {
		return nil, ErrForbidden
	}
	if appointment.Status == db.AppointmentStatusCancelled {
		return appointment, nil
	}
	if !db.CanTransition(appointment.Status, db.AppointmentStatusCancelled) {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.UpdateAppointmentStatus(ctx, id, appointment.Status, db.AppointmentStatusCancelled); err != nil {
		if errors.Is(err, entity.ErrStatusChanged) {
			// 并发取消视为成功，其余并发变更按非法状态处理
			if latest, loadErr := s.load(ctx, id); loadErr == nil && latest.Status == db.AppointmentStatusCancelled {
				return latest, nil
			}
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	logrus.WithFields(logrus.Fields{"appointment_id": id, "actor_id": actor.ID}).Info("appointment cancelled")
	return s.load(ctx, id)
}

// Reschedule 只改写日期和时间，其余字段保持不变；仅限候诊状态
func (s *BookingService) Reschedule(ctx context.Context, actor Actor, id uint, req dto.AppointmentChangeRequest) (*db.Appointment, error) {
	date, slot, err := normalizeSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownsAppointment(actor, appointment) {
		return nil, ErrForbidden
	}
	if appointment.Status != db.AppointmentStatusWaiting {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.RescheduleAppointment(ctx, id, date, slot); err != nil {
		switch {
		case errors.Is(err, entity.ErrSlotTaken):
			return nil, ErrSlotTaken
		case errors.Is(err, entity.ErrStatusChanged):
			return nil, ErrInvalidTransition
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("reschedule appointment: %w", err)
	}
	logrus.WithFields(logrus.Fields{"appointment_id": id, "actor_id": actor.ID}).Info("appointment rescheduled")
	return s.load(ctx, id)
}

// DoctorDay 返回医生某天的预约和统计；doctorID 为 0 时取当前医生，date 为空时取今天
func (s *BookingService) DoctorDay(ctx context.Context, actor Actor, doctorID uint, date string) (*DoctorSchedule, error) {
	if doctorID == 0 {
		doctorID = actor.ID
	}
	switch {
	case actor.IsAdmin():
		if _, err := s.requireRole(ctx, doctorID, db.UserRoleDoctor); err != nil {
			return nil, err
		}
	case actor.is(db.UserRoleDoctor):
		if doctorID != actor.ID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if strings.TrimSpace(date) == "" {
		date = s.now().Format(db.DateLayout)
	} else {
		parsed, err := time.Parse(db.DateLayout, strings.TrimSpace(date))
		if err != nil {
			return nil, invalidInput("date must be formatted as YYYY-MM-DD")
		}
		date = parsed.Format(db.DateLayout)
	}

	records, err := s.repo.ListDoctorAppointments(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}
	return &DoctorSchedule{
		DoctorID:     doctorID,
		Date:         date,
		Appointments: records,
		Stats:        converter.CountAppointmentStats(records),
	}, nil
}

// UpdateTreatment 医生保存诊疗记录，整体覆盖临床字段并推进状态
func (s *BookingService) UpdateTreatment(ctx context.Context, actor Actor, id uint, req dto.TreatmentUpdateRequest) (*db.Appointment, error) {
	if req.Status != db.AppointmentStatusProgress && req.Status != db.AppointmentStatusCompleted {
		return nil, invalidInput("status must be progress or completed")
	}
	appointment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !(actor.is(db.UserRoleDoctor) && appointment.DoctorID == actor.ID) {
		return nil, ErrForbidden
	}
	if !db.CanTransition(appointment.Status, req.Status) {
		return nil, ErrInvalidTransition
	}

	updates := entity.TreatmentUpdates{
		Status:        req.Status,
		Memo:          req.Memo,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		DoctorOpinion: req.DoctorOpinion,
	}
	if err := s.repo.UpdateTreatment(ctx, id, appointment.Status, updates); err != nil {
		if errors.Is(err, entity.ErrStatusChanged) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("update treatment: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"appointment_id": id,
		"actor_id":       actor.ID,
		"status":         req.Status,
	}).Info("treatment updated")
	return s.load(ctx, id)
}

// SearchPatients 按姓名或用户名模糊搜索患者，关键字为空时返回全部患者
func (s *BookingService) SearchPatients(ctx context.Context, actor Actor, keyword string) ([]db.User, error) {
	if !actor.IsAdmin() && !actor.is(db.UserRoleDoctor) {
		return nil, ErrForbidden
	}
	return s.repo.SearchPatients(ctx, keyword)
}

// PatientDetail 返回患者资料和全部就诊历史
func (s *BookingService) PatientDetail(ctx context.Context, actor Actor, patientID uint) (*db.User, []db.Appointment, error) {
	if !actor.IsAdmin() && !actor.is(db.UserRoleDoctor) {
		return nil, nil, ErrForbidden
	}
	patient, err := s.requireRole(ctx, patientID, db.UserRolePatient)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.repo.ListPatientAppointments(ctx, patientID)
	if err != nil {
		return nil, nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return patient, history, nil
}

// Slots 返回医生某天每个号源是否可约
func (s *BookingService) Slots(ctx context.Context, doctorID uint, date string) ([]dto.Slot, error) {
	parsed, err := time.Parse(db.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, invalidInput("date must be formatted as YYYY-MM-DD")
	}
	if _, err := s.requireRole(ctx, doctorID, db.UserRoleDoctor); err != nil {
		return nil, err
	}
	booked, err := s.repo.ListBookedTimes(ctx, doctorID, parsed.Format(db.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list booked times: %w", err)
	}
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}
	slots := make([]dto.Slot, len(slotCatalogue))
	for i, t := range slotCatalogue {
		_, isTaken := taken[t]
		slots[i] = dto.Slot{Time: t, Available: !isTaken}
	}
	return slots, nil
}

func (s *BookingService) load(ctx context.Context, id uint) (*db.Appointment, error) {
	appointment, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	return appointment, nil
}

// requireRole 加载用户并确认角色；不存在或角色不符都视为找不到
func (s *BookingService) requireRole(ctx context.Context, id uint, role string) (*db.User, error) {
	if id == 0 {
		return nil, invalidInput("%s id is required", role)
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.Role != role {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func ownsAppointment(actor Actor, appointment *db.Appointment) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.is(db.UserRolePatient) && appointment.PatientID == actor.ID
}

// normalizeSlot 校验日期与时间，并统一为 YYYY-MM-DD 与 HH:MM（分钟只能是 00 或 30）
func normalizeSlot(date, clock string) (string, string, error) {
	parsedDate, err := time.Parse(db.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", "", invalidInput("date must be formatted as YYYY-MM-DD")
	}
	parsedTime, err := time.Parse(db.TimeLayout, strings.TrimSpace(clock))
	if err != nil {
		return "", "", invalidInput("time must be formatted as HH:MM")
	}
	if m := parsedTime.Minute(); m != 0 && m != 30 {
		return "", "", invalidInput("time must fall on a 30 minute boundary")
	}
	return parsedDate.Format(db.DateLayout), parsedTime.Format(db.TimeLayout), nil
}
