package api

import (
	"context"
	"hospital/internal/entity/converter"
	"hospital/internal/entity/dto"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateAppointment 预约挂号，状态固定为 waiting
func (h *HTTPHandler) CreateAppointment(c *gin.Context) {
	var req dto.AppointmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	appointment, err := h.booking.Create(ctx, CurrentUser(c).Actor(), req)
	if err != nil {
		ServiceError(c, err, "create appointment")
		return
	}
	c.JSON(http.StatusCreated, converter.AppointmentToItem(appointment))
}

// ListAppointmentSlots 查询医生某天的号源
func (h *HTTPHandler) ListAppointmentSlots(c *gin.Context) {
	var query dto.SlotQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	slots, err := h.booking.Slots(ctx, query.DoctorID, query.Date)
	if err != nil {
		ServiceError(c, err, "load slots")
		return
	}
	c.JSON(http.StatusOK, dto.SlotListResponse{DoctorID: query.DoctorID, Date: query.Date, Slots: slots})
}

// ListPatientAppointments 患者的预约列表，附带医生姓名与科室
func (h *HTTPHandler) ListPatientAppointments(c *gin.Context) {
	patientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	records, err := h.booking.ListForPatient(ctx, CurrentUser(c).Actor(), patientID)
	if err != nil {
		ServiceError(c, err, "load appointments")
		return
	}
	c.JSON(http.StatusOK, dto.AppointmentListResponse{Appointments: converter.AppointmentsToItems(records)})
}

// CancelAppointment 取消预约，已取消的再次取消直接返回
func (h *HTTPHandler) CancelAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	appointment, err := h.booking.Cancel(ctx, CurrentUser(c).Actor(), id)
	if err != nil {
		ServiceError(c, err, "cancel appointment")
		return
	}
	c.JSON(http.StatusOK, converter.AppointmentToItem(appointment))
}

// ChangeAppointment 改期，只修改日期和时间
func (h *HTTPHandler) ChangeAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AppointmentChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	appointment, err := h.booking.Reschedule(ctx, CurrentUser(c).Actor(), id, req)
	if err != nil {
		ServiceError(c, err, "reschedule appointment")
		return
	}
	c.JSON(http.StatusOK, converter.AppointmentToItem(appointment))
}

// UpdateTreatment 医生保存诊疗记录
func (h *HTTPHandler) UpdateTreatment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TreatmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	appointment, err := h.booking.UpdateTreatment(ctx, CurrentUser(c).Actor(), id, req)
	if err != nil {
		ServiceError(c, err, "update treatment")
		return
	}
	c.JSON(http.StatusOK, converter.AppointmentToItem(appointment))
}

// DoctorAppointments 医生当日视图：预约列表及统计
func (h *HTTPHandler) DoctorAppointments(c *gin.Context) {
	var query dto.DoctorDayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BindingError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	schedule, err := h.booking.DoctorDay(ctx, CurrentUser(c).Actor(), query.DoctorID, query.Date)
	if err != nil {
		ServiceError(c, err, "load doctor appointments")
		return
	}
	c.JSON(http.StatusOK, dto.DoctorDayResponse{
		Stats:        schedule.Stats,
		Appointments: converter.AppointmentsToItems(schedule.Appointments),
	})
}

// SearchPatients 按姓名或用户名搜索患者
func (h *HTTPHandler) SearchPatients(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	patients, err := h.booking.SearchPatients(ctx, CurrentUser(c).Actor(), c.Query("keyword"))
	if err != nil {
		ServiceError(c, err, "search patients")
		return
	}
	c.JSON(http.StatusOK, dto.PatientListResponse{Patients: converter.UsersToPatients(patients)})
}

// PatientDetail 患者资料与就诊历史
func (h *HTTPHandler) PatientDetail(c *gin.Context) {
	patientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	patient, history, err := h.booking.PatientDetail(ctx, CurrentUser(c).Actor(), patientID)
	if err != nil {
		ServiceError(c, err, "load patient detail")
		return
	}
	c.JSON(http.StatusOK, dto.PatientDetailResponse{
		Info:    converter.UserToPatient(patient),
		History: converter.AppointmentsToItems(history),
	})
}
