package db

import "time"

const (
	AppointmentStatusWaiting   = "waiting"
	AppointmentStatusProgress  = "progress"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment 患者与医生之间的一次预约。
type Appointment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PatientID uint  `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Patient   *User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	DoctorID  uint  `gorm:"column:doctor_id;not null;index:idx_doctor_slot,priority:1" json:"doctor_id"`
	Doctor    *User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Date   string `gorm:"column:date;type:varchar(10);not null;index:idx_doctor_slot,priority:2" json:"date"`
	Time   string `gorm:"column:time;type:varchar(5);not null;index:idx_doctor_slot,priority:3" json:"time"`
	Status string `gorm:"column:status;type:varchar(20);not null;default:waiting;index" json:"status"`

	Symptoms      string  `gorm:"column:symptoms;type:text" json:"symptoms"`
	Diagnosis     *string `gorm:"column:diagnosis;type:text" json:"diagnosis"`
	Prescription  *string `gorm:"column:prescription;type:text" json:"prescription"`
	DoctorOpinion *string `gorm:"column:doctor_opinion;type:text" json:"doctor_opinion"`
	Memo          *string `gorm:"column:memo;type:text" json:"memo"`
}

// TableName 指定表名
func (Appointment) TableName() string {
	return "appointments"
}

// appointmentTransitions lists the statuses reachable from each status.
// Re-saving progress and amending a completed record are allowed.
var appointmentTransitions = map[string][]string{
	AppointmentStatusWaiting:   {AppointmentStatusProgress, AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusProgress:  {AppointmentStatusProgress, AppointmentStatusCompleted},
	AppointmentStatusCompleted: {AppointmentStatusCompleted},
}

// CanTransition reports whether an appointment may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
