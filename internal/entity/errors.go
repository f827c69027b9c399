package entity

import "errors"

// ErrSlotTaken 医生在该日期时间已有未取消的预约
var ErrSlotTaken = errors.New("time slot already booked")

// ErrStatusChanged 写入时预约状态已不是调用方预期的状态
var ErrStatusChanged = errors.New("appointment status changed")
