package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"hrms-lite/backend/internal/model"
	"hrms-lite/backend/internal/repository"
)

// mock 数据的 created_at 基准：按插入顺序递增，保证排序可预期
var mockClockBase = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	att       *mockAttendanceRepo // 级联删除时联动
	seq       int
	createErr error // 非空时 Create 直接返回该错误（模拟并发下唯一索引触发）
}

func newMockEmployeeRepo(att *mockAttendanceRepo) *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees: make(map[string]*model.Employee),
		att:       att,
	}
}

// Create 模拟数据库唯一索引：工号或邮箱重复时返回 gorm.ErrDuplicatedKey
func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.employees[emp.EmployeeID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, e := range m.employees {
		if e.Email == emp.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = mockClockBase.Add(time.Duration(m.seq) * time.Second)
		m.seq++
	}
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	result := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockEmployeeRepo) DeleteCascade(_ context.Context, id string) error {
	for rid, rec := range m.att.records {
		if rec.EmployeeID == id {
			delete(m.att.records, rid)
		}
	}
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *mockEmployeeRepo) CountDepartments(_ context.Context) (int64, error) {
	depts := make(map[string]bool)
	for _, e := range m.employees {
		depts[e.Department] = true
	}
	return int64(len(depts)), nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records   map[string]*model.Attendance
	seq       int
	createErr error // 非空时 Create 直接返回该错误（模拟并发下唯一索引触发）
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.Attendance)}
}

// Create 模拟 (employee_id, date) 联合唯一索引
func (m *mockAttendanceRepo) Create(_ context.Context, rec *model.Attendance) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, r := range m.records {
		if r.EmployeeID == rec.EmployeeID && r.Date.Equal(rec.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = mockClockBase.Add(time.Duration(m.seq) * time.Second)
		m.seq++
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.Attendance, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*model.Attendance, error) {
	for _, r := range m.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) List(_ context.Context, filters *repository.AttendanceListFilters) ([]model.Attendance, error) {
	result := make([]model.Attendance, 0, len(m.records))
	for _, r := range m.records {
		if filters != nil {
			if filters.EmployeeID != "" && r.EmployeeID != filters.EmployeeID {
				continue
			}
			if filters.DateFrom != nil && r.Date.Before(*filters.DateFrom) {
				continue
			}
			if filters.DateTo != nil && r.Date.After(*filters.DateTo) {
				continue
			}
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockAttendanceRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockAttendanceRepo) CountPresent(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, r := range m.records {
		if r.EmployeeID == employeeID && r.Status == model.StatusPresent {
			count++
		}
	}
	return count, nil
}

func (m *mockAttendanceRepo) BatchCountPresent(_ context.Context, employeeIDs []string) (map[string]int64, error) {
	idSet := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		idSet[id] = true
	}
	result := make(map[string]int64, len(employeeIDs))
	for _, r := range m.records {
		if idSet[r.EmployeeID] && r.Status == model.StatusPresent {
			result[r.EmployeeID]++
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) CountByDateAndStatus(_ context.Context, date time.Time, status model.AttendanceStatus) (int64, error) {
	var count int64
	for _, r := range m.records {
		if r.Date.Equal(date) && r.Status == status {
			count++
		}
	}
	return count, nil
}

// ── 测试装配 ──

func newTestRepository() (*repository.Repository, *mockEmployeeRepo, *mockAttendanceRepo) {
	attRepo := newMockAttendanceRepo()
	empRepo := newMockEmployeeRepo(attRepo)
	repo := &repository.Repository{
		Employee:   empRepo,
		Attendance: attRepo,
	}
	return repo, empRepo, attRepo
}
