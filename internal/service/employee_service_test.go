package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrms-lite/backend/internal/dto"
	"hrms-lite/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestEmployeeService() (EmployeeService, *mockEmployeeRepo, *mockAttendanceRepo) {
	repo, empRepo, attRepo := newTestRepository()
	svc := NewEmployeeService(repo, zap.NewNop())
	return svc, empRepo, attRepo
}

func validCreateRequest() *dto.CreateEmployeeRequest {
	return &dto.CreateEmployeeRequest{
		ID:         "E1",
		FullName:   "Ava Lee",
		Email:      "ava@x.com",
		Department: "Eng",
	}
}

// ── Create 测试 ──

func TestEmployeeService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestEmployeeService()

	result, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.ID != "E1" {
		t.Errorf("期望ID=E1，实际=%s", result.ID)
	}
	if result.FullName != "Ava Lee" {
		t.Errorf("期望FullName=Ava Lee，实际=%s", result.FullName)
	}
	if result.TotalPresent != 0 {
		t.Errorf("新员工 TotalPresent 应为0，实际=%d", result.TotalPresent)
	}
}

func TestEmployeeService_Create_TrimsFields(t *testing.T) {
	svc, empRepo, _ := setupTestEmployeeService()

	req := &dto.CreateEmployeeRequest{
		ID:         "  E1  ",
		FullName:   "  Ava Lee ",
		Email:      " ava@x.com ",
		Department: " Eng ",
	}
	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.ID != "E1" || result.FullName != "Ava Lee" || result.Department != "Eng" {
		t.Errorf("字段未去除首尾空白: %+v", result)
	}
	if _, ok := empRepo.employees["E1"]; !ok {
		t.Error("落库的工号应为去空白后的 E1")
	}
}

func TestEmployeeService_Create_DuplicateID(t *testing.T) {
	svc, _, _ := setupTestEmployeeService()

	if _, err := svc.Create(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("第一次 Create 应成功: %v", err)
	}

	dup := validCreateRequest()
	dup.Email = "other@x.com" // 仅工号重复
	_, err := svc.Create(context.Background(), dup)
	if !errors.Is(err, ErrEmployeeIDExists) {
		t.Errorf("期望 ErrEmployeeIDExists，实际: %v", err)
	}
}

func TestEmployeeService_Create_DuplicateEmail(t *testing.T) {
	svc, _, _ := setupTestEmployeeService()

	if _, err := svc.Create(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("第一次 Create 应成功: %v", err)
	}

	dup := validCreateRequest()
	dup.ID = "E2" // 仅邮箱重复
	_, err := svc.Create(context.Background(), dup)
	if !errors.Is(err, ErrEmployeeEmailExists) {
		t.Errorf("期望 ErrEmployeeEmailExists，实际: %v", err)
	}
}

func TestEmployeeService_Create_RacedDuplicate(t *testing.T) {
	// 快速检查通过但写入时唯一索引触发（并发场景）：
	// ErrDuplicatedKey 仍应归类为冲突，而非内部错误
	svc, empRepo, _ := setupTestEmployeeService()
	empRepo.createErr = gorm.ErrDuplicatedKey

	_, err := svc.Create(context.Background(), validCreateRequest())
	if !errors.Is(err, ErrEmployeeIDExists) {
		t.Errorf("期望 ErrEmployeeIDExists，实际: %v", err)
	}
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	svc, _, _ := setupTestEmployeeService()

	cases := []struct {
		name    string
		mutate  func(*dto.CreateEmployeeRequest)
		wantErr error
	}{
		{"空工号", func(r *dto.CreateEmployeeRequest) { r.ID = "   " }, ErrEmployeeIDRequired},
		{"空姓名", func(r *dto.CreateEmployeeRequest) { r.FullName = " " }, ErrEmployeeNameRequired},
		{"空部门", func(r *dto.CreateEmployeeRequest) { r.Department = "" }, ErrEmployeeDeptRequired},
		{"非法邮箱", func(r *dto.CreateEmployeeRequest) { r.Email = "not-an-email" }, ErrEmployeeEmailInvalid},
	}

	for _, tc := range cases {
		req := validCreateRequest()
		tc.mutate(req)
		_, err := svc.Create(context.Background(), req)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: 期望 %v，实际: %v", tc.name, tc.wantErr, err)
		}
	}
}

// ── GetByID 测试 ──

func TestEmployeeService_GetByID_Success(t *testing.T) {
	svc, _, attRepo := setupTestEmployeeService()

	if _, err := svc.Create(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 两条出勤 + 一条缺勤，TotalPresent 只统计 Present
	attRepo.records["a1"] = &model.Attendance{
		ID: "a1", EmployeeID: "E1",
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent,
	}
	attRepo.records["a2"] = &model.Attendance{
		ID: "a2", EmployeeID: "E1",
		Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent,
	}
	attRepo.records["a3"] = &model.Attendance{
		ID: "a3", EmployeeID: "E1",
		Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Status: model.StatusAbsent,
	}

	result, err := svc.GetByID(context.Background(), "E1")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.TotalPresent != 2 {
		t.Errorf("期望 TotalPresent=2，实际=%d", result.TotalPresent)
	}
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestEmployeeService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestEmployeeService_List_OrderAndCounts(t *testing.T) {
	svc, _, attRepo := setupTestEmployeeService()

	for _, r := range []*dto.CreateEmployeeRequest{
		{ID: "E1", FullName: "Ava Lee", Email: "ava@x.com", Department: "Eng"},
		{ID: "E2", FullName: "Bob Wu", Email: "bob@x.com", Department: "Ops"},
		{ID: "E3", FullName: "Cleo Xu", Email: "cleo@x.com", Department: "Eng"},
	} {
		if _, err := svc.Create(context.Background(), r); err != nil {
			t.Fatalf("Create %s 应成功: %v", r.ID, err)
		}
	}

	// E1 出勤2次，E2 出勤1次，E3 无记录
	attRepo.records["a1"] = &model.Attendance{
		ID: "a1", EmployeeID: "E1",
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent,
	}
	attRepo.records["a2"] = &model.Attendance{
		ID: "a2", EmployeeID: "E1",
		Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent,
	}
	attRepo.records["a3"] = &model.Attendance{
		ID: "a3", EmployeeID: "E2",
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent,
	}

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("期望 Total=3，实际=%d", result.Total)
	}

	// 创建时间倒序：E3, E2, E1
	wantOrder := []string{"E3", "E2", "E1"}
	wantCount := map[string]int64{"E1": 2, "E2": 1, "E3": 0}
	for i, emp := range result.Employees {
		if emp.ID != wantOrder[i] {
			t.Errorf("位置%d 期望 %s，实际=%s", i, wantOrder[i], emp.ID)
		}
		if emp.TotalPresent != wantCount[emp.ID] {
			t.Errorf("%s 期望 TotalPresent=%d，实际=%d", emp.ID, wantCount[emp.ID], emp.TotalPresent)
		}
	}
}

// ── Delete 测试 ──

func TestEmployeeService_Delete_CascadesAttendance(t *testing.T) {
	svc, _, attRepo := setupTestEmployeeService()

	if _, err := svc.Create(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	attRepo.records["a1"] = &model.Attendance{
		ID: "a1", EmployeeID: "E1",
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent,
	}
	attRepo.records["a2"] = &model.Attendance{
		ID: "a2", EmployeeID: "E1",
		Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Status: model.StatusAbsent,
	}

	if err := svc.Delete(context.Background(), "E1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if len(attRepo.records) != 0 {
		t.Errorf("级联删除后考勤记录应为空，剩余=%d", len(attRepo.records))
	}
	if _, err := svc.GetByID(context.Background(), "E1"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("删除后 GetByID 期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

func TestEmployeeService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestEmployeeService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际: %v", err)
	}
}

// ── Dashboard 测试 ──

func TestEmployeeService_Dashboard(t *testing.T) {
	svc, _, attRepo := setupTestEmployeeService()

	for _, r := range []*dto.CreateEmployeeRequest{
		{ID: "E1", FullName: "Ava Lee", Email: "ava@x.com", Department: "Eng"},
		{ID: "E2", FullName: "Bob Wu", Email: "bob@x.com", Department: "Ops"},
		{ID: "E3", FullName: "Cleo Xu", Email: "cleo@x.com", Department: "Eng"},
	} {
		if _, err := svc.Create(context.Background(), r); err != nil {
			t.Fatalf("Create %s 应成功: %v", r.ID, err)
		}
	}

	today := todayUTC()
	yesterday := today.AddDate(0, 0, -1)
	attRepo.records["a1"] = &model.Attendance{ID: "a1", EmployeeID: "E1", Date: today, Status: model.StatusPresent}
	attRepo.records["a2"] = &model.Attendance{ID: "a2", EmployeeID: "E2", Date: today, Status: model.StatusAbsent}
	attRepo.records["a3"] = &model.Attendance{ID: "a3", EmployeeID: "E3", Date: today, Status: model.StatusPresent}
	// 昨日记录不应计入今日统计
	attRepo.records["a4"] = &model.Attendance{ID: "a4", EmployeeID: "E1", Date: yesterday, Status: model.StatusPresent}

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if stats.TotalEmployees != 3 {
		t.Errorf("期望 TotalEmployees=3，实际=%d", stats.TotalEmployees)
	}
	if stats.TotalDepartments != 2 {
		t.Errorf("期望 TotalDepartments=2，实际=%d", stats.TotalDepartments)
	}
	if stats.PresentToday != 2 {
		t.Errorf("期望 PresentToday=2，实际=%d", stats.PresentToday)
	}
	if stats.AbsentToday != 1 {
		t.Errorf("期望 AbsentToday=1，实际=%d", stats.AbsentToday)
	}
}

func TestEmployeeService_Dashboard_Empty(t *testing.T) {
	svc, _, _ := setupTestEmployeeService()

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if stats.TotalEmployees != 0 || stats.TotalDepartments != 0 ||
		stats.PresentToday != 0 || stats.AbsentToday != 0 {
		t.Errorf("空库看板应全为0: %+v", stats)
	}
}
