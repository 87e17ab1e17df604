package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
)

func setupTestIdentityService() (IdentityService, *testEnv) {
	env := newTestEnv()
	return NewIdentityService(env.repo, env.logger), env
}

// ── Resolve ──

func TestIdentityResolve(t *testing.T) {
	svc, env := setupTestIdentityService()
	env.addProfile("p-1", "E100", "Jane Doe", "IT", "", false)
	env.addProfile("p-2", "E200", "John Roe", "IT", "", true)

	tests := []struct {
		code string
		want string
	}{
		{"E999", dto.IdentityStatusNew},
		{"E100", dto.IdentityStatusPending},
		{" E200 ", dto.IdentityStatusApproved},
	}
	for _, tt := range tests {
		resp, err := svc.Resolve(context.Background(), tt.code)
		if err != nil {
			t.Fatalf("Resolve(%q) 返回错误: %v", tt.code, err)
		}
		if resp.Status != tt.want {
			t.Errorf("Resolve(%q) 期望 %s，实际 %s", tt.code, tt.want, resp.Status)
		}
		if tt.want == dto.IdentityStatusNew && resp.Profile != nil {
			t.Errorf("new 状态不应返回档案")
		}
	}

	if _, err := svc.Resolve(context.Background(), "  "); !errors.Is(err, ErrEmptyCode) {
		t.Errorf("期望 ErrEmptyCode，实际: %v", err)
	}
}

func TestIdentityResolve_StoreFailureIsNotNotFound(t *testing.T) {
	svc, env := setupTestIdentityService()
	storeErr := errors.New("timeout")
	env.profiles.err = storeErr

	if _, err := svc.Resolve(context.Background(), "E100"); !errors.Is(err, storeErr) {
		t.Errorf("存储故障不应视为未注册，实际: %v", err)
	}
}

// ── Register ──

func TestIdentityRegister_NonShiftDepartment(t *testing.T) {
	svc, env := setupTestIdentityService()

	resp, err := svc.Register(context.Background(), &dto.RegisterIdentityRequest{
		CustomID:    " E100 ",
		FullName:    "Jane Doe",
		Department:  "IT",
		ShiftSystem: model.ShiftSystemTwo,
		ShiftOption: "QC",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if resp.CustomID != "E100" || resp.IsApproved {
		t.Errorf("注册结果错误: %+v", resp)
	}

	p, _ := env.profiles.GetByCustomID(context.Background(), "E100")
	if p.ShiftSystem != nil || p.Section != nil || p.ShiftGroup != nil {
		t.Error("非班制部门不应保存班制字段")
	}
	if p.Role != model.RoleEmployee {
		t.Errorf("期望角色 employee，实际 %s", p.Role)
	}
}

func TestIdentityRegister_EngineeringThreeShift(t *testing.T) {
	svc, env := setupTestIdentityService()

	_, err := svc.Register(context.Background(), &dto.RegisterIdentityRequest{
		CustomID:    "E300",
		FullName:    "Sam Lee",
		Department:  model.DeptEngineering,
		ShiftSystem: model.ShiftSystemThree,
		ShiftOption: "B",
		ShiftGroup:  "Store",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	p, _ := env.profiles.GetByCustomID(context.Background(), "E300")
	if p.SectionValue() != "B" || p.ShiftGroup == nil || *p.ShiftGroup != "Store" {
		t.Errorf("班组或组别未保存: %+v", p)
	}
}

func TestIdentityRegister_Validation(t *testing.T) {
	svc, _ := setupTestIdentityService()

	tests := []struct {
		name string
		req  dto.RegisterIdentityRequest
	}{
		{"空编号", dto.RegisterIdentityRequest{FullName: "A", Department: "IT"}},
		{"空姓名", dto.RegisterIdentityRequest{CustomID: "E1", FullName: "  ", Department: "IT"}},
		{"未知部门", dto.RegisterIdentityRequest{CustomID: "E1", FullName: "A", Department: "Marketing"}},
		{"缺少班制", dto.RegisterIdentityRequest{CustomID: "E1", FullName: "A", Department: model.DeptEngineering}},
		{"未知班制", dto.RegisterIdentityRequest{CustomID: "E1", FullName: "A", Department: model.DeptEngineering, ShiftSystem: "FourShift", ShiftOption: "A"}},
		{"缺少班组", dto.RegisterIdentityRequest{CustomID: "E1", FullName: "A", Department: model.DeptEngineering, ShiftSystem: model.ShiftSystemTwo}},
		{"班组不匹配", dto.RegisterIdentityRequest{CustomID: "E1", FullName: "A", Department: model.DeptOperations, ShiftSystem: model.ShiftSystemTwo, ShiftOption: "QC"}},
		{"缺少组别", dto.RegisterIdentityRequest{CustomID: "E1", FullName: "A", Department: model.DeptEngineering, ShiftSystem: model.ShiftSystemThree, ShiftOption: "A"}},
		{"组别无效", dto.RegisterIdentityRequest{CustomID: "E1", FullName: "A", Department: model.DeptEngineering, ShiftSystem: model.ShiftSystemThree, ShiftOption: "A", ShiftGroup: "Kitchen"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if _, err := svc.Register(context.Background(), &req); !errors.Is(err, ErrInvalidRegistration) {
				t.Errorf("期望 ErrInvalidRegistration，实际: %v", err)
			}
		})
	}
}

func TestIdentityRegister_DuplicateCode(t *testing.T) {
	svc, env := setupTestIdentityService()
	env.addProfile("p-1", "E100", "Jane Doe", "IT", "", false)

	_, err := svc.Register(context.Background(), &dto.RegisterIdentityRequest{
		CustomID: "E100", FullName: "Other", Department: "IT",
	})
	if !errors.Is(err, ErrEmployeeCodeExists) {
		t.Errorf("期望 ErrEmployeeCodeExists，实际: %v", err)
	}
}

// ── 审批 ──

func TestIdentityApprove(t *testing.T) {
	svc, env := setupTestIdentityService()
	env.addProfile("p-1", "E100", "Jane Doe", "IT", "", false)

	if _, err := svc.Approve(context.Background(), hrPrincipal, "p-1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("HR 审批身份期望 ErrForbidden，实际: %v", err)
	}

	resp, err := svc.Approve(context.Background(), adminPrincipal, "p-1")
	if err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}
	if !resp.IsApproved {
		t.Error("审批后 IsApproved 应为 true")
	}

	if _, err := svc.Approve(context.Background(), adminPrincipal, "missing"); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("期望 ErrIdentityNotFound，实际: %v", err)
	}
}

func TestIdentityReject_DeletesProfileAndEntries(t *testing.T) {
	svc, env := setupTestIdentityService()
	env.addProfile("p-1", "E100", "Jane Doe", "IT", "", false)

	if err := svc.Reject(context.Background(), adminPrincipal, "p-1"); err != nil {
		t.Fatalf("Reject 应成功: %v", err)
	}
	if _, err := env.profiles.GetByID(context.Background(), "p-1"); err == nil {
		t.Error("驳回后档案应被删除")
	}
	if err := svc.Reject(context.Background(), adminPrincipal, "p-1"); !errors.Is(err, ErrIdentityNotFound) {
		t.Errorf("重复驳回期望 ErrIdentityNotFound，实际: %v", err)
	}
}

func TestIdentityList(t *testing.T) {
	svc, env := setupTestIdentityService()
	env.addProfile("p-1", "E100", "Jane Doe", "IT", "", false)
	env.addProfile("p-2", "E200", "John Roe", "IT", "", true)
	env.addProfile("p-3", "E300", "Sam Lee", model.DeptEngineering, "QC", true)

	if _, _, err := svc.List(context.Background(), managerPrincipal("OPS-SM1", ""), &dto.IdentityListRequest{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("经理查询身份列表期望 ErrForbidden，实际: %v", err)
	}

	approved := true
	list, total, err := svc.List(context.Background(), hrPrincipal, &dto.IdentityListRequest{Approved: &approved})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("期望 2 条已审批档案，实际 total=%d len=%d", total, len(list))
	}

	list, _, _ = svc.List(context.Background(), adminPrincipal, &dto.IdentityListRequest{Keyword: "jane"})
	if len(list) != 1 || list[0].CustomID != "E100" {
		t.Errorf("关键字过滤错误: %+v", list)
	}
}

func TestRegistrationOptions(t *testing.T) {
	svc, _ := setupTestIdentityService()
	opts := svc.RegistrationOptions()

	if len(opts.Departments) != len(model.Departments) {
		t.Errorf("部门数量错误: %d", len(opts.Departments))
	}
	if len(opts.ShiftDepartments) != 2 {
		t.Errorf("期望 2 个班制部门，实际 %d", len(opts.ShiftDepartments))
	}
	found := false
	for _, g := range opts.ShiftOptions {
		if g.Department == model.DeptEngineering && g.ShiftSystem == model.ShiftSystemThree {
			found = true
			if !g.RequiresGroup {
				t.Error("工程部三班制应要求组别")
			}
		}
	}
	if !found {
		t.Error("缺少工程部三班制选项")
	}
}
