package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *testEnv) {
	env := newTestEnv()
	return NewExportService(env.repo, env.logger), env
}

// ── ExportEntries 测试 ──

func TestExportEntries_Forbidden(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportEntries(context.Background(), managerPrincipal("OPS-SM1", ""), &dto.ExportEntriesRequest{})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("经理导出期望 ErrForbidden，实际: %v", err)
	}
}

func TestExportEntries_NoEntries(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportEntries(context.Background(), hrPrincipal, &dto.ExportEntriesRequest{})
	if !errors.Is(err, ErrExportNoEntries) {
		t.Errorf("期望 ErrExportNoEntries，实际: %v", err)
	}
}

func TestExportEntries_InvalidRange(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportEntries(context.Background(), hrPrincipal, &dto.ExportEntriesRequest{DateFrom: "March"})
	if !errors.Is(err, ErrInvalidShiftParams) {
		t.Errorf("期望 ErrInvalidShiftParams，实际: %v", err)
	}
}

func TestExportEntries_Success(t *testing.T) {
	svc, env := setupTestExportService()
	alice := env.addProfile("p-1", "E1", "Alice", "IT", "", true)
	bob := env.addProfile("p-2", "E2", "Bob", model.DeptEngineering, "QC", true)
	env.addEntry("e-1", alice.ProfileID, "2025-03-10", model.ShiftFirst, model.StatusApproved)
	env.addEntry("e-2", alice.ProfileID, "2025-03-11", model.ShiftFirst, model.StatusApproved)
	env.addEntry("e-3", bob.ProfileID, "2025-03-10", model.ShiftLeave, model.StatusPending)
	env.addEntry("e-4", bob.ProfileID, "2025-04-01", model.ShiftLeave, model.StatusApproved)

	buf, filename, err := svc.ExportEntries(context.Background(), adminPrincipal, &dto.ExportEntriesRequest{DateTo: "2025-03-31"})
	if err != nil {
		t.Fatalf("ExportEntries 失败: %v", err)
	}
	if filename != "shift_entries_all_2025-03-31.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}

	book, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法解析生成的 Excel: %v", err)
	}
	defer book.Close()

	rows, err := book.GetRows("Entries")
	if err != nil {
		t.Fatalf("读取 Entries 失败: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("期望表头 + 3 行，实际 %d 行", len(rows))
	}
	if rows[0][0] != "Date" || rows[1][0] != "2025-03-10" {
		t.Errorf("明细内容错误: %v", rows[:2])
	}

	summary, err := book.GetRows("Summary")
	if err != nil {
		t.Fatalf("读取 Summary 失败: %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("期望表头 + 2 名员工，实际 %d 行", len(summary))
	}
	// E1：1st Shift 两天
	if summary[1][0] != "E1" || summary[1][3] != "2" {
		t.Errorf("汇总内容错误: %v", summary[1])
	}
}

func TestExportEntries_StatusFilter(t *testing.T) {
	svc, env := setupTestExportService()
	p := env.addProfile("p-1", "E1", "Alice", "IT", "", true)
	env.addEntry("e-1", p.ProfileID, "2025-03-10", model.ShiftFirst, model.StatusPending)

	_, _, err := svc.ExportEntries(context.Background(), hrPrincipal, &dto.ExportEntriesRequest{Status: "approved"})
	if !errors.Is(err, ErrExportNoEntries) {
		t.Errorf("过滤后无数据期望 ErrExportNoEntries，实际: %v", err)
	}

	_, filename, err := svc.ExportEntries(context.Background(), hrPrincipal, &dto.ExportEntriesRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("ExportEntries 失败: %v", err)
	}
	if filename != "shift_entries.xlsx" {
		t.Errorf("未指定日期范围时文件名应为 shift_entries.xlsx，实际 %s", filename)
	}
}
