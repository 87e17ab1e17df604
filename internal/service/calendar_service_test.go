package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"

	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
)

func setupTestCalendarService(tz string) (*calendarService, *testEnv) {
	env := newTestEnv()
	cfg := testWorkflowConfig()
	cfg.SiteTimezone = tz
	svc := NewCalendarService(cfg, env.repo, env.logger).(*calendarService)
	svc.now = fixedClock("2025-03-01T08:00:00Z")
	return svc, env
}

func TestEmployeeCalendar_OnlyApprovedEntries(t *testing.T) {
	svc, env := setupTestCalendarService("UTC")
	p := env.addProfile("p-1", "E100", "Jane Doe", "IT", "", true)
	env.addEntry("e-1", p.ProfileID, "2025-03-10", model.ShiftFirst, model.StatusApproved)
	env.addEntry("e-2", p.ProfileID, "2025-03-11", model.ShiftThird, model.StatusApproved)
	env.addEntry("e-3", p.ProfileID, "2025-03-12", model.ShiftLeave, model.StatusApproved)
	env.addEntry("e-4", p.ProfileID, "2025-03-13", model.ShiftFirst, model.StatusPending)
	other := env.addProfile("p-2", "E200", "John Roe", "IT", "", true)
	env.addEntry("e-5", other.ProfileID, "2025-03-10", model.ShiftFirst, model.StatusApproved)

	out, err := svc.EmployeeCalendar(context.Background(), employeePrincipal(p))
	if err != nil {
		t.Fatalf("EmployeeCalendar 失败: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(string(out)))
	if err != nil {
		t.Fatalf("解析 iCalendar 失败: %v", err)
	}
	events := cal.Events()
	if len(events) != 3 {
		t.Fatalf("期望 3 个已审批事件，实际 %d", len(events))
	}

	byID := make(map[string]*ics.VEvent)
	for _, e := range events {
		byID[e.Id()] = e
	}

	first := byID["e-1@shift-approval"]
	if first == nil {
		t.Fatal("缺少 e-1 事件")
	}
	if got := first.GetProperty(ics.ComponentPropertySummary).Value; got != "1st Shift" {
		t.Errorf("期望摘要 1st Shift，实际 %s", got)
	}
	start, err := first.GetStartAt()
	if err != nil || start.UTC().Hour() != 6 {
		t.Errorf("1st Shift 应于 06:00 开始，实际 %v (%v)", start, err)
	}

	third := byID["e-2@shift-approval"]
	if third == nil {
		t.Fatal("缺少 e-2 事件")
	}
	end, err := third.GetEndAt()
	if err != nil || end.UTC().Day() != 12 || end.UTC().Hour() != 6 {
		t.Errorf("3rd Shift 应于次日 06:00 结束，实际 %v (%v)", end, err)
	}

	leave := byID["e-3@shift-approval"]
	if leave == nil {
		t.Fatal("缺少 e-3 事件")
	}
	if v := leave.GetProperty(ics.ComponentPropertyDtStart).Value; v != "20250312" {
		t.Errorf("请假应为全天事件，DTSTART=%s", v)
	}
}

func TestEmployeeCalendar_EmployeeOnly(t *testing.T) {
	svc, _ := setupTestCalendarService("UTC")

	if _, err := svc.EmployeeCalendar(context.Background(), managerPrincipal("OPS-SM1", "")); !errors.Is(err, ErrForbidden) {
		t.Errorf("经理订阅日历期望 ErrForbidden，实际: %v", err)
	}
}

func TestAtClock(t *testing.T) {
	svc, _ := setupTestCalendarService("Asia/Muscat")
	d := atClock(fixedClock("2025-03-10T00:00:00Z")(), "22:00", svc.loc)

	if d.UTC().Hour() != 18 {
		t.Errorf("马斯喀特 22:00 应为 UTC 18:00，实际 %v", d.UTC())
	}
}
