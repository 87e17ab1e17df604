package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/Mohammed-ye12/Attendance-APP/config"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
)

// CalendarService 个人日历订阅（iCalendar）
//
// 仅输出已审批的登记：
//   - 三个工作班次按站点时区生成带起止时间的事件，3rd 班结束于次日
//   - 其余类型（请假、加班、其他）生成全天事件
type CalendarService interface {
	EmployeeCalendar(ctx context.Context, caller Principal) ([]byte, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.WorkflowConfig, repo *repository.Repository, logger *zap.Logger) CalendarService {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	return &calendarService{repo: repo, logger: logger, loc: loc, now: time.Now}
}

func (s *calendarService) EmployeeCalendar(ctx context.Context, caller Principal) ([]byte, error) {
	if caller.Role != model.SessionEmployee {
		return nil, ErrForbidden
	}

	entries, err := s.repo.ShiftEntry.List(ctx, repository.ShiftEntryFilter{
		EmployeeID: caller.ID,
		Status:     model.StatusApproved,
	})
	if err != nil {
		s.logger.Error("查询班次登记失败", zap.Error(err))
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//shift-approval//roster//EN")
	cal.SetXWRCalName(fmt.Sprintf("Shifts - %s", caller.DisplayName))

	stamp := s.now().UTC()
	for i := range entries {
		s.addEvent(cal, &entries[i], stamp)
	}

	return []byte(cal.Serialize()), nil
}

func (s *calendarService) addEvent(cal *ics.Calendar, e *model.ShiftEntry, stamp time.Time) {
	info, _ := model.LookupShiftType(e.ShiftType)

	event := cal.AddEvent(e.EntryID + "@shift-approval")
	event.SetDtStampTime(stamp)
	event.SetStatus(ics.ObjectStatusConfirmed)

	summary := info.Label
	if summary == "" {
		summary = string(e.ShiftType)
	}
	event.SetSummary(summary)
	if e.OtherRemark != nil && *e.OtherRemark != "" {
		event.SetDescription(*e.OtherRemark)
	}

	if info.Start == "" || info.End == "" {
		day := time.Date(e.EntryDate.Year(), e.EntryDate.Month(), e.EntryDate.Day(), 0, 0, 0, 0, s.loc)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		return
	}

	start := atClock(e.EntryDate, info.Start, s.loc)
	end := atClock(e.EntryDate, info.End, s.loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	event.SetStartAt(start)
	event.SetEndAt(end)
}

// atClock 将日期与 HH:MM 组合为站点时区时间
func atClock(date time.Time, hhmm string, loc *time.Location) time.Time {
	var h, m int
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) == 2 {
		fmt.Sscanf(parts[0], "%d", &h)
		fmt.Sscanf(parts[1], "%d", &m)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, loc)
}
