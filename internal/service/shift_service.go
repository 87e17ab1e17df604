package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Mohammed-ye12/Attendance-APP/config"
	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
	pkgerrors "github.com/Mohammed-ye12/Attendance-APP/pkg/errors"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/redis"
)

// ── 班次登记业务错误 ──

var (
	ErrNotApprovedEmployee   = errors.New("仅已审批的员工可以登记班次")
	ErrInvalidShiftParams    = errors.New("班次登记参数无效")
	ErrPastDate              = errors.New("不能登记过去的日期")
	ErrDuplicateDate         = errors.New("该日期已提交过登记")
	ErrSubmissionBusy        = errors.New("该日期的登记正在处理中，请稍后重试")
	ErrRemarkRequired        = errors.New("选择其他类型时必须填写备注")
	ErrManagerOnly           = errors.New("仅经理可以审批班次登记")
	ErrEntryNotFound         = errors.New("班次登记不存在")
	ErrEntryOutOfScope       = errors.New("该登记不在您的管辖范围内")
	ErrEntryAlreadyDecided   = errors.New("该登记已审批，不能重复处理")
	ErrJustificationRequired = errors.New("驳回时必须填写理由")
)

// submitLockTTL 提交锁有效期，覆盖“检查-插入”窗口即可
const submitLockTTL = 10 * time.Second

// ShiftService 班次登记业务接口
type ShiftService interface {
	Submit(ctx context.Context, caller Principal, req *dto.SubmitShiftRequest) (*dto.ShiftEntryResponse, error)
	Approve(ctx context.Context, caller Principal, entryID string) (*dto.ShiftEntryResponse, error)
	Reject(ctx context.Context, caller Principal, entryID, justification string) (*dto.ShiftEntryResponse, error)
	// List 按角色限定范围：员工仅本人，经理仅管辖班组，HR / 管理员全部
	List(ctx context.Context, caller Principal, req *dto.ShiftListRequest) ([]dto.ShiftEntryResponse, error)
	ShiftTypes() []model.ShiftTypeInfo
}

type shiftService struct {
	cfg    *config.WorkflowConfig
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewShiftService 创建 ShiftService 实例，rdb 可为 nil
func NewShiftService(cfg *config.WorkflowConfig, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ShiftService {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}
	return &shiftService{
		cfg:    cfg,
		repo:   repo,
		rdb:    rdb,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

func invalidShift(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidShiftParams, msg)
}

// parseDate 解析 YYYY-MM-DD，结果为 UTC 零点
func parseDate(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, strings.TrimSpace(s))
}

// today 站点时区的今天（UTC 零点表示）
func (s *shiftService) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// ────────────────────── Submit ──────────────────────

func (s *shiftService) Submit(ctx context.Context, caller Principal, req *dto.SubmitShiftRequest) (*dto.ShiftEntryResponse, error) {
	// 1. 调用方必须是已审批的员工
	if caller.Role != model.SessionEmployee {
		return nil, ErrNotApprovedEmployee
	}
	profile, err := s.repo.Profile.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotApprovedEmployee
		}
		s.logger.Error("查询员工档案失败", zap.Error(err))
		return nil, err
	}
	if !profile.CanSubmitShifts() {
		return nil, ErrNotApprovedEmployee
	}

	// 2. 日期
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, invalidShift("日期格式应为 YYYY-MM-DD")
	}
	if s.cfg.RejectPastDates && date.Before(s.today()) {
		return nil, ErrPastDate
	}

	// 3. 同一天只能登记一次
	if s.rdb != nil {
		release, err := s.rdb.AcquireLock(ctx, "shift:"+profile.ProfileID+":"+date.Format(model.DateLayout), submitLockTTL)
		switch {
		case errors.Is(err, redis.ErrLockHeld):
			return nil, ErrSubmissionBusy
		case err != nil:
			// Redis 故障不阻断提交，唯一索引兜底
			s.logger.Warn("获取提交锁失败", zap.Error(err))
		default:
			defer release()
		}
	}
	exists, err := s.repo.ShiftEntry.ExistsForDate(ctx, profile.ProfileID, date)
	if err != nil {
		s.logger.Error("查询班次登记失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateDate
	}

	// 4. 类型
	shiftType := model.ShiftType(strings.TrimSpace(req.ShiftType))
	if !shiftType.IsValid() {
		return nil, invalidShift("班次类型无效")
	}

	// 5. 备注：仅 other 类型保存
	var remark *string
	if shiftType == model.ShiftOther {
		r := strings.TrimSpace(req.OtherRemark)
		if r == "" {
			return nil, ErrRemarkRequired
		}
		remark = &r
	}

	now := s.now()
	entry := &model.ShiftEntry{
		EntryID:     uuid.New().String(),
		EmployeeID:  profile.ProfileID,
		EntryDate:   date,
		ShiftType:   shiftType,
		OtherRemark: remark,
		Status:      model.StatusPending,
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.repo.ShiftEntry.Create(ctx, entry); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateDate
		}
		s.logger.Error("创建班次登记失败", zap.Error(err))
		return nil, err
	}
	entry.Employee = profile

	s.logger.Info("班次登记已提交",
		zap.String("entry_id", entry.EntryID),
		zap.String("employee_id", profile.ProfileID),
		zap.String("date", entry.DateString()),
		zap.String("shift_type", string(shiftType)),
	)
	resp := toShiftEntryResponse(entry)
	return &resp, nil
}

// ────────────────────── Approve / Reject ──────────────────────

func (s *shiftService) Approve(ctx context.Context, caller Principal, entryID string) (*dto.ShiftEntryResponse, error) {
	return s.decide(ctx, caller, entryID, model.StatusApproved, nil)
}

func (s *shiftService) Reject(ctx context.Context, caller Principal, entryID, justification string) (*dto.ShiftEntryResponse, error) {
	if !caller.IsManager() {
		return nil, ErrManagerOnly
	}
	j := strings.TrimSpace(justification)
	if j == "" {
		return nil, ErrJustificationRequired
	}
	return s.decide(ctx, caller, entryID, model.StatusRejected, &j)
}

func (s *shiftService) decide(ctx context.Context, caller Principal, entryID string, status model.ApprovalStatus, remark *string) (*dto.ShiftEntryResponse, error) {
	if !caller.IsManager() {
		return nil, ErrManagerOnly
	}

	entry, err := s.repo.ShiftEntry.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("查询班次登记失败", zap.Error(err))
		return nil, err
	}
	if !InManagerScope(caller.Section, entry.Employee) {
		return nil, ErrEntryOutOfScope
	}
	if s.cfg.StrictTransitions && entry.Status.IsDecided() {
		return nil, ErrEntryAlreadyDecided
	}

	now := s.now()
	d := repository.Decision{
		Status:     status,
		ApprovedBy: caller.ID,
		ApprovedAt: now,
		Remark:     remark,
	}
	if err := s.repo.ShiftEntry.Decide(ctx, entry.EntryID, d, s.cfg.StrictTransitions); err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrConditionalUpdate):
			return nil, ErrEntryAlreadyDecided
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrEntryNotFound
		}
		s.logger.Error("写入审批结果失败", zap.String("entry_id", entry.EntryID), zap.Error(err))
		return nil, err
	}

	if entry.Status.IsDecided() {
		s.logger.Info("覆盖已有审批结果",
			zap.String("entry_id", entry.EntryID),
			zap.String("from", string(entry.Status)),
			zap.String("to", string(status)),
		)
	}
	entry.Status = status
	entry.ApprovedBy = &d.ApprovedBy
	entry.ApprovedAt = &now
	entry.UpdatedAt = now
	if remark != nil {
		entry.OtherRemark = remark
	}

	s.logger.Info("班次登记已审批",
		zap.String("entry_id", entry.EntryID),
		zap.String("status", string(status)),
		zap.String("by", caller.ID),
	)
	resp := toShiftEntryResponse(entry)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

// entryFilter 将查询参数转换为仓储过滤条件
func entryFilter(employeeID, status, shiftType, dateFrom, dateTo string) (repository.ShiftEntryFilter, error) {
	f := repository.ShiftEntryFilter{
		EmployeeID: employeeID,
		ShiftType:  model.ShiftType(shiftType),
	}
	if status != "" {
		st, ok := model.ParseApprovalStatus(status)
		if !ok {
			return f, invalidShift("状态无效")
		}
		f.Status = st
	}
	if dateFrom != "" {
		t, err := parseDate(dateFrom)
		if err != nil {
			return f, invalidShift("起始日期格式应为 YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if dateTo != "" {
		t, err := parseDate(dateTo)
		if err != nil {
			return f, invalidShift("结束日期格式应为 YYYY-MM-DD")
		}
		f.DateTo = &t
	}
	return f, nil
}

func (s *shiftService) List(ctx context.Context, caller Principal, req *dto.ShiftListRequest) ([]dto.ShiftEntryResponse, error) {
	f, err := entryFilter(req.EmployeeID, req.Status, req.ShiftType, req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case model.SessionEmployee:
		f.EmployeeID = caller.ID
	case model.SessionManager, model.SessionHR, model.SessionAdmin:
	default:
		return nil, ErrForbidden
	}

	entries, err := s.repo.ShiftEntry.List(ctx, f)
	if err != nil {
		s.logger.Error("查询班次登记失败", zap.Error(err))
		return nil, err
	}
	if caller.IsManager() {
		entries = ScopeEntries(entries, caller.Section, "")
	}
	return toShiftEntryResponses(entries), nil
}

func (s *shiftService) ShiftTypes() []model.ShiftTypeInfo {
	return model.ShiftTypes
}
