package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	pkgerrors "github.com/Mohammed-ye12/Attendance-APP/pkg/errors"
)

// ShiftEntryFilter 班次登记查询条件，零值字段不参与过滤
type ShiftEntryFilter struct {
	EmployeeID string
	Status     model.ApprovalStatus
	ShiftType  model.ShiftType
	DateFrom   *time.Time // 含
	DateTo     *time.Time // 含
}

// Decision 审批结果
type Decision struct {
	Status     model.ApprovalStatus
	ApprovedBy string
	ApprovedAt time.Time
	// Remark 非 nil 时覆盖 other_remark（驳回理由）
	Remark *string
}

// ShiftEntryRepository 班次登记数据访问接口
type ShiftEntryRepository interface {
	Create(ctx context.Context, entry *model.ShiftEntry) error
	GetByID(ctx context.Context, id string) (*model.ShiftEntry, error)
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	// List 预加载 Employee，按登记日期升序
	List(ctx context.Context, filter ShiftEntryFilter) ([]model.ShiftEntry, error)
	// Decide 写入审批结果
	// onlyPending=true 时仅更新 pending 状态的记录，未命中返回 pkgerrors.ErrConditionalUpdate；
	// 记录不存在时返回 gorm.ErrRecordNotFound
	Decide(ctx context.Context, id string, d Decision, onlyPending bool) error
}

type shiftEntryRepo struct {
	db *gorm.DB
}

// NewShiftEntryRepo 创建 ShiftEntryRepository 实例
func NewShiftEntryRepo(db *gorm.DB) ShiftEntryRepository {
	return &shiftEntryRepo{db: db}
}

func (r *shiftEntryRepo) Create(ctx context.Context, entry *model.ShiftEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *shiftEntryRepo) GetByID(ctx context.Context, id string) (*model.ShiftEntry, error) {
	var entry model.ShiftEntry
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *shiftEntryRepo) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftEntry{}).
		Where("employee_id = ? AND entry_date = ?", employeeID, date.Format(model.DateLayout)).
		Count(&count).Error
	return count > 0, err
}

func (r *shiftEntryRepo) List(ctx context.Context, filter ShiftEntryFilter) ([]model.ShiftEntry, error) {
	var entries []model.ShiftEntry

	db := r.db.WithContext(ctx).Preload("Employee")
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ShiftType != "" {
		db = db.Where("shift_type = ?", filter.ShiftType)
	}
	if filter.DateFrom != nil {
		db = db.Where("entry_date >= ?", filter.DateFrom.Format(model.DateLayout))
	}
	if filter.DateTo != nil {
		db = db.Where("entry_date <= ?", filter.DateTo.Format(model.DateLayout))
	}

	err := db.Order("entry_date ASC, created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *shiftEntryRepo) Decide(ctx context.Context, id string, d Decision, onlyPending bool) error {
	updates := map[string]interface{}{
		"status":      d.Status,
		"approved_by": d.ApprovedBy,
		"approved_at": d.ApprovedAt,
		"updated_at":  d.ApprovedAt,
	}
	if d.Remark != nil {
		updates["other_remark"] = *d.Remark
	}

	db := r.db.WithContext(ctx).Model(&model.ShiftEntry{}).Where("entry_id = ?", id)
	if onlyPending {
		db = db.Where("status = ?", model.StatusPending)
	}

	result := db.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if onlyPending {
			return pkgerrors.ErrConditionalUpdate
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}
