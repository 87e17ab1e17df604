package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
)

// ProfileFilter 员工档案查询条件，零值字段不参与过滤
type ProfileFilter struct {
	Role       string
	Department string
	Section    string
	Approved   *bool
	Keyword    string // 匹配姓名或员工编号，大小写不敏感
}

// ProfileRepository 员工档案数据访问接口
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	GetByCustomID(ctx context.Context, customID string) (*model.Profile, error)
	// List limit<=0 时返回全部
	List(ctx context.Context, filter ProfileFilter, offset, limit int) ([]model.Profile, int64, error)
	// Approve 将档案标记为已审批；记录不存在时返回 gorm.ErrRecordNotFound
	Approve(ctx context.Context, id, approvedBy string, at time.Time) error
	// Delete 物理删除档案，班次登记由外键级联删除
	Delete(ctx context.Context, id string) error
}

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo 创建 ProfileRepository 实例
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", id).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) GetByCustomID(ctx context.Context, customID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("custom_id = ?", customID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) List(ctx context.Context, filter ProfileFilter, offset, limit int) ([]model.Profile, int64, error) {
	var profiles []model.Profile
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Profile{})
	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.Section != "" {
		db = db.Where("section = ?", filter.Section)
	}
	if filter.Approved != nil {
		db = db.Where("is_approved = ?", *filter.Approved)
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		like := "%" + kw + "%"
		db = db.Where("full_name ILIKE ? OR custom_id ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Order("created_at DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (r *profileRepo) Approve(ctx context.Context, id, approvedBy string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("profile_id = ?", id).
		Updates(map[string]interface{}{
			"is_approved": true,
			"approved_at": at,
			"approved_by": approvedBy,
			"updated_at":  at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", id).
		Delete(&model.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
