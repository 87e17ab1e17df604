package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
)

// ── Manager Repository ──

// ManagerRepository 经理凭证数据访问接口
type ManagerRepository interface {
	GetByID(ctx context.Context, id string) (*model.Manager, error)
	List(ctx context.Context) ([]model.Manager, error)
	Upsert(ctx context.Context, m *model.Manager) error
}

type managerRepo struct {
	db *gorm.DB
}

// NewManagerRepo 创建 ManagerRepository 实例
func NewManagerRepo(db *gorm.DB) ManagerRepository {
	return &managerRepo{db: db}
}

func (r *managerRepo) GetByID(ctx context.Context, id string) (*model.Manager, error) {
	var m model.Manager
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *managerRepo) List(ctx context.Context) ([]model.Manager, error) {
	var managers []model.Manager
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, manager_id ASC").
		Find(&managers).Error
	return managers, err
}

// Upsert 按 manager_id 插入或覆盖
func (r *managerRepo) Upsert(ctx context.Context, m *model.Manager) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "manager_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"group_name", "title", "full_name", "department", "section",
				"password_hash", "sort_order", "updated_at",
			}),
		}).
		Create(m).Error
}

// ── HRUser Repository ──

// HRUserRepository HR 凭证数据访问接口
type HRUserRepository interface {
	List(ctx context.Context) ([]model.HRUser, error)
	Upsert(ctx context.Context, u *model.HRUser) error
}

type hrUserRepo struct {
	db *gorm.DB
}

// NewHRUserRepo 创建 HRUserRepository 实例
func NewHRUserRepo(db *gorm.DB) HRUserRepository {
	return &hrUserRepo{db: db}
}

func (r *hrUserRepo) List(ctx context.Context) ([]model.HRUser, error) {
	var users []model.HRUser
	err := r.db.WithContext(ctx).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

// Upsert 按 username 插入或覆盖
func (r *hrUserRepo) Upsert(ctx context.Context, u *model.HRUser) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "type", "departments", "updated_at"}),
		}).
		Create(u).Error
}
