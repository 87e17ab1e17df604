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

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
	pkgerrors "github.com/Mohammed-ye12/Attendance-APP/pkg/errors"
)

// ── 身份模块业务错误 ──

var (
	ErrEmptyCode           = errors.New("员工编号不能为空")
	ErrIdentityNotFound    = errors.New("员工档案不存在")
	ErrEmployeeCodeExists  = errors.New("该员工编号已注册")
	ErrInvalidRegistration = errors.New("注册信息无效")
)

// IdentityService 员工身份业务接口
type IdentityService interface {
	// Resolve 按员工编号解析身份：new / pending / approved
	Resolve(ctx context.Context, code string) (*dto.ResolveIdentityResponse, error)
	Register(ctx context.Context, req *dto.RegisterIdentityRequest) (*dto.ProfileResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProfileResponse, error)
	List(ctx context.Context, caller Principal, req *dto.IdentityListRequest) ([]dto.ProfileResponse, int64, error)
	Approve(ctx context.Context, caller Principal, id string) (*dto.ProfileResponse, error)
	// Reject 删除档案，其班次登记一并删除
	Reject(ctx context.Context, caller Principal, id string) error
	RegistrationOptions() *dto.RegistrationOptionsResponse
}

type identityService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewIdentityService 创建 IdentityService 实例
func NewIdentityService(repo *repository.Repository, logger *zap.Logger) IdentityService {
	return &identityService{repo: repo, logger: logger, now: time.Now}
}

// lookupProfile 先按员工编号查找，未命中且编号为 UUID 时再按档案 ID 查找
// 未找到返回 (nil, nil)；其他存储错误原样返回
func lookupProfile(ctx context.Context, repo *repository.Repository, code string) (*model.Profile, error) {
	p, err := repo.Profile.GetByCustomID(ctx, code)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, parseErr := uuid.Parse(code); parseErr != nil {
		return nil, nil
	}
	p, err = repo.Profile.GetByID(ctx, code)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

// ────────────────────── Resolve ──────────────────────

func (s *identityService) Resolve(ctx context.Context, code string) (*dto.ResolveIdentityResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	p, err := lookupProfile(ctx, s.repo, code)
	if err != nil {
		s.logger.Error("查询员工档案失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	if p == nil {
		return &dto.ResolveIdentityResponse{Status: dto.IdentityStatusNew}, nil
	}

	resp := toProfileResponse(p)
	status := dto.IdentityStatusPending
	if p.IsApproved {
		status = dto.IdentityStatusApproved
	}
	return &dto.ResolveIdentityResponse{Status: status, Profile: &resp}, nil
}

// ────────────────────── Register ──────────────────────

func invalidRegistration(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRegistration, msg)
}

// validateRegistration 按顺序校验，返回第一个错误
func validateRegistration(req *dto.RegisterIdentityRequest) error {
	if strings.TrimSpace(req.CustomID) == "" {
		return invalidRegistration("员工编号不能为空")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return invalidRegistration("姓名不能为空")
	}
	if !model.IsValidDepartment(req.Department) {
		return invalidRegistration("部门无效")
	}
	if !model.UsesShiftSystem(req.Department) {
		return nil
	}

	if req.ShiftSystem == "" {
		return invalidRegistration(fmt.Sprintf("%s 部门必须选择班制", req.Department))
	}
	if model.ShiftOptions(req.ShiftSystem, req.Department) == nil {
		return invalidRegistration("班制无效")
	}
	if req.ShiftOption == "" {
		return invalidRegistration("必须选择班组")
	}
	if !model.IsValidShiftOption(req.ShiftSystem, req.Department, req.ShiftOption) {
		return invalidRegistration("班组与班制不匹配")
	}
	if model.RequiresShiftGroup(req.ShiftSystem, req.Department) {
		if req.ShiftGroup == "" {
			return invalidRegistration("工程部三班制必须选择组别")
		}
		if !model.IsValidShiftGroup(req.ShiftGroup) {
			return invalidRegistration("组别无效")
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *identityService) Register(ctx context.Context, req *dto.RegisterIdentityRequest) (*dto.ProfileResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.CustomID)

	if _, err := s.repo.Profile.GetByCustomID(ctx, code); err == nil {
		return nil, ErrEmployeeCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询员工编号失败", zap.Error(err))
		return nil, err
	}

	now := s.now()
	profile := &model.Profile{
		ProfileID:  uuid.New().String(),
		CustomID:   code,
		FullName:   strings.TrimSpace(req.FullName),
		Department: req.Department,
		Role:       model.RoleEmployee,
		IsApproved: false,
		BaseModel:  model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	// 非班制部门不保存班制相关字段
	if model.UsesShiftSystem(req.Department) {
		profile.ShiftSystem = optional(req.ShiftSystem)
		profile.Section = optional(req.ShiftOption)
		if model.RequiresShiftGroup(req.ShiftSystem, req.Department) {
			profile.ShiftGroup = optional(req.ShiftGroup)
		}
	}

	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrEmployeeCodeExists
		}
		s.logger.Error("创建员工档案失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("员工注册成功，等待审批",
		zap.String("profile_id", profile.ProfileID),
		zap.String("custom_id", profile.CustomID),
		zap.String("department", profile.Department),
	)
	resp := toProfileResponse(profile)
	return &resp, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *identityService) GetByID(ctx context.Context, id string) (*dto.ProfileResponse, error) {
	p, err := s.repo.Profile.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

func (s *identityService) List(ctx context.Context, caller Principal, req *dto.IdentityListRequest) ([]dto.ProfileResponse, int64, error) {
	if !caller.HasRole(model.SessionHR, model.SessionAdmin) {
		return nil, 0, ErrForbidden
	}
	filter := repository.ProfileFilter{
		Role:       req.Role,
		Department: req.Department,
		Approved:   req.Approved,
		Keyword:    req.Keyword,
	}
	profiles, total, err := s.repo.Profile.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询员工档案列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toProfileResponses(profiles), total, nil
}

// ────────────────────── 审批 ──────────────────────

func (s *identityService) Approve(ctx context.Context, caller Principal, id string) (*dto.ProfileResponse, error) {
	if !caller.HasRole(model.SessionAdmin) {
		return nil, ErrForbidden
	}

	if err := s.repo.Profile.Approve(ctx, id, caller.ID, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		s.logger.Error("审批员工档案失败", zap.String("profile_id", id), zap.Error(err))
		return nil, err
	}

	p, err := s.repo.Profile.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("员工档案已审批", zap.String("profile_id", id), zap.String("by", caller.ID))
	resp := toProfileResponse(p)
	return &resp, nil
}

func (s *identityService) Reject(ctx context.Context, caller Principal, id string) error {
	if !caller.HasRole(model.SessionAdmin) {
		return ErrForbidden
	}

	if err := s.repo.Profile.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIdentityNotFound
		}
		s.logger.Error("删除员工档案失败", zap.String("profile_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("员工档案已驳回并删除", zap.String("profile_id", id), zap.String("by", caller.ID))
	return nil
}

// ────────────────────── 注册选项 ──────────────────────

func (s *identityService) RegistrationOptions() *dto.RegistrationOptionsResponse {
	resp := &dto.RegistrationOptionsResponse{
		Departments:      model.Departments,
		ShiftSystems:     model.ShiftSystems,
		ThreeShiftGroups: model.ThreeShiftGroups,
	}
	for _, dept := range model.Departments {
		if !model.UsesShiftSystem(dept) {
			continue
		}
		resp.ShiftDepartments = append(resp.ShiftDepartments, dept)
		for _, system := range model.ShiftSystems {
			resp.ShiftOptions = append(resp.ShiftOptions, dto.ShiftOptionGroup{
				ShiftSystem:   system,
				Department:    dept,
				Options:       model.ShiftOptions(system, dept),
				RequiresGroup: model.RequiresShiftGroup(system, dept),
			})
		}
	}
	return resp
}
