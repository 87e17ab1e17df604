package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Mohammed-ye12/Attendance-APP/config"
	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
)

// ViewService 角色看板业务接口
type ViewService interface {
	ManagerDashboard(ctx context.Context, caller Principal, search string) (*dto.ManagerDashboardResponse, error)
	HRDashboard(ctx context.Context, caller Principal) (*dto.HRDashboardResponse, error)
	AdminDashboard(ctx context.Context, caller Principal) (*dto.AdminDashboardResponse, error)
}

type viewService struct {
	cfg    *config.WorkflowConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewViewService 创建 ViewService 实例
func NewViewService(cfg *config.WorkflowConfig, repo *repository.Repository, logger *zap.Logger) ViewService {
	return &viewService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── 经理看板 ──────────────────────

func (s *viewService) ManagerDashboard(ctx context.Context, caller Principal, search string) (*dto.ManagerDashboardResponse, error) {
	if !caller.IsManager() {
		return nil, ErrManagerOnly
	}

	entries, err := s.repo.ShiftEntry.List(ctx, repository.ShiftEntryFilter{})
	if err != nil {
		s.logger.Error("查询班次登记失败", zap.Error(err))
		return nil, err
	}

	scoped := ScopeEntries(entries, caller.Section, search)
	pending, approved, rejected := PartitionEntries(scoped, s.cfg.RecentHistoryLimit)

	return &dto.ManagerDashboardResponse{
		Section:  caller.Section,
		Pending:  toShiftEntryResponses(pending),
		Approved: toShiftEntryResponses(approved),
		Rejected: toShiftEntryResponses(rejected),
		Counts:   CountByStatus(scoped),
	}, nil
}

// ────────────────────── HR 看板 ──────────────────────

// HRDashboard 所有 HR 子类型看到相同的全量数据
func (s *viewService) HRDashboard(ctx context.Context, caller Principal) (*dto.HRDashboardResponse, error) {
	if !caller.HasRole(model.SessionHR, model.SessionAdmin) {
		return nil, ErrForbidden
	}

	entries, err := s.repo.ShiftEntry.List(ctx, repository.ShiftEntryFilter{})
	if err != nil {
		s.logger.Error("查询班次登记失败", zap.Error(err))
		return nil, err
	}
	profiles, _, err := s.repo.Profile.List(ctx, repository.ProfileFilter{}, 0, 0)
	if err != nil {
		s.logger.Error("查询员工档案失败", zap.Error(err))
		return nil, err
	}

	return &dto.HRDashboardResponse{
		Entries:    toShiftEntryResponses(entries),
		Identities: toProfileResponses(profiles),
		Counts:     CountByStatus(entries),
	}, nil
}

// ────────────────────── 管理员看板 ──────────────────────

func (s *viewService) AdminDashboard(ctx context.Context, caller Principal) (*dto.AdminDashboardResponse, error) {
	if !caller.HasRole(model.SessionAdmin) {
		return nil, ErrForbidden
	}

	profiles, _, err := s.repo.Profile.List(ctx, repository.ProfileFilter{}, 0, 0)
	if err != nil {
		s.logger.Error("查询员工档案失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.AdminDashboardResponse{
		PendingIdentities:  []dto.ProfileResponse{},
		ApprovedIdentities: []dto.ProfileResponse{},
	}
	for i := range profiles {
		p := toProfileResponse(&profiles[i])
		if profiles[i].IsApproved {
			resp.ApprovedIdentities = append(resp.ApprovedIdentities, p)
		} else {
			resp.PendingIdentities = append(resp.PendingIdentities, p)
		}
	}
	return resp, nil
}
