package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mohammed-ye12/Attendance-APP/config"
	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/jwt"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("账号或口令错误")
	ErrNotRegistered      = errors.New("该员工编号尚未注册")
	ErrPendingApproval    = errors.New("注册信息正在等待管理员审批")
)

// 未知账号时用于比对的哈希，使响应耗时与口令错误时一致
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)

// AuthService 认证业务接口
type AuthService interface {
	LoginEmployee(ctx context.Context, code string) (*dto.SessionResponse, error)
	LoginManager(ctx context.Context, managerID, password string) (*dto.SessionResponse, error)
	LoginHR(ctx context.Context, code string) (*dto.SessionResponse, error)
	LoginAdmin(ctx context.Context, code string) (*dto.SessionResponse, error)
	ListManagerGroups(ctx context.Context) ([]dto.ManagerGroupResponse, error)
	// Logout 将 token 加入黑名单直至过期；Redis 不可用时为空操作
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例，rdb 可为 nil
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) issue(p Principal) (*dto.SessionResponse, error) {
	token, err := s.jwtMgr.GenerateAccessToken(p.Subject())
	if err != nil {
		s.logger.Error("生成会话 Token 失败", zap.Error(err))
		return nil, err
	}
	return &dto.SessionResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Principal:   p.Response(),
	}, nil
}

// ────────────────────── 员工 ──────────────────────

func (s *authService) LoginEmployee(ctx context.Context, code string) (*dto.SessionResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrNotRegistered
	}

	p, err := lookupProfile(ctx, s.repo, code)
	if err != nil {
		s.logger.Error("查询员工档案失败", zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, ErrNotRegistered
	}
	if !p.IsApproved {
		return nil, ErrPendingApproval
	}
	if p.Role != model.RoleEmployee {
		return nil, ErrInvalidCredentials
	}

	return s.issue(Principal{
		ID:          p.ProfileID,
		Role:        model.SessionEmployee,
		DisplayName: p.FullName,
		Department:  p.Department,
		Section:     p.SectionValue(),
	})
}

// ────────────────────── 经理 ──────────────────────

func (s *authService) LoginManager(ctx context.Context, managerID, password string) (*dto.SessionResponse, error) {
	m, err := s.repo.Manager.GetByID(ctx, strings.TrimSpace(managerID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询经理失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(Principal{
		ID:          m.ManagerID,
		Role:        model.SessionManager,
		DisplayName: m.Title,
		Department:  m.Department,
		Section:     m.SectionValue(),
	})
}

func (s *authService) ListManagerGroups(ctx context.Context) ([]dto.ManagerGroupResponse, error) {
	managers, err := s.repo.Manager.List(ctx)
	if err != nil {
		s.logger.Error("查询经理列表失败", zap.Error(err))
		return nil, err
	}

	groups := make([]dto.ManagerGroupResponse, 0)
	index := make(map[string]int)
	for _, m := range managers {
		i, ok := index[m.GroupName]
		if !ok {
			i = len(groups)
			index[m.GroupName] = i
			groups = append(groups, dto.ManagerGroupResponse{
				Group:      m.GroupName,
				Department: m.Department,
				Managers:   []dto.ManagerSlotResponse{},
			})
		}
		groups[i].Managers = append(groups[i].Managers, dto.ManagerSlotResponse{
			ID:      m.ManagerID,
			Title:   m.Title,
			Section: m.SectionValue(),
		})
	}
	return groups, nil
}

// ────────────────────── HR ──────────────────────

func (s *authService) LoginHR(ctx context.Context, code string) (*dto.SessionResponse, error) {
	users, err := s.repo.HRUser.List(ctx)
	if err != nil {
		s.logger.Error("查询 HR 账号失败", zap.Error(err))
		return nil, err
	}

	for _, u := range users {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(code)) == nil {
			return s.issue(Principal{
				ID:          u.HRUserID,
				Role:        model.SessionHR,
				DisplayName: u.Username,
				HRType:      u.Type,
			})
		}
	}
	return nil, ErrInvalidCredentials
}

// ────────────────────── 管理员 ──────────────────────

func (s *authService) LoginAdmin(_ context.Context, code string) (*dto.SessionResponse, error) {
	expected := s.cfg.Auth.AdminCode
	if expected == "" || subtle.ConstantTimeCompare([]byte(code), []byte(expected)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return s.issue(Principal{
		ID:          model.SessionAdmin,
		Role:        model.SessionAdmin,
		DisplayName: "Administrator",
	})
}

// ────────────────────── 登出 ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil || jti == "" {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}
