package service

import (
	"go.uber.org/zap"

	"github.com/Mohammed-ye12/Attendance-APP/config"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/jwt"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Identity IdentityService
	Auth     AuthService
	Shift    ShiftService
	View     ViewService
	Export   ExportService
	Calendar CalendarService
	Seed     SeedService
}

// NewService 创建 Service 聚合
// rdb 为 nil 时不启用 Token 黑名单与提交锁
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Identity: NewIdentityService(repo, logger),
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Shift:    NewShiftService(&cfg.Workflow, repo, rdb, logger),
		View:     NewViewService(&cfg.Workflow, repo, logger),
		Export:   NewExportService(repo, logger),
		Calendar: NewCalendarService(&cfg.Workflow, repo, logger),
		Seed:     NewSeedService(repo, logger),
	}
}
