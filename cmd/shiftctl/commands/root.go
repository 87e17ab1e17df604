// Package commands 实现 shiftctl 运维命令：迁移、凭证导入与口令哈希
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Mohammed-ye12/Attendance-APP/config"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/database"
	applogger "github.com/Mohammed-ye12/Attendance-APP/pkg/logger"
)

// NewRootCmd 构造根命令；每次调用返回独立的命令树，便于测试
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "shiftctl",
		Short: "班次审批系统运维工具",
		Long: `shiftctl 提供班次审批服务的运维操作：

  migrate up / down   执行或回滚数据库迁移
  seed                从 YAML 凭证文件导入经理与 HR 账号
  hash                生成 bcrypt 口令哈希`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors:      true,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")

	env := &cmdEnv{configPath: &configPath}
	root.AddCommand(newMigrateCmd(env), newSeedCmd(env), newHashCmd())
	return root
}

// cmdEnv 子命令共享的懒加载依赖
type cmdEnv struct {
	configPath *string
}

func (e *cmdEnv) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(*e.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, logger, nil
}

func (e *cmdEnv) openDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = sqlDB.Close() }, nil
}
