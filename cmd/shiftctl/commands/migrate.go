package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohammed-ye12/Attendance-APP/pkg/database"
)

func newMigrateCmd(env *cmdEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "数据库迁移",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "应用全部未执行的迁移",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := env.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, closeDB, err := env.openDB(cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return database.RunMigrations(sqlDB, logger)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "回滚迁移",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := env.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, closeDB, err := env.openDB(cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			logger.Warn("即将回滚数据库迁移", zap.Int("steps", steps))
			return database.RollbackMigrations(sqlDB, steps, logger)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "回滚步数")

	cmd.AddCommand(up, down)
	return cmd
}
