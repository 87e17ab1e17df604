package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
	"github.com/Mohammed-ye12/Attendance-APP/internal/service"
)

func newSeedCmd(env *cmdEnv) *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "从 YAML 凭证文件导入经理与 HR 账号",
		Long: `读取凭证文件，校验后在单个事务中写入经理岗位与 HR 账号。
口令以 bcrypt 哈希保存；已存在的编号 / 用户名会被覆盖更新。

--dry-run 只校验文件，不连接数据库。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				return validateCredentialFile(cmd, file)
			}

			cfg, logger, err := env.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if file == "" {
				file = cfg.Seed.CredentialsFile
			}
			creds, err := parseCredentialFile(service.NewSeedService(nil, logger), file)
			if err != nil {
				return err
			}

			db, closeDB, err := env.openDB(cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			seedSvc := service.NewSeedService(repository.NewRepository(db), logger)
			result, err := seedSvc.Apply(cmd.Context(), creds)
			if err != nil {
				return fmt.Errorf("导入凭证失败: %w", err)
			}
			logger.Info("凭证导入完成", zap.String("file", file))
			fmt.Fprintf(cmd.OutOrStdout(), "已导入 %d 个经理岗位、%d 个 HR 账号\n", result.Managers, result.HRUsers)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "凭证文件路径（默认取配置 seed.credentials_file）")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "仅校验凭证文件")
	return cmd
}

func validateCredentialFile(cmd *cobra.Command, file string) error {
	if file == "" {
		return fmt.Errorf("--dry-run 需要通过 --file 指定凭证文件")
	}
	creds, err := parseCredentialFile(service.NewSeedService(nil, zap.NewNop()), file)
	if err != nil {
		return err
	}

	managers := 0
	for _, g := range creds.ManagerGroups {
		managers += len(g.Managers)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "凭证文件有效：%d 个分组，%d 个经理岗位，%d 个 HR 账号\n",
		len(creds.ManagerGroups), managers, len(creds.HRUsers))
	return nil
}

func parseCredentialFile(svc service.SeedService, path string) (*service.CredentialFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开凭证文件失败: %w", err)
	}
	defer f.Close()
	return svc.ParseCredentials(f)
}
