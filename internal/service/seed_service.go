package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
)

// ErrInvalidCredentialFile 凭证文件内容无效
var ErrInvalidCredentialFile = errors.New("凭证文件无效")

// CredentialFile 凭证种子文件结构（YAML）
type CredentialFile struct {
	ManagerGroups []ManagerGroupSeed `yaml:"manager_groups"`
	HRUsers       []HRUserSeed       `yaml:"hr_users"`
}

// ManagerGroupSeed 经理分组
type ManagerGroupSeed struct {
	Group      string        `yaml:"group"`
	Department string        `yaml:"department"`
	Managers   []ManagerSeed `yaml:"managers"`
}

// ManagerSeed 经理岗位
type ManagerSeed struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	FullName string `yaml:"full_name"`
	Password string `yaml:"password"`
	Section  string `yaml:"section"`
}

// HRUserSeed HR 账号
type HRUserSeed struct {
	Username    string   `yaml:"username"`
	Type        string   `yaml:"type"`
	Password    string   `yaml:"password"`
	Departments []string `yaml:"departments"`
}

// SeedService 凭证导入业务接口
type SeedService interface {
	// ParseCredentials 解析并校验 YAML 凭证文件
	ParseCredentials(r io.Reader) (*CredentialFile, error)
	// Apply 在单个事务中写入全部凭证，口令以 bcrypt 哈希保存
	Apply(ctx context.Context, file *CredentialFile) (*dto.SeedResult, error)
}

type seedService struct {
	repo   *repository.Repository
	logger *zap.Logger
	cost   int
}

// NewSeedService 创建 SeedService 实例
func NewSeedService(repo *repository.Repository, logger *zap.Logger) SeedService {
	return &seedService{repo: repo, logger: logger, cost: bcrypt.DefaultCost}
}

func invalidCredentials(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidCredentialFile, fmt.Sprintf(format, args...))
}

func (s *seedService) ParseCredentials(r io.Reader) (*CredentialFile, error) {
	var file CredentialFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalidCredentials("文件为空")
		}
		return nil, invalidCredentials("%v", err)
	}

	seenManagers := make(map[string]bool)
	for _, g := range file.ManagerGroups {
		if strings.TrimSpace(g.Group) == "" {
			return nil, invalidCredentials("经理分组名称不能为空")
		}
		if !model.IsValidDepartment(g.Department) {
			return nil, invalidCredentials("分组 %s 的部门 %q 无效", g.Group, g.Department)
		}
		for _, m := range g.Managers {
			if m.ID == "" || m.Title == "" || m.Password == "" {
				return nil, invalidCredentials("分组 %s 中的经理缺少 id / title / password", g.Group)
			}
			if seenManagers[m.ID] {
				return nil, invalidCredentials("经理编号 %s 重复", m.ID)
			}
			seenManagers[m.ID] = true
		}
	}

	seenHR := make(map[string]bool)
	for _, u := range file.HRUsers {
		if u.Username == "" || u.Password == "" {
			return nil, invalidCredentials("HR 账号缺少 username / password")
		}
		if !model.IsValidHRType(u.Type) {
			return nil, invalidCredentials("HR 账号 %s 的类型 %q 无效", u.Username, u.Type)
		}
		if seenHR[u.Username] {
			return nil, invalidCredentials("HR 账号 %s 重复", u.Username)
		}
		seenHR[u.Username] = true
	}

	return &file, nil
}

func (s *seedService) Apply(ctx context.Context, file *CredentialFile) (*dto.SeedResult, error) {
	result := &dto.SeedResult{}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		order := 0
		for _, g := range file.ManagerGroups {
			for _, m := range g.Managers {
				hash, err := bcrypt.GenerateFromPassword([]byte(m.Password), s.cost)
				if err != nil {
					return err
				}
				fullName := m.FullName
				if fullName == "" {
					fullName = m.Title
				}
				order++
				if err := tx.Manager.Upsert(ctx, &model.Manager{
					ManagerID:    m.ID,
					GroupName:    g.Group,
					Title:        m.Title,
					FullName:     fullName,
					Department:   g.Department,
					Section:      optional(m.Section),
					PasswordHash: string(hash),
					SortOrder:    order,
				}); err != nil {
					return fmt.Errorf("写入经理 %s 失败: %w", m.ID, err)
				}
				result.Managers++
			}
		}

		for _, u := range file.HRUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
			if err != nil {
				return err
			}
			var depts model.StringArray
			if len(u.Departments) > 0 {
				depts = model.StringArray(u.Departments)
			}
			if err := tx.HRUser.Upsert(ctx, &model.HRUser{
				HRUserID:     uuid.New().String(),
				Username:     u.Username,
				PasswordHash: string(hash),
				Type:         u.Type,
				Departments:  depts,
			}); err != nil {
				return fmt.Errorf("写入 HR 账号 %s 失败: %w", u.Username, err)
			}
			result.HRUsers++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("导入凭证失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("凭证导入完成", zap.Int("managers", result.Managers), zap.Int("hr_users", result.HRUsers))
	return result, nil
}
