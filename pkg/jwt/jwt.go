package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Mohammed-ye12/Attendance-APP/config"
)

var (
	ErrTokenExpired = errors.New("会话已过期")
	ErrTokenInvalid = errors.New("会话无效")
)

const issuer = "shift-approval"

// Subject 会话主体信息，登录成功后写入 token
type Subject struct {
	ID          string // profile_id / manager_id / hr_user_id / "admin"
	Role        string
	DisplayName string
	Department  string
	Section     string
	HRType      string
}

// Claims 自定义 JWT 声明
type Claims struct {
	SubjectID   string `json:"sub_id"`
	Role        string `json:"role"`
	DisplayName string `json:"name,omitempty"`
	Department  string `json:"department,omitempty"`
	Section     string `json:"section,omitempty"`
	HRType      string `json:"hr_type,omitempty"`
	jwtv5.RegisteredClaims
}

// Subject 还原会话主体
func (c *Claims) Subject() Subject {
	return Subject{
		ID:          c.SubjectID,
		Role:        c.Role,
		DisplayName: c.DisplayName,
		Department:  c.Department,
		Section:     c.Section,
		HRType:      c.HRType,
	}
}

// Manager JWT 管理器
type Manager struct {
	secret         []byte
	accessTokenTTL time.Duration
	now            func() time.Time
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:         []byte(cfg.JWTSecret),
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}
}

// AccessTokenTTL 返回会话有效期
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}

// GenerateAccessToken 生成会话 Token
func (m *Manager) GenerateAccessToken(sub Subject) (string, error) {
	now := m.now()
	claims := Claims{
		SubjectID:   sub.ID,
		Role:        sub.Role,
		DisplayName: sub.DisplayName,
		Department:  sub.Department,
		Section:     sub.Section,
		HRType:      sub.HRType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.accessTokenTTL)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并验证 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SubjectID == "" || claims.Role == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
