package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/Mohammed-ye12/Attendance-APP/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2025",
		AccessTokenTTL: 12 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(Subject{
		ID:          "ENG-QC",
		Role:        "manager",
		DisplayName: "QC Manager",
		Department:  "Engineering",
		Section:     "QC",
	})
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	sub := claims.Subject()
	if sub.ID != "ENG-QC" {
		t.Errorf("期望 ID=ENG-QC，实际=%s", sub.ID)
	}
	if sub.Role != "manager" {
		t.Errorf("期望 Role=manager，实际=%s", sub.Role)
	}
	if sub.Department != "Engineering" || sub.Section != "QC" {
		t.Errorf("部门/班组不符: %s / %s", sub.Department, sub.Section)
	}
	if claims.Issuer != issuer {
		t.Errorf("期望 Issuer=%s，实际=%s", issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 11*time.Hour || ttl > 13*time.Hour {
		t.Errorf("TTL 期望约12h，实际=%v", ttl)
	}
}

func TestGenerateAccessToken_HRType(t *testing.T) {
	m := newTestManager()

	token, _ := m.GenerateAccessToken(Subject{ID: "hr-1", Role: "hr", HRType: "hr-eng"})
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.HRType != "hr-eng" {
		t.Errorf("期望 HRType=hr-eng，实际=%s", claims.HRType)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key-0000",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, _ := m1.GenerateAccessToken(Subject{ID: "admin", Role: "admin"})
	_, err := m2.ParseToken(token)
	if err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_ForeignIssuer(t *testing.T) {
	m := newTestManager()

	claims := Claims{
		SubjectID: "admin",
		Role:      "admin",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, _ := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(m.secret)

	if _, err := m.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("其他签发方的 token 应判为无效，实际: %v", err)
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-13 * time.Hour) }

	token, _ := m.GenerateAccessToken(Subject{ID: "admin", Role: "admin"})

	_, err := m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
