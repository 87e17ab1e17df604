package service

import (
	"errors"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/jwt"
)

// ErrForbidden 当前角色无权执行该操作
var ErrForbidden = errors.New("无权执行该操作")

// Principal 请求级会话主体，由 HTTP 层从 token 还原后显式传入各业务方法
type Principal struct {
	ID          string
	Role        string
	DisplayName string
	Department  string
	Section     string
	HRType      string
}

// PrincipalFromSubject 由 token 主体构造
func PrincipalFromSubject(sub jwt.Subject) Principal {
	return Principal{
		ID:          sub.ID,
		Role:        sub.Role,
		DisplayName: sub.DisplayName,
		Department:  sub.Department,
		Section:     sub.Section,
		HRType:      sub.HRType,
	}
}

// Subject 转为 token 主体
func (p Principal) Subject() jwt.Subject {
	return jwt.Subject{
		ID:          p.ID,
		Role:        p.Role,
		DisplayName: p.DisplayName,
		Department:  p.Department,
		Section:     p.Section,
		HRType:      p.HRType,
	}
}

// Response 转为对外结构
func (p Principal) Response() dto.PrincipalResponse {
	return dto.PrincipalResponse{
		ID:          p.ID,
		Role:        p.Role,
		DisplayName: p.DisplayName,
		Department:  p.Department,
		Section:     p.Section,
		HRType:      p.HRType,
	}
}

// HasRole 判断主体是否属于给定角色之一
func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsManager 经理会话
func (p Principal) IsManager() bool { return p.Role == model.SessionManager }
