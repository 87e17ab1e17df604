package dto

// ── 认证模块 DTO ──

// EmployeeLoginRequest 员工登录（仅凭员工编号）
type EmployeeLoginRequest struct {
	CustomID string `json:"custom_id" binding:"required,max=50"`
}

// ManagerLoginRequest 经理登录
type ManagerLoginRequest struct {
	ManagerID string `json:"manager_id" binding:"required,max=50"`
	Password  string `json:"password"   binding:"required,max=100"`
}

// CodeLoginRequest HR / 管理员口令登录
type CodeLoginRequest struct {
	Code string `json:"code" binding:"required,max=100"`
}

// SessionResponse 登录成功响应
type SessionResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresIn   int               `json:"expires_in"` // 有效期（秒）
	Principal   PrincipalResponse `json:"principal"`
}

// PrincipalResponse 当前会话主体（GET /auth/me）
type PrincipalResponse struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name,omitempty"`
	Department  string `json:"department,omitempty"`
	Section     string `json:"section,omitempty"`
	HRType      string `json:"hr_type,omitempty"`
}

// ManagerGroupResponse 经理登录选择列表（不含口令）
type ManagerGroupResponse struct {
	Group      string                `json:"group"`
	Department string                `json:"department"`
	Managers   []ManagerSlotResponse `json:"managers"`
}

// ManagerSlotResponse 经理岗位
type ManagerSlotResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Section string `json:"section,omitempty"`
}

// SeedResult 凭证导入结果
type SeedResult struct {
	Managers int `json:"managers"`
	HRUsers  int `json:"hr_users"`
}
