package dto

// ── 身份模块 DTO ──

// 身份解析结果
const (
	IdentityStatusNew      = "new"
	IdentityStatusPending  = "pending"
	IdentityStatusApproved = "approved"
)

// ResolveIdentityResponse 按员工编号解析身份
type ResolveIdentityResponse struct {
	Status  string           `json:"status"` // new | pending | approved
	Profile *ProfileResponse `json:"profile,omitempty"`
}

// RegisterIdentityRequest 员工注册
// 字段校验及其先后顺序由 IdentityService 负责
type RegisterIdentityRequest struct {
	CustomID    string `json:"custom_id"    binding:"max=50"`
	FullName    string `json:"full_name"    binding:"max=100"`
	Department  string `json:"department"   binding:"max=60"`
	ShiftSystem string `json:"shift_system" binding:"max=20"`
	ShiftOption string `json:"shift_option" binding:"max=60"`
	ShiftGroup  string `json:"shift_group"  binding:"max=60"`
}

// ProfileResponse 员工档案
type ProfileResponse struct {
	ID          string  `json:"id"`
	CustomID    string  `json:"custom_id"`
	FullName    string  `json:"full_name"`
	Department  string  `json:"department"`
	Section     *string `json:"section,omitempty"`
	ShiftSystem *string `json:"shift_system,omitempty"`
	ShiftGroup  *string `json:"shift_group,omitempty"`
	Role        string  `json:"role"`
	IsApproved  bool    `json:"is_approved"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// IdentityListRequest 员工档案列表查询参数
type IdentityListRequest struct {
	PaginationRequest
	Role       string `form:"role"       binding:"omitempty,oneof=employee manager admin"`
	Department string `form:"department" binding:"omitempty,department"`
	Approved   *bool  `form:"approved"`
	Keyword    string `form:"keyword"    binding:"omitempty,max=50"`
}

// RegistrationOptionsResponse 注册表单可选项
type RegistrationOptionsResponse struct {
	Departments      []string           `json:"departments"`
	ShiftDepartments []string           `json:"shift_departments"` // 需要选择班制的部门
	ShiftSystems     []string           `json:"shift_systems"`
	ShiftOptions     []ShiftOptionGroup `json:"shift_options"`
	ThreeShiftGroups []string           `json:"three_shift_groups"`
}

// ShiftOptionGroup 某班制在某部门下的可选班组
type ShiftOptionGroup struct {
	ShiftSystem   string   `json:"shift_system"`
	Department    string   `json:"department"`
	Options       []string `json:"options"`
	RequiresGroup bool     `json:"requires_group"`
}
