package dto

// ── 班次登记 DTO ──

// SubmitShiftRequest 提交班次登记
// 日期与类型的合法性由 ShiftService 按顺序校验
type SubmitShiftRequest struct {
	Date        string `json:"date"         binding:"max=10"` // YYYY-MM-DD
	ShiftType   string `json:"shift_type"   binding:"max=30"`
	OtherRemark string `json:"other_remark" binding:"max=500"`
}

// RejectShiftRequest 驳回班次登记
type RejectShiftRequest struct {
	Justification string `json:"justification" binding:"max=500"`
}

// ShiftListRequest 班次登记查询参数
type ShiftListRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status"      binding:"omitempty,oneof=pending approved rejected"`
	ShiftType  string `form:"shift_type"  binding:"omitempty,shift_type"`
	DateFrom   string `form:"date_from"   binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to"     binding:"omitempty,datetime=2006-01-02"`
}

// ShiftEntryResponse 班次登记
type ShiftEntryResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Department   string  `json:"department,omitempty"`
	Section      string  `json:"section,omitempty"`
	Date         string  `json:"date"`
	ShiftType    string  `json:"shift_type"`
	ShiftLabel   string  `json:"shift_label"`
	OtherRemark  *string `json:"other_remark,omitempty"`
	Status       string  `json:"status"`
	Approved     *bool   `json:"approved"` // 兼容旧客户端：null=待审批
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ── 看板 DTO ──

// ManagerDashboardRequest 经理看板查询参数
type ManagerDashboardRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
}

// ManagerDashboardResponse 经理看板
type ManagerDashboardResponse struct {
	Section  string               `json:"section,omitempty"`
	Pending  []ShiftEntryResponse `json:"pending"`
	Approved []ShiftEntryResponse `json:"approved"`
	Rejected []ShiftEntryResponse `json:"rejected"`
	Counts   StatusCounts         `json:"counts"`
}

// HRDashboardResponse HR 看板
type HRDashboardResponse struct {
	Entries    []ShiftEntryResponse `json:"entries"`
	Identities []ProfileResponse    `json:"identities"`
	Counts     StatusCounts         `json:"counts"`
}

// AdminDashboardResponse 管理员看板
type AdminDashboardResponse struct {
	PendingIdentities  []ProfileResponse `json:"pending_identities"`
	ApprovedIdentities []ProfileResponse `json:"approved_identities"`
}

// ── 导出 DTO ──

// ExportEntriesRequest 导出班次登记
type ExportEntriesRequest struct {
	Status   string `form:"status"    binding:"omitempty,oneof=pending approved rejected"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"omitempty,datetime=2006-01-02"`
}
