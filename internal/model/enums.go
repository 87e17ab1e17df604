package model

import "strings"

// ────────────────────── 角色 ──────────────────────

// 档案角色（profiles.role）
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// 会话角色（登录方式），比档案角色多出 hr
const (
	SessionEmployee = "employee"
	SessionManager  = "manager"
	SessionHR       = "hr"
	SessionAdmin    = "admin"
)

// HR 子类型
const (
	HRTypeGeneral     = "hr"
	HRTypeEngineering = "hr-eng"
	HRTypeOpLogistic  = "op-logistic"
)

// IsValidHRType 判断 HR 子类型是否合法
func IsValidHRType(t string) bool {
	switch t {
	case HRTypeGeneral, HRTypeEngineering, HRTypeOpLogistic:
		return true
	}
	return false
}

// ────────────────────── 部门 ──────────────────────

const (
	DeptOperations  = "Operations & Berthing"
	DeptEngineering = "Engineering"
)

// Departments 全部部门，顺序即界面展示顺序
var Departments = []string{
	DeptOperations,
	DeptEngineering,
	"Human Resource",
	"Commercial",
	"Finance",
	"Purchase",
	"Service",
	"Safety",
	"IT",
	"Security",
	"Planning",
	"Staff Medical Insurance and Training",
	"Others",
}

// IsValidDepartment 判断部门是否在枚举内
func IsValidDepartment(d string) bool {
	for _, v := range Departments {
		if v == d {
			return true
		}
	}
	return false
}

// UsesShiftSystem 仅工程部与码头操作部需要选择班制
func UsesShiftSystem(department string) bool {
	return department == DeptOperations || department == DeptEngineering
}

// ────────────────────── 班制 ──────────────────────

const (
	ShiftSystemNormal = "Normal"
	ShiftSystemTwo    = "TwoShift"
	ShiftSystemThree  = "ThreeShift"
)

// ShiftSystems 全部班制
var ShiftSystems = []string{ShiftSystemNormal, ShiftSystemTwo, ShiftSystemThree}

var (
	normalOptions              = []string{"Admin", "Others"}
	engineeringTwoShiftOptions = []string{"QC", "RTG", "MES"}
	operationsTwoShiftOptions  = []string{"QC-Senior Equipment", "RTG-Senior Equipment", "MES-Senior Equipment"}
	threeShiftOptions          = []string{"A", "B", "C", "D"}

	// ThreeShiftGroups 工程部三班制需额外选择的组别
	ThreeShiftGroups = []string{"Shift Incharge", "Store", "Planning"}
)

// ShiftOptions 返回指定班制与部门可选的班组；组合非法时返回 nil
func ShiftOptions(system, department string) []string {
	switch system {
	case ShiftSystemNormal:
		return normalOptions
	case ShiftSystemTwo:
		switch department {
		case DeptEngineering:
			return engineeringTwoShiftOptions
		case DeptOperations:
			return operationsTwoShiftOptions
		}
		return nil
	case ShiftSystemThree:
		return threeShiftOptions
	}
	return nil
}

// RequiresShiftGroup 工程部三班制必须选择组别
func RequiresShiftGroup(system, department string) bool {
	return system == ShiftSystemThree && department == DeptEngineering
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// IsValidShiftOption 判断班组是否属于该班制与部门
func IsValidShiftOption(system, department, option string) bool {
	return contains(ShiftOptions(system, department), option)
}

// IsValidShiftGroup 判断三班制组别是否合法
func IsValidShiftGroup(group string) bool {
	return contains(ThreeShiftGroups, group)
}

// ────────────────────── 班次类型 ──────────────────────

// ShiftType 登记的班次/请假/加班类型
type ShiftType string

const (
	ShiftFirst           ShiftType = "1st_shift"
	ShiftSecond          ShiftType = "2nd_shift"
	ShiftThird           ShiftType = "3rd_shift"
	ShiftLeave           ShiftType = "leave"
	ShiftMedical         ShiftType = "medical"
	ShiftOTOffDay        ShiftType = "ot_off_day"
	ShiftOTWeekOff       ShiftType = "ot_week_off"
	ShiftOTPublicHoliday ShiftType = "ot_public_holiday"
	ShiftOther           ShiftType = "other"
)

// ShiftTypeInfo 班次类型展示信息
type ShiftTypeInfo struct {
	Value       ShiftType `json:"value"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // shift | leave | overtime | other
	// 仅三个工作班次有起止时间（HH:MM），3rd 跨越午夜
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// ShiftTypes 九种类型，顺序即界面展示顺序
var ShiftTypes = []ShiftTypeInfo{
	{Value: ShiftFirst, Label: "1st Shift", Description: "6:00 AM - 2:00 PM", Category: "shift", Start: "06:00", End: "14:00"},
	{Value: ShiftSecond, Label: "2nd Shift", Description: "2:00 PM - 10:00 PM", Category: "shift", Start: "14:00", End: "22:00"},
	{Value: ShiftThird, Label: "3rd Shift", Description: "10:00 PM - 6:00 AM", Category: "shift", Start: "22:00", End: "06:00"},
	{Value: ShiftLeave, Label: "Leave", Description: "Full Day Leave", Category: "leave"},
	{Value: ShiftMedical, Label: "Medical Leave", Description: "Medical Emergency/Appointment", Category: "leave"},
	{Value: ShiftOTOffDay, Label: "OT as Off Day", Description: "Overtime on Regular Off Day", Category: "overtime"},
	{Value: ShiftOTWeekOff, Label: "OT as Week Off", Description: "Overtime on Weekly Off", Category: "overtime"},
	{Value: ShiftOTPublicHoliday, Label: "OT as Public Holiday", Description: "Overtime on Public Holiday", Category: "overtime"},
	{Value: ShiftOther, Label: "Other", Description: "Other Types (Please Specify)", Category: "other"},
}

// LookupShiftType 查找类型信息
func LookupShiftType(t ShiftType) (ShiftTypeInfo, bool) {
	for _, info := range ShiftTypes {
		if info.Value == t {
			return info, true
		}
	}
	return ShiftTypeInfo{}, false
}

// IsValid 是否为九种类型之一
func (t ShiftType) IsValid() bool {
	_, ok := LookupShiftType(t)
	return ok
}

// Label 展示名称，未知类型原样返回
func (t ShiftType) Label() string {
	if info, ok := LookupShiftType(t); ok {
		return info.Label
	}
	return string(t)
}

// ────────────────────── 审批状态 ──────────────────────

// ApprovalStatus 班次登记审批状态
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// IsValid 是否为合法状态
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsDecided 已审批或已驳回
func (s ApprovalStatus) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

// Legacy 兼容旧接口的三态表示：nil=待审批，true=通过，false=驳回
func (s ApprovalStatus) Legacy() *bool {
	switch s {
	case StatusApproved:
		v := true
		return &v
	case StatusRejected:
		v := false
		return &v
	}
	return nil
}

// ParseApprovalStatus 大小写不敏感地解析状态，空串返回 ok=false
func ParseApprovalStatus(s string) (ApprovalStatus, bool) {
	st := ApprovalStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.IsValid()
}
