package model

import "time"

// Profile 员工档案（身份记录），对应 profiles
type Profile struct {
	ProfileID   string     `gorm:"type:uuid;primaryKey"                         json:"profile_id"`
	CustomID    string     `gorm:"type:varchar(50);not null;uniqueIndex"        json:"custom_id"`
	FullName    string     `gorm:"type:varchar(100);not null"                   json:"full_name"`
	Department  string     `gorm:"type:varchar(60);not null"                    json:"department"`
	Section     *string    `gorm:"type:varchar(60)"                             json:"section,omitempty"` // 即所选班组
	ShiftSystem *string    `gorm:"type:varchar(20)"                             json:"shift_system,omitempty"`
	ShiftGroup  *string    `gorm:"type:varchar(60)"                             json:"shift_group,omitempty"`
	Role        string     `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	IsApproved  bool       `gorm:"not null;default:false"                       json:"is_approved"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ApprovedBy  *string    `gorm:"type:varchar(50)"                             json:"approved_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Profile) TableName() string { return "profiles" }

// SectionValue 班组，未设置时为空串
func (p *Profile) SectionValue() string {
	if p.Section == nil {
		return ""
	}
	return *p.Section
}

// CanSubmitShifts 仅已审批的员工可以登记班次
func (p *Profile) CanSubmitShifts() bool {
	return p.Role == RoleEmployee && p.IsApproved
}
