package model

// Manager 经理凭证，对应 managers
// manager_id 即登录时选择的岗位编号（如 OPS-SM1）
type Manager struct {
	ManagerID    string  `gorm:"type:varchar(50);primaryKey"  json:"manager_id"`
	GroupName    string  `gorm:"type:varchar(100);not null"   json:"group_name"`
	Title        string  `gorm:"type:varchar(100);not null"   json:"title"`
	FullName     string  `gorm:"type:varchar(100);not null"   json:"full_name"`
	Department   string  `gorm:"type:varchar(60);not null"    json:"department"`
	Section      *string `gorm:"type:varchar(60)"             json:"section,omitempty"`
	PasswordHash string  `gorm:"type:varchar(255);not null"   json:"-"`
	SortOrder    int     `gorm:"not null;default:0"           json:"sort_order"`
	BaseModel
}

// TableName 指定表名
func (Manager) TableName() string { return "managers" }

// SectionValue 管辖班组，空串表示管辖全部
func (m *Manager) SectionValue() string {
	if m.Section == nil {
		return ""
	}
	return *m.Section
}

// HRUser HR 凭证，对应 hr_users
type HRUser struct {
	HRUserID     string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"hr_user_id"`
	Username     string      `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string      `gorm:"type:varchar(255);not null"                     json:"-"`
	Type         string      `gorm:"type:varchar(20);not null"                      json:"type"`
	Departments  StringArray `gorm:"type:text[]"                                    json:"departments,omitempty"`
	BaseModel
}

// TableName 指定表名
func (HRUser) TableName() string { return "hr_users" }
