package model

import (
	"encoding/json"
	"time"
)

// DateLayout 登记日期格式（日粒度）
const DateLayout = "2006-01-02"

// ShiftEntry 班次登记，对应 shift_entries
type ShiftEntry struct {
	EntryID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	EmployeeID  string         `gorm:"type:uuid;not null"                             json:"employee_id"`
	EntryDate   time.Time      `gorm:"type:date;not null"                             json:"-"`
	ShiftType   ShiftType      `gorm:"type:varchar(30);not null"                      json:"shift_type"`
	OtherRemark *string        `gorm:"type:varchar(500)"                              json:"other_remark,omitempty"`
	Status      ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ApprovedBy  *string        `gorm:"type:varchar(50)"                               json:"approved_by,omitempty"`
	ApprovedAt  *time.Time     `json:"approved_at,omitempty"`
	BaseModel

	// 关联
	Employee *Profile `gorm:"foreignKey:EmployeeID;references:ProfileID" json:"employee,omitempty"`
}

// TableName 指定表名
func (ShiftEntry) TableName() string { return "shift_entries" }

// DateString 登记日期 YYYY-MM-DD
func (e *ShiftEntry) DateString() string {
	return e.EntryDate.Format(DateLayout)
}

// MarshalJSON 输出日期字符串并附带旧版三态字段 approved
func (e ShiftEntry) MarshalJSON() ([]byte, error) {
	type alias ShiftEntry
	return json.Marshal(struct {
		alias
		EntryDate string `json:"entry_date"`
		Approved  *bool  `json:"approved"`
	}{
		alias:     alias(e),
		EntryDate: e.DateString(),
		Approved:  e.Status.Legacy(),
	})
}
