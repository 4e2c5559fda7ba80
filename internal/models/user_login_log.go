package models

import "time"

// UserLoginLog 登录审计记录，成功与失败都会写入
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"` // 失败且账号不存在时为 0
	Email      string    `gorm:"type:varchar(255);index;not null" json:"email"`
	Status     string    `gorm:"type:varchar(16);index;not null" json:"status"`
	FailReason string    `gorm:"type:varchar(32)" json:"fail_reason,omitempty"`
	ClientIP   string    `gorm:"type:varchar(64)" json:"client_ip"`
	UserAgent  string    `gorm:"type:text" json:"user_agent"`
	RequestID  string    `gorm:"type:varchar(64)" json:"request_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
