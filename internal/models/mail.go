// internal/models/mail.go
package models

// MailMessage is a row in the write-only outbound mail queue. An external
// mailer consumes and delivers it; this service only enqueues.
type MailMessage struct {
	BaseModel
	To       string `json:"to" gorm:"size:255;not null;index"`
	Subject  string `json:"subject" gorm:"size:255;not null"`
	HTMLBody string `json:"html" gorm:"type:text;not null"`
}

func (MailMessage) TableName() string { return "mail" }
