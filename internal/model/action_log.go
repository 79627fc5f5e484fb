package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction names a workstation action recorded in the audit trail.
type AuditAction string

const (
	ActionLogin              AuditAction = "login"
	ActionLogout             AuditAction = "logout"
	ActionRegisterPatient    AuditAction = "register_patient"
	ActionCreatePrescription AuditAction = "create_prescription"
	ActionUpdatePrescription AuditAction = "update_prescription_status"
	ActionUploadLabReport    AuditAction = "upload_lab_report"
	ActionDispenseMedicine   AuditAction = "dispense_medicine"
	ActionCreateUser         AuditAction = "create_user"
	ActionUpdateUser         AuditAction = "update_user"
	ActionDeleteUser         AuditAction = "delete_user"
)

// ActionLog is one audit entry. Every attempt is logged, whether it
// succeeded or failed.
type ActionLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Actor        string         `json:"actor" gorm:"type:varchar(100);not null;index"`
	Role         Role           `json:"role" gorm:"type:varchar(20)"`
	Action       AuditAction    `json:"action" gorm:"type:varchar(40);not null;index"`
	Target       string         `json:"target,omitempty" gorm:"type:varchar(255)"`
	Success      bool           `json:"success" gorm:"not null;index"`
	ErrorMessage string         `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (l *ActionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
