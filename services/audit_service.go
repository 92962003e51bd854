package services

import (
	"encoding/json"

	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

// AuditService is the audit sink. Every state-changing action records
// what happened; a failed audit write never fails the action itself.
type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// Record appends one audit entry. Details may be nil.
func (as *AuditService) Record(action, resource, resourceID string, details map[string]interface{}) {
	entry := models.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Status:     "success",
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = string(raw)
		}
	}

	if err := as.DB.Create(&entry).Error; err != nil {
		utils.ErrorLogger.Printf("Audit log error (%s %s/%s): %v", action, resource, resourceID, err)
	}
}
