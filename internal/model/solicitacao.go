package model

import (
	"fmt"
	"strings"
	"time"
)

// Valid status values. These four literals are the only ones accepted
// anywhere in the system.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusPurchased  = "Purchased"
	StatusCancelled  = "Cancelled"
)

// ValidStatuses lists the accepted statuses in display order.
var ValidStatuses = []string{StatusPending, StatusInProgress, StatusPurchased, StatusCancelled}

// IsValidStatus reports whether s is one of the four accepted statuses.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Maximum lengths for the bounded text columns.
const (
	MaxRequesterNameLen = 255
	MaxDepartmentLen    = 100
	MaxCostCenterLen    = 50
)

// SolicitacaoModel is one purchase request row. The four text fields are
// stored trimmed and upper-cased; requested_at defaults to creation time.
type SolicitacaoModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RequesterName string    `gorm:"column:requester_name;type:varchar(255);not null" json:"requesterName"`
	Department    string    `gorm:"type:varchar(100);not null;index"  json:"department"`
	CostCenter    string    `gorm:"column:cost_center;type:varchar(50);not null" json:"costCenter"`
	Equipment     string    `gorm:"type:text;not null" json:"equipment"`
	RequestedAt   time.Time `gorm:"column:requested_at;not null;index" json:"requestedAt"`
	Status        string    `gorm:"type:varchar(20);not null;default:Pending;index" json:"status"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName pins the table name used by every statement.
func (SolicitacaoModel) TableName() string {
	return "solicitacoes"
}

// FieldValues carries the mutable field values under validation. A nil
// pointer means the field was not supplied.
type FieldValues struct {
	RequesterName *string
	Department    *string
	CostCenter    *string
	Equipment     *string
	Status        *string
}

// CollectViolations returns every validation failure for the supplied
// values, in field declaration order, rather than stopping at the first.
// With requireAll set, absent fields are violations too (create); without
// it only supplied fields are checked (partial update).
func CollectViolations(values FieldValues, requireAll bool) []string {
	var violations []string

	checkText := func(name string, v *string, maxLen int) {
		if v == nil {
			if requireAll {
				violations = append(violations, name+" is required")
			}
			return
		}
		if strings.TrimSpace(*v) == "" {
			violations = append(violations, name+" is required")
			return
		}
		if maxLen > 0 && len(*v) > maxLen {
			violations = append(violations, fmt.Sprintf("%s must be at most %d characters", name, maxLen))
		}
	}

	checkText("requesterName", values.RequesterName, MaxRequesterNameLen)
	checkText("department", values.Department, MaxDepartmentLen)
	checkText("costCenter", values.CostCenter, MaxCostCenterLen)
	checkText("equipment", values.Equipment, 0)

	if values.Status != nil && !IsValidStatus(*values.Status) {
		violations = append(violations, "status must be one of "+strings.Join(ValidStatuses, ", "))
	}

	return violations
}
