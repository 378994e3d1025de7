package models

import "time"

// TwoFactorStatus represents an organization's 2FA enforcement setting
type TwoFactorStatus string

const (
	TwoFactorEnabled  TwoFactorStatus = "enabled"
	TwoFactorDisabled TwoFactorStatus = "disabled"
	// TwoFactorUnknown means the setting could not be read, usually because
	// the scraping token lacked permission to inspect the organization.
	TwoFactorUnknown TwoFactorStatus = "unknown"
)

// TwoFactorStatusFromFlag maps the tri-state two_factor_requirement_enabled
// field to a report status. A nil pointer covers both an absent field and an
// explicit JSON null.
func TwoFactorStatusFromFlag(enabled *bool) TwoFactorStatus {
	if enabled == nil {
		return TwoFactorUnknown
	}
	if *enabled {
		return TwoFactorEnabled
	}
	return TwoFactorDisabled
}

// OrgTwoFactorStatus represents one row of the organization 2FA report
type OrgTwoFactorStatus struct {
	Date         time.Time       `json:"date"`
	Organization string          `json:"organization"`
	TwoFactor    TwoFactorStatus `json:"2fa"`
}
