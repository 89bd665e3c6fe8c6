package dto

import "github.com/shopspring/decimal"

// IntegrityMismatch reports one party whose cached balance disagrees with the
// recomputed sum. Reported, never auto-corrected.
type IntegrityMismatch struct {
	PartyID  string          `json:"party_id"`
	Name     string          `json:"name"`
	Cached   decimal.Decimal `json:"cached"`
	Computed decimal.Decimal `json:"computed"`
}

type IntegrityReport struct {
	PartiesChecked int                 `json:"parties_checked"`
	Mismatches     []IntegrityMismatch `json:"mismatches"`
	Consistent     bool                `json:"consistent"`
}

// ProfileRequest updates the UserProfile singleton in place.
type ProfileRequest struct {
	Name           string  `json:"name"            validate:"required,min=1"`
	Phone          *string `json:"phone"           validate:"omitempty,mobile"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	BusinessName   *string `json:"business_name"`
	CurrencySymbol string  `json:"currency_symbol" validate:"required"`
	DarkMode       bool    `json:"dark_mode"`
	Notifications  bool    `json:"notifications"`
	BackupEnabled  bool    `json:"backup_enabled"`
}

type SettingsRequest struct {
	Language        string `json:"language"         validate:"required"`
	ThemeColor      string `json:"theme_color"      validate:"required"`
	BackupFrequency string `json:"backup_frequency" validate:"required,oneof=daily weekly monthly"`
	RetentionDays   int    `json:"retention_days"   validate:"min=1"`
}

type ProfileResponse struct {
	Name           string  `json:"name"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	BusinessName   *string `json:"business_name,omitempty"`
	CurrencySymbol string  `json:"currency_symbol"`
	DarkMode       bool    `json:"dark_mode"`
	Notifications  bool    `json:"notifications"`
	BackupEnabled  bool    `json:"backup_enabled"`
}

type SettingsResponse struct {
	AppVersion      string `json:"app_version"`
	Language        string `json:"language"`
	ThemeColor      string `json:"theme_color"`
	BackupFrequency string `json:"backup_frequency"`
	RetentionDays   int    `json:"retention_days"`
}

// Snapshot is the bulk-export structure: everything needed to rebuild the
// ledger, internally consistent at capture time.
type Snapshot struct {
	ExportedAt   string                `json:"exported_at"`
	Profile      ProfileResponse       `json:"profile"`
	Settings     SettingsResponse      `json:"settings"`
	Parties      []PartyResponse       `json:"parties"`
	Transactions []TransactionResponse `json:"transactions"`
}
