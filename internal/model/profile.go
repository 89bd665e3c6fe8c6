package model

import "time"

// SingletonID is the fixed primary key for UserProfile and AppSettings rows.
const SingletonID uint = 1

// UserProfile is a one-row-per-installation singleton (ID is always 1).
// Created with defaults on first run, updated in place.
type UserProfile struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	Phone          *string
	Email          *string
	BusinessName   *string
	CurrencySymbol string `gorm:"type:varchar(8);not null;default:'৳'"`
	DarkMode       bool   `gorm:"not null;default:false"`
	Notifications  bool   `gorm:"not null;default:true"`
	BackupEnabled  bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (UserProfile) TableName() string { return "user_profile" }

// AppSettings is the second installation singleton: app-level knobs not tied
// to the owner's identity.
type AppSettings struct {
	ID              uint   `gorm:"primaryKey"`
	AppVersion      string `gorm:"type:varchar(20);not null;default:'1.0.0'"`
	Language        string `gorm:"type:varchar(10);not null;default:'en'"`
	ThemeColor      string `gorm:"type:varchar(20);not null;default:'default'"`
	BackupFrequency string `gorm:"type:varchar(10);not null;default:'daily'"`
	RetentionDays   int    `gorm:"not null;default:30"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (AppSettings) TableName() string { return "app_settings" }

// DefaultProfile returns the documented fallback values used when the stored
// row is absent or fails the shape check.
func DefaultProfile() *UserProfile {
	return &UserProfile{
		ID:             SingletonID,
		Name:           "Ledger Owner",
		CurrencySymbol: "৳",
		Notifications:  true,
	}
}

// DefaultSettings mirrors DefaultProfile for the AppSettings singleton.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		ID:              SingletonID,
		AppVersion:      "1.0.0",
		Language:        "en",
		ThemeColor:      "default",
		BackupFrequency: "daily",
		RetentionDays:   30,
	}
}
