package models

import (
	"time"

	"github.com/lib/pq"
)

type Profile struct {
	ID          string         `json:"id" gorm:"primaryKey;type:text"`
	DisplayName string         `json:"displayName" gorm:"type:text;not null"`
	Email       string         `json:"email" gorm:"type:text"`
	ProfileURL  string         `json:"profileUrl" gorm:"type:text"`
	SettingsURL string         `json:"settingsUrl" gorm:"type:text"`
	Image       string         `json:"image" gorm:"type:text"`
	Bio         string         `json:"bio" gorm:"type:text"`
	Location    string         `json:"location" gorm:"type:text"`
	Websites    pq.StringArray `json:"websites" gorm:"type:text[]"`
	CDate       time.Time      `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate       time.Time      `json:"mdate" gorm:"autoUpdateTime"`
}
