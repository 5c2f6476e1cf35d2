package models

import (
	"time"

	"gorm.io/gorm"
)

// Device — зарегистрированный дисплей (строка таблицы для режима БД).
type Device struct {
	gorm.Model
	DeviceID  string `gorm:"column:device_id;uniqueIndex"`
	Code      string `gorm:"size:8"`
	Name      string
	ProjectID *string `gorm:"column:project_id"`
	Status    string
	LastSeen  time.Time
}
