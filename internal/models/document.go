package models

import "gorm.io/gorm"

// ProjectDocument — один JSON-документ проекта (config|promotions|schedule)
// для режима БД. Body хранится как есть, сервер схему не навязывает.
type ProjectDocument struct {
	gorm.Model
	ProjectID string `gorm:"column:project_id;uniqueIndex:idx_project_kind,priority:1"`
	Kind      string `gorm:"uniqueIndex:idx_project_kind,priority:2"`
	Body      string `gorm:"type:text"`
}
