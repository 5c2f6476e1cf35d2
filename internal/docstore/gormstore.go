package docstore

import (
	"errors"

	"marquee/internal/models"

	"gorm.io/gorm"
)

// GormStore — документы проектов одной таблицей (project_id, kind, body).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(projectID string, kind Kind) ([]byte, error) {
	var doc models.ProjectDocument
	err := s.db.Where("project_id = ? AND kind = ?", SanitizeProjectID(projectID), string(kind)).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultBody(kind), nil
		}
		return nil, err
	}
	return []byte(doc.Body), nil
}

func (s *GormStore) Put(projectID string, kind Kind, body []byte) error {
	pid := SanitizeProjectID(projectID)
	return s.db.Transaction(func(tx *gorm.DB) error {
		var doc models.ProjectDocument
		err := tx.Where("project_id = ? AND kind = ?", pid, string(kind)).First(&doc).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			doc = models.ProjectDocument{ProjectID: pid, Kind: string(kind), Body: string(body)}
			return tx.Create(&doc).Error
		}
		doc.Body = string(body)
		return tx.Save(&doc).Error
	})
}

func (s *GormStore) ListProjects() ([]string, error) {
	var ids []string
	err := s.db.Model(&models.ProjectDocument{}).
		Distinct("project_id").
		Order("project_id").
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []string{"default"}, nil
	}
	return ids, nil
}

func (s *GormStore) ProjectExists(projectID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.ProjectDocument{}).
		Where("project_id = ?", SanitizeProjectID(projectID)).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CreateProject(projectID string) error {
	exists, err := s.ProjectExists(projectID)
	if err != nil {
		return err
	}
	if exists {
		return ErrExists
	}
	for _, kind := range []Kind{KindConfig, KindPromotions, KindSchedule} {
		body, err := s.Get("default", kind)
		if err != nil {
			body = DefaultBody(kind)
		}
		if err := s.Put(projectID, kind, body); err != nil {
			return err
		}
	}
	return nil
}
