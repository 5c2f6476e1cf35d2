package registry

import (
	"errors"
	"time"

	"marquee/internal/models"

	"gorm.io/gorm"
)

// GormStore — реестр в БД (mysql/postgres). Мутации идут в транзакциях,
// чтобы цикл read-modify-write был атомарен, как и в файловом режиме.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func fromModel(m models.Device) Device {
	return Device{
		ID:        m.DeviceID,
		Code:      m.Code,
		Name:      m.Name,
		ProjectID: m.ProjectID,
		Status:    m.Status,
		LastSeen:  m.LastSeen,
	}
}

func (s *GormStore) Register(d Device) (Device, error) {
	var out Device
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var m models.Device
		err := tx.Where("device_id = ?", d.ID).First(&m).Error
		if err == nil {
			// уже зарегистрирован — первая регистрация выигрывает
			out = fromModel(m)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		name := d.Name
		if name == "" {
			var count int64
			if err := tx.Model(&models.Device{}).Count(&count).Error; err != nil {
				return err
			}
			name = defaultName(int(count) + 1)
		}

		m = models.Device{
			DeviceID: d.ID,
			Code:     d.Code,
			Name:     name,
			Status:   StatusPending,
			LastSeen: time.Now(),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out = fromModel(m)
		return nil
	})
	return out, err
}

func (s *GormStore) Poll(id string) (PollResult, error) {
	var out PollResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var m models.Device
		if err := tx.Where("device_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&m).Update("last_seen", time.Now()).Error; err != nil {
			return err
		}
		out = PollResult{AssignedProject: m.ProjectID, Status: m.Status}
		return nil
	})
	return out, err
}

func (s *GormStore) List() ([]Device, error) {
	var list []models.Device
	if err := s.db.Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]Device, 0, len(list))
	for _, m := range list {
		out = append(out, fromModel(m))
	}
	return out, nil
}

func (s *GormStore) Assign(id, projectID string) error {
	res := s.db.Model(&models.Device{}).
		Where("device_id = ?", id).
		Updates(map[string]any{"project_id": projectID, "status": StatusActive})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(id string) error {
	// идемпотентно: ноль затронутых строк — не ошибка
	return s.db.Unscoped().Where("device_id = ?", id).Delete(&models.Device{}).Error
}
