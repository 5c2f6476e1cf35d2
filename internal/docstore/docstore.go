// Package docstore persists per-project JSON documents: config, promotions
// and schedule. Documents are schema-light; the store moves raw JSON.
package docstore

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindConfig     Kind = "config"
	KindPromotions Kind = "promotions"
	KindSchedule   Kind = "schedule"
)

var (
	ErrNotFound = errors.New("project not found")
	ErrExists   = errors.New("project already exists")
)

// Store — контракт хранилища документов. Get для отсутствующего документа
// возвращает дефолт ({} или []), а не ошибку; Put заменяет документ целиком.
type Store interface {
	Get(projectID string, kind Kind) ([]byte, error)
	Put(projectID string, kind Kind, body []byte) error
	ListProjects() ([]string, error)
	// CreateProject сеет документы из проекта "default", если тот есть.
	CreateProject(projectID string) error
	ProjectExists(projectID string) (bool, error)
}

// DefaultBody — пустой документ данного вида.
func DefaultBody(kind Kind) []byte {
	if kind == KindConfig {
		return []byte("{}")
	}
	return []byte("[]")
}

// SanitizeProjectID выбрасывает всё, кроме [A-Za-z0-9_-]: id идёт в путь
// файла, иначе возможен выход за каталог проектов.
func SanitizeProjectID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
