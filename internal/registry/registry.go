// Package registry holds paired displays and the assignment state machine:
// UNREGISTERED → PENDING → ACTIVE. Reassignment keeps a device active;
// only deletion sends it back through pairing.
package registry

import (
	"errors"
	"fmt"
	"time"
)

const (
	StatusPending = "pending"
	StatusActive  = "active"
)

var ErrNotFound = errors.New("device not found")

// Device — DTO, с которым работают хендлеры и хранилища.
type Device struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	ProjectID *string   `json:"projectId"`
	Status    string    `json:"status"`
	LastSeen  time.Time `json:"lastSeen"`
}

// PollResult — снимок назначения для опрашивающего дисплея.
type PollResult struct {
	AssignedProject *string `json:"assignedProject"`
	Status          string  `json:"status"`
}

// Store — контракт хранилища устройств. Каждый метод — атомарный цикл
// read-modify-write над всей коллекцией: конкурентные register/assign
// не должны терять записи друг друга.
type Store interface {
	// Register идемпотентен: существующая запись возвращается как есть,
	// первая регистрация выигрывает (code/name не перезаписываются).
	// Пустое имя заменяется на "Display N" по текущему размеру реестра.
	Register(d Device) (Device, error)

	// Poll обновляет lastSeen и возвращает текущее назначение.
	// ErrNotFound значит, что дисплей забыт и должен пройти пейринг заново.
	Poll(id string) (PollResult, error)

	List() ([]Device, error)

	// Assign ставит projectId и форсирует status=active. Существование
	// проекта не проверяется — дисплей увидит это как ошибку загрузки.
	Assign(id, projectID string) error

	// Delete идемпотентен: удаление отсутствующего id — не ошибка.
	Delete(id string) error
}

func defaultName(n int) string {
	return fmt.Sprintf("Display %d", n)
}
