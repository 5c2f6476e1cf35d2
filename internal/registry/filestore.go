package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore держит весь реестр в одном devices.json. Полный цикл
// read-modify-write выполняется под одним мьютексом, запись — во
// временный файл с последующим rename, чтобы документ либо заменился
// целиком, либо остался прежним.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("registry dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, "devices.json")}, nil
}

// load — отсутствие файла не ошибка: пустой реестр.
func (s *FileStore) load() ([]Device, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var devices []Device
	if err := json.Unmarshal(b, &devices); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return devices, nil
}

func (s *FileStore) save(devices []Device) error {
	if devices == nil {
		devices = []Device{}
	}
	b, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace registry: %w", err)
	}
	return nil
}

func (s *FileStore) Register(d Device) (Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := s.load()
	if err != nil {
		return Device{}, err
	}
	for _, ex := range devices {
		if ex.ID == d.ID {
			return ex, nil
		}
	}

	if d.Name == "" {
		d.Name = defaultName(len(devices) + 1)
	}
	d.ProjectID = nil
	d.Status = StatusPending
	d.LastSeen = time.Now()

	devices = append(devices, d)
	if err := s.save(devices); err != nil {
		return Device{}, err
	}
	return d, nil
}

func (s *FileStore) Poll(id string) (PollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := s.load()
	if err != nil {
		return PollResult{}, err
	}
	for i := range devices {
		if devices[i].ID == id {
			devices[i].LastSeen = time.Now()
			if err := s.save(devices); err != nil {
				return PollResult{}, err
			}
			return PollResult{
				AssignedProject: devices[i].ProjectID,
				Status:          devices[i].Status,
			}, nil
		}
	}
	return PollResult{}, ErrNotFound
}

func (s *FileStore) List() ([]Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := s.load()
	if err != nil {
		return nil, err
	}
	if devices == nil {
		devices = []Device{}
	}
	return devices, nil
}

func (s *FileStore) Assign(id, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := s.load()
	if err != nil {
		return err
	}
	for i := range devices {
		if devices[i].ID == id {
			devices[i].ProjectID = &projectID
			devices[i].Status = StatusActive
			return s.save(devices)
		}
	}
	return ErrNotFound
}

func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := s.load()
	if err != nil {
		return err
	}
	out := devices[:0]
	for _, d := range devices {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return s.save(out)
}
