package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore — projects/<id>/{config,promotions,schedule}.json под data_dir.
// Один мьютекс сериализует read-modify-write; замена документа — tmp+rename.
type FileStore struct {
	root string
	mu   sync.Mutex
}

func NewFileStore(dataDir string) (*FileStore, error) {
	root := filepath.Join(dataDir, "projects")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("projects dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) docPath(projectID string, kind Kind) string {
	return filepath.Join(s.root, SanitizeProjectID(projectID), string(kind)+".json")
}

func (s *FileStore) Get(projectID string, kind Kind) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.docPath(projectID, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultBody(kind), nil
		}
		return nil, fmt.Errorf("read %s/%s: %w", projectID, kind, err)
	}
	return b, nil
}

func (s *FileStore) Put(projectID string, kind Kind, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(projectID, kind, body)
}

func (s *FileStore) write(projectID string, kind Kind, body []byte) error {
	dir := filepath.Join(s.root, SanitizeProjectID(projectID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("project dir: %w", err)
	}
	path := filepath.Join(dir, string(kind)+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("write %s/%s: %w", projectID, kind, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s/%s: %w", projectID, kind, err)
	}
	return nil
}

func (s *FileStore) ListProjects() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	out := []string{}
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	if len(out) == 0 {
		// как и оригинал: пустой каталог отдаёт дефолтный проект
		return []string{"default"}, nil
	}
	sort.Strings(out)
	return out, nil
}

func (s *FileStore) ProjectExists(projectID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exists(projectID), nil
}

func (s *FileStore) exists(projectID string) bool {
	fi, err := os.Stat(filepath.Join(s.root, SanitizeProjectID(projectID)))
	return err == nil && fi.IsDir()
}

func (s *FileStore) CreateProject(projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exists(projectID) {
		return ErrExists
	}
	for _, kind := range []Kind{KindConfig, KindPromotions, KindSchedule} {
		body := DefaultBody(kind)
		if src, err := os.ReadFile(s.docPath("default", kind)); err == nil {
			body = src
		}
		if err := s.write(projectID, kind, body); err != nil {
			return err
		}
	}
	return nil
}
