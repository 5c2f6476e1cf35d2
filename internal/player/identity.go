package player

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Алфавит кода пейринга: без визуально похожих 0/O/1/I.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 4

// Identity — локальная личность дисплея: генерируется один раз и
// переживает рестарты; новая выдаётся только после того, как реестр
// забыл устройство.
type Identity struct {
	DeviceID string `json:"deviceId"`
	Code     string `json:"code"`
}

func identityPath(stateDir string) string {
	return filepath.Join(stateDir, "identity.json")
}

func newIdentity() Identity {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return Identity{DeviceID: uuid.NewString(), Code: string(code)}
}

// LoadOrCreateIdentity возвращает сохранённую личность либо создаёт и
// сохраняет новую.
func LoadOrCreateIdentity(stateDir string) (Identity, error) {
	b, err := os.ReadFile(identityPath(stateDir))
	if err == nil {
		var id Identity
		if jerr := json.Unmarshal(b, &id); jerr == nil && id.DeviceID != "" && id.Code != "" {
			return id, nil
		}
		// битый файл — перегенерируем
	} else if !os.IsNotExist(err) {
		return Identity{}, fmt.Errorf("read identity: %w", err)
	}
	return ResetIdentity(stateDir)
}

// ResetIdentity генерирует новую личность и перезаписывает файл.
func ResetIdentity(stateDir string) (Identity, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return Identity{}, fmt.Errorf("state dir: %w", err)
	}
	id := newIdentity()
	b, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return Identity{}, err
	}
	path := identityPath(stateDir)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return Identity{}, fmt.Errorf("write identity: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return Identity{}, fmt.Errorf("replace identity: %w", err)
	}
	return id, nil
}
