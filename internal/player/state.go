package player

import "sync"

// State — презентационное состояние дисплея в памяти. Оверрайды
// расписания и превью-сообщения мутируют только его; персистентный
// config.json они не трогают никогда.
type State struct {
	mu     sync.RWMutex
	fields map[string]any
}

func NewState() *State {
	return &State{fields: map[string]any{}}
}

// Apply — слияние по полям: отсутствующий или пустой ключ оставляет
// прежнее значение (семантика "keep previous value").
func (s *State) Apply(overrides map[string]any) {
	if len(overrides) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range overrides {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok && str == "" {
			continue
		}
		s.fields[k] = v
	}
}

func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.fields[key]
	return v, ok
}

func (s *State) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}
