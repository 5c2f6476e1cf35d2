// Package schedule evaluates day-parting rules against wall-clock time.
package schedule

import "time"

// Rule — окно времени с частичным оверрайдом конфига.
// StartTime/EndTime — "HH:MM", 24h, локальное время; переход через полночь
// одним правилом не выражается.
type Rule struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	StartTime       string         `json:"startTime"`
	EndTime         string         `json:"endTime"`
	ConfigOverrides map[string]any `json:"configOverrides"`
	Active          bool           `json:"active"`
}

// Matches — полузакрытый интервал [start, end): правило с end "17:00"
// в "17:00" уже не действует. Сравнение лексикографическое, поэтому
// start == end не совпадает никогда (пустой интервал).
func (r Rule) Matches(hhmm string) bool {
	return r.Active && r.StartTime <= hhmm && hhmm < r.EndTime
}

// Evaluate возвращает оверрайды первого подходящего правила в порядке
// списка. Пересекающиеся правила не сливаются — действует только первое.
// Гранулярность — минута.
func Evaluate(rules []Rule, now time.Time) (map[string]any, bool) {
	cur := now.Format("15:04")
	for _, r := range rules {
		if r.Matches(cur) {
			return r.ConfigOverrides, true
		}
	}
	return nil, false
}
