// Package player implements the display side of the pairing protocol and
// the schedule-driven override loop.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"marquee/internal/logs"
	"marquee/internal/registry"
	"marquee/internal/schedule"
)

// Фазы дисплея. ACTIVE → PENDING назначением не достигается:
// переназначение проекта оставляет дисплей активным, назад в пейринг
// его возвращает только удаление из реестра.
const (
	PhaseUnregistered = "unregistered"
	PhasePending      = "pending"
	PhaseActive       = "active"
)

type Options struct {
	StateDir         string
	PollInterval     time.Duration // reference: 3s
	ScheduleInterval time.Duration // reference: 60s
}

// Runner гоняет протокол пейринга и, после назначения, цикл расписания.
// Оба таймера никогда не работают одновременно: опрос останавливается до
// старта цикла расписания.
type Runner struct {
	client  *Client
	opts    Options
	state   *State
	preview *PreviewBus

	mu       sync.RWMutex
	phase    string
	status   string
	identity Identity
	project  string
	rules    []schedule.Rule
	promos   []map[string]any
}

func NewRunner(client *Client, opts Options) *Runner {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	if opts.ScheduleInterval <= 0 {
		opts.ScheduleInterval = 60 * time.Second
	}
	return &Runner{
		client:  client,
		opts:    opts,
		state:   NewState(),
		preview: NewPreviewBus(),
		phase:   PhaseUnregistered,
	}
}

func (r *Runner) Phase() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phase
}

// Status — строка здоровья соединения для экрана; сырые ошибки зрителю
// не показываются.
func (r *Runner) Status() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *Runner) Identity() Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.identity
}

func (r *Runner) Project() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.project
}

func (r *Runner) Promotions() []map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.promos
}

func (r *Runner) State() *State { return r.state }

func (r *Runner) Preview() *PreviewBus { return r.preview }

func (r *Runner) set(phase, status string) {
	r.mu.Lock()
	r.phase = phase
	r.status = status
	r.mu.Unlock()
}

// Run блокируется до отмены контекста. Ошибки транспорта не фатальны —
// протокол повторяет попытки тем же интервалом бесконечно.
func (r *Runner) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		ident, err := LoadOrCreateIdentity(r.opts.StateDir)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.identity = ident
		r.mu.Unlock()
		r.set(PhaseUnregistered, "Generating code...")

		if err := r.register(ctx, ident); err != nil {
			return err
		}
		r.set(PhasePending, "Waiting for assignment...")

		project, forgotten, err := r.pollUntilAssigned(ctx, ident)
		if err != nil {
			return err
		}
		if forgotten {
			// реестр нас забыл: новая личность, новый код, всё заново
			logs.Logger.Info("device forgotten by registry, re-pairing")
			if _, err := ResetIdentity(r.opts.StateDir); err != nil {
				return err
			}
			continue
		}

		r.mu.Lock()
		r.project = project
		r.mu.Unlock()
		r.set(PhaseActive, fmt.Sprintf("Playing project %s", project))

		r.runProject(ctx, project)
		return ctx.Err()
	}
	return ctx.Err()
}

func (r *Runner) register(ctx context.Context, ident Identity) error {
	name := "Display " + ident.Code
	for {
		_, err := r.client.Register(ctx, ident, name)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logs.Logger.Warnf("register: %v", err)
		r.set(PhaseUnregistered, "Connection error. Retrying...")
		if !sleepCtx(ctx, r.opts.PollInterval) {
			return ctx.Err()
		}
	}
}

// pollUntilAssigned опрашивает реестр с фиксированным интервалом.
// Возвращает либо назначенный проект, либо forgotten=true после 404.
func (r *Runner) pollUntilAssigned(ctx context.Context, ident Identity) (project string, forgotten bool, err error) {
	for {
		if !sleepCtx(ctx, r.opts.PollInterval) {
			return "", false, ctx.Err()
		}

		res, perr := r.client.Poll(ctx, ident.DeviceID)
		if perr != nil {
			switch {
			case errors.Is(perr, registry.ErrNotFound):
				return "", true, nil
			case ctx.Err() != nil:
				return "", false, ctx.Err()
			default:
				logs.Logger.Warnf("poll: %v", perr)
				r.set(PhasePending, "Connection error. Retrying...")
				continue
			}
		}

		r.set(PhasePending, "Waiting for assignment...")
		if res.AssignedProject != nil && *res.AssignedProject != "" {
			return *res.AssignedProject, false, nil
		}
	}
}

// runProject загружает документы проекта один раз и дальше живёт на
// таймере расписания и превью-сообщениях до остановки процесса.
func (r *Runner) runProject(ctx context.Context, projectID string) {
	cfg, err := r.client.FetchConfig(ctx, projectID)
	if err != nil {
		// назначение на несуществующий проект выглядит именно так;
		// показываем базовое состояние и живём дальше
		logs.Logger.Warnf("fetch config %s: %v", projectID, err)
	} else {
		r.state.Apply(cfg)
	}

	if promos, err := r.client.FetchPromotions(ctx, projectID); err != nil {
		logs.Logger.Warnf("fetch promotions %s: %v", projectID, err)
	} else {
		r.mu.Lock()
		r.promos = promos
		r.mu.Unlock()
	}

	// расписание читается один раз на загрузку проекта
	rules, err := r.client.FetchSchedule(ctx, projectID)
	if err != nil {
		logs.Logger.Warnf("fetch schedule %s: %v", projectID, err)
	}
	r.mu.Lock()
	r.rules = rules
	r.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-r.preview.C():
				if m.Type == MsgPreviewUpdate && m.Config != nil {
					r.state.Apply(m.Config)
				}
			}
		}
	}()

	Repeat(ctx, r.opts.ScheduleInterval, true, func(context.Context) {
		r.mu.RLock()
		rules := r.rules
		r.mu.RUnlock()
		if overrides, ok := schedule.Evaluate(rules, time.Now()); ok {
			r.state.Apply(overrides)
		}
	})
}
