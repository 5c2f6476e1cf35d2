package player

import (
	"context"
	"time"
)

// Repeat — повторяющаяся задача: фиксированный интервал, колбэк, отмена
// через контекст. Без бэкоффа и без лимита попыток — дисплей работает без
// оператора, повторять можно вечно.
func Repeat(ctx context.Context, interval time.Duration, immediate bool, tick func(context.Context)) {
	if immediate {
		tick(ctx)
		if ctx.Err() != nil {
			return
		}
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			tick(ctx)
		}
	}
}

// sleepCtx ждёт interval; false — если контекст отменили раньше.
func sleepCtx(ctx context.Context, interval time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(interval):
		return true
	}
}
