// marquee-player — клиент дисплея: пейринг с реестром, затем загрузка
// проекта и цикл оверрайдов расписания. Работает без оператора, поэтому
// любые сбои сводятся к «повторить позже».
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marquee/config"
	"marquee/internal/logs"
	"marquee/internal/player"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logs.Init(logs.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})

	pollEvery, err := time.ParseDuration(cfg.Player.PollInterval)
	if err != nil {
		log.Fatalf("player.poll_interval: %v", err)
	}
	scheduleEvery, err := time.ParseDuration(cfg.Player.ScheduleInterval)
	if err != nil {
		log.Fatalf("player.schedule_interval: %v", err)
	}

	runner := player.NewRunner(player.NewClient(cfg.Player.ServerURL), player.Options{
		StateDir:         cfg.Player.StateDir,
		PollInterval:     pollEvery,
		ScheduleInterval: scheduleEvery,
	})

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; cancel() }()

	go func() {
		// статусная строка дисплея: код пейринга и здоровье соединения
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
				logs.Logger.Infof("phase=%s code=%s status=%q",
					runner.Phase(), runner.Identity().Code, runner.Status())
			}
		}
	}()

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		logs.Logger.Errorf("player stopped: %v", err)
	}
}
