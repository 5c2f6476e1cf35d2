package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Server struct {
	Address  string `mapstructure:"address"`
	HTTPPort string `mapstructure:"http_port"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type Database struct {
	// "mysql" | "postgres" | "" (нет БД — файловые хранилища)
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type Storage struct {
	// Каталог с devices.json и projects/<id>/*.json (файловый режим).
	DataDir string `mapstructure:"data_dir"`
}

type Player struct {
	ServerURL        string `mapstructure:"server_url"`
	StateDir         string `mapstructure:"state_dir"`
	PollInterval     string `mapstructure:"poll_interval"`
	ScheduleInterval string `mapstructure:"schedule_interval"`
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	Logging  Logging  `mapstructure:"logging"`
	Database Database `mapstructure:"database"`
	Storage  Storage  `mapstructure:"storage"`
	Player   Player   `mapstructure:"player"`
}

// Load читает marquee.yaml (рабочая директория или /etc/marquee) и
// переменные окружения MARQUEE_*.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("marquee")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/marquee")

	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("database.driver", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("player.server_url", "http://localhost:8080")
	v.SetDefault("player.state_dir", "./player-state")
	v.SetDefault("player.poll_interval", "3s")
	v.SetDefault("player.schedule_interval", "60s")

	if err := v.ReadInConfig(); err != nil {
		// конфиг-файл опционален; ошибки парсинга — нет
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
