package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"ERROR"`
	Endpoint string        `yaml:"tasks_endpoint" env:"TASKS_ENDPOINT" env-default:"http://localhost:8080/graphql"`
	Timeout  time.Duration `yaml:"timeout" env:"TASKS_TIMEOUT" env-default:"5s"`
}

func MustLoad(configPath string) Config {
	var cfg Config

	// empty path: env only
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
		return cfg
	}

	// try the file first, fall back to env when it is missing
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatalf("cannot read env: %s", err)
			}
			return cfg
		}
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}

	return cfg
}
