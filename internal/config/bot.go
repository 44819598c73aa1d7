package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	APIURL         string `env:"BOT_API_URL" envDefault:"http://localhost:8080"`
	Nickname       string `env:"BOT_NICKNAME" envDefault:"beginner"`
	Skill          string `env:"BOT_SKILL" envDefault:"beginner"`
	Sessions       int    `env:"BOT_SESSIONS" envDefault:"1"`
	EventsPerBatch int    `env:"BOT_EVENTS_PER_BATCH" envDefault:"20"`
	Batches        int    `env:"BOT_BATCHES" envDefault:"5"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
