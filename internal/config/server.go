package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	IngestSecret   string        `env:"INGEST_SECRET,required,notEmpty"`
	IngestTokenTTL time.Duration `env:"INGEST_TOKEN_TTL" envDefault:"1h"`

	// Nicknames used by automated self-play runs; their gameplay is never stored.
	ReservedNicknames []string `env:"RESERVED_NICKNAMES" envDefault:"beginner,medium,master" envSeparator:","`

	BlobDriver     string        `env:"BLOB_DRIVER" envDefault:"gocloud"`
	BlobURL        string        `env:"BLOB_URL" envDefault:"mem://"`
	S3Bucket       string        `env:"S3_BUCKET"`
	S3Region       string        `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint     string        `env:"S3_ENDPOINT"`
	S3UsePathStyle bool          `env:"S3_USE_PATH_STYLE" envDefault:"false"`
	ReplayURLTTL   time.Duration `env:"REPLAY_URL_TTL" envDefault:"1h"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
