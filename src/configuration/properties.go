package configuration

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	Properties struct {
		LogLevel string `env:"LOG_LEVEL" envDefault:"DEBUG"`

		Server HttpServerProperties `envPrefix:"HTTP_"`
		Mongo  MongoProperties      `envPrefix:"MONGO_"`
		S3     S3Properties         `envPrefix:"S3_"`
		Auth   AuthProperties       `envPrefix:"AUTH_"`
	}

	HttpServerProperties struct {
		Name        string        `env:"NAME" envDefault:"carscout"`
		Port        string        `env:"PORT" envDefault:"8088"`
		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
		CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	MongoProperties struct {
		URI            string        `env:"URI" envDefault:"mongodb://localhost:27017"`
		Database       string        `env:"DATABASE" envDefault:"carscout"`
		ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
	}

	S3Properties struct {
		Host      string `env:"HOST" envDefault:"s3.minio.com"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"car-images"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
	}

	AuthProperties struct {
		Secret   string        `env:"SECRET"`
		Issuer   string        `env:"ISSUER" envDefault:"carscout"`
		TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	}
)

func ReadProperties() *Properties {
	config := &Properties{}

	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("read config error: %w", err))
	}
	return config
}
