// Package config holds typed application configuration parsed from the
// environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application.
type Config struct {
	Server   Server   `envPrefix:"SERVER_"`
	Database Database `envPrefix:"DB_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	JWT      JWT      `envPrefix:"JWT_"`
	S3       S3       `envPrefix:"S3_"`
}

// Server contains HTTP server parameters.
type Server struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"8080"`
}

// Database contains Postgres connection parameters.
type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"plateshare"`
	Password string `env:"PASSWORD,required,notEmpty"`
	Name     string `env:"NAME" envDefault:"plateshare"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
}

// DSN renders the Postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Redis contains redis connection parameters. URL, when set, overrides
// the individual fields.
type Redis struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	URL      string `env:"URL"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret string `env:"SECRET,required,notEmpty"`
}

// S3 contains image storage parameters.
type S3 struct {
	Bucket string `env:"BUCKET_NAME" envDefault:"plateshare-recipe-images"`
	Region string `env:"REGION" envDefault:"us-east-1"`
}

// LoadConfig parses configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}
