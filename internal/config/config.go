package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string        `mapstructure:"SERVER_PORT"`
	BackendURL      string        `mapstructure:"BACKEND_URL"`
	BackendTimeout  time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	SessionSecret   string        `mapstructure:"SESSION_SECRET"`
	S3Endpoint      string        `mapstructure:"S3_ENDPOINT"`
	S3Region        string        `mapstructure:"S3_REGION"`
	S3AccessKey     string        `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey     string        `mapstructure:"S3_SECRET_KEY"`
	S3PostBucket    string        `mapstructure:"S3_POST_BUCKET"`
	S3AvatarBucket  string        `mapstructure:"S3_AVATAR_BUCKET"`
	S3PublicBaseURL string        `mapstructure:"S3_PUBLIC_BASE_URL"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("BACKEND_URL", "http://localhost:3000")
	viper.SetDefault("BACKEND_TIMEOUT", 15*time.Second)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("SESSION_SECRET", "dev-secret-change-me")
	viper.SetDefault("S3_ENDPOINT", "http://localhost:9000")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_POST_BUCKET", "posts")
	viper.SetDefault("S3_AVATAR_BUCKET", "avatar")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
