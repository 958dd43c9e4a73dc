// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	World     WorldConfig
	Streaming StreamingConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type WorldConfig struct {
	Seed         int64
	Size         int
	BlockSize    int
	Octaves      int
	SampleStride int
}

type StreamingConfig struct {
	ChunkSize       int
	TileSize        float64
	Radius          float64
	SpatialCellSize float64
	TickInterval    time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		World: WorldConfig{
			Seed:         getEnvInt64("WORLD_SEED", 12345),
			Size:         getEnvInt("WORLD_SIZE", 1000),
			BlockSize:    getEnvInt("WORLD_BLOCK_SIZE", 64),
			Octaves:      getEnvInt("WORLD_OCTAVES", 4),
			SampleStride: getEnvInt("WORLD_SAMPLE_STRIDE", 8),
		},
		Streaming: StreamingConfig{
			ChunkSize:       getEnvInt("CHUNK_SIZE", 32),
			TileSize:        getEnvFloat("TILE_SIZE", 4.0),
			Radius:          getEnvFloat("STREAM_RADIUS", 200.0),
			SpatialCellSize: getEnvFloat("SPATIAL_CELL_SIZE", 64.0),
			TickInterval:    getEnvDuration("STREAM_TICK_INTERVAL", 250*time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:  getEnvStr("LOG_LEVEL", "info"),
			Format: getEnvStr("LOG_FORMAT", "json"),
		},
	}
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
