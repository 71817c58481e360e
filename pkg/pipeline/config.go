package pipeline

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages run configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Algorithm parameters
	v.SetDefault("algorithm.counter_strategy", "auto")
	v.SetDefault("algorithm.dense_limit", 8192)
	v.SetDefault("algorithm.key_bits", 64)
	v.SetDefault("algorithm.verify", false)
	v.SetDefault("algorithm.canonical_edges", true)

	// Performance parameters
	v.SetDefault("performance.parallel", true)
	v.SetDefault("performance.chunk_size", 1024)
	v.SetDefault("performance.num_workers", runtime.NumCPU())

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.progress_interval_ms", 1000)
	v.SetDefault("logging.enable_progress", true)

	v.SetDefault("output.dir", "output")
	v.SetDefault("output.prefix", "graphlets")
	v.SetDefault("output.format", "text")

	v.SetDefault("store.path", "")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("random.seed", 42)
	v.SetDefault("random.nodes", 1000)
	v.SetDefault("random.max_degree", 8)
	v.SetDefault("random.labels", 3)

	v.SetEnvPrefix("GRAPHLETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for algorithm parameters
func (c *Config) CounterStrategy() string { return c.v.GetString("algorithm.counter_strategy") }
func (c *Config) DenseLimit() int { return c.v.GetInt("algorithm.dense_limit") }
func (c *Config) KeyBits() int { return c.v.GetInt("algorithm.key_bits") }
func (c *Config) Verify() bool { return c.v.GetBool("algorithm.verify") }
func (c *Config) CanonicalEdges() bool { return c.v.GetBool("algorithm.canonical_edges") }

func (c *Config) Parallel() bool { return c.v.GetBool("performance.parallel") }
func (c *Config) ChunkSize() int { return c.v.GetInt("performance.chunk_size") }
func (c *Config) NumWorkers() int { return c.v.GetInt("performance.num_workers") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }
func (c *Config) ProgressIntervalMS() int { return c.v.GetInt("logging.progress_interval_ms") }
func (c *Config) EnableProgress() bool { return c.v.GetBool("logging.enable_progress") }

func (c *Config) OutputDir() string { return c.v.GetString("output.dir") }
func (c *Config) OutputPrefix() string { return c.v.GetString("output.prefix") }
func (c *Config) OutputFormat() string { return c.v.GetString("output.format") }

func (c *Config) StorePath() string { return c.v.GetString("store.path") }

func (c *Config) ServerAddress() string { return c.v.GetString("server.address") }
func (c *Config) ServerReadTimeout() time.Duration { return c.v.GetDuration("server.read_timeout") }
func (c *Config) ServerWriteTimeout() time.Duration { return c.v.GetDuration("server.write_timeout") }

func (c *Config) RandomSeed() uint64 { return c.v.GetUint64("random.seed") }
func (c *Config) RandomNodes() int { return c.v.GetInt("random.nodes") }
func (c *Config) RandomMaxDegree() int { return c.v.GetInt("random.max_degree") }
func (c *Config) RandomLabels() int { return c.v.GetInt("random.labels") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "graphlets").Logger()
}
