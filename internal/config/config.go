package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/totegamma/livefyre"
)

type Config struct {
	Network Network `yaml:"network"`
	Site    Site    `yaml:"site"`
	Client  Client  `yaml:"client"`
	Profile Profile `yaml:"profile"`
	Trace   Trace   `yaml:"trace"`
	Log     Log     `yaml:"log"`
}

type Network struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
	SSL  *bool  `yaml:"ssl"`
}

// UseSSL defaults to true when ssl is not set.
func (n Network) UseSSL() bool {
	return n.SSL == nil || *n.SSL
}

type Site struct {
	ID  string `yaml:"id"`
	Key string `yaml:"key"`
}

type Client struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
}

type Profile struct {
	Listen        string        `yaml:"listen"`
	Store         string        `yaml:"store"` // memory, redis, postgres
	PostgresDsn   string        `yaml:"postgresDsn"`
	RedisAddr     string        `yaml:"redisAddr"`
	RedisPassword string        `yaml:"redisPassword"`
	RedisDB       int           `yaml:"redisDB"`
	RedisPrefix   string        `yaml:"redisPrefix"`
	MemcachedAddr []string      `yaml:"memcachedAddr"`
	CacheTTL      time.Duration `yaml:"cacheTTL"`
	RefreshOnPut  bool          `yaml:"refreshOnPut"`
}

type Trace struct {
	Enable   bool   `yaml:"enable"`
	Endpoint string `yaml:"endpoint"`
	Service  string `yaml:"service"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

func Default() Config {
	return Config{
		Client: Client{
			Timeout:   10 * time.Second,
			UserAgent: "livefyre-go/1.0",
			TokenTTL:  livefyre.DefaultExpires - time.Hour,
		},
		Profile: Profile{
			Listen:   ":8000",
			Store:    StoreMemory,
			CacheTTL: 5 * time.Minute,
		},
		Trace: Trace{
			Service: "livefyre",
		},
		Log: Log{
			Level: "info",
		},
	}
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer file.Close()

	config := Default()
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	switch c.Profile.Store {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return errors.Errorf("profile.store: unknown store %q", c.Profile.Store)
	}
	if c.Profile.Store == StorePostgres && c.Profile.PostgresDsn == "" {
		return errors.New("profile.postgresDsn is required for the postgres store")
	}
	if c.Profile.Store == StoreRedis && c.Profile.RedisAddr == "" {
		return errors.New("profile.redisAddr is required for the redis store")
	}
	if c.Client.TokenTTL >= livefyre.DefaultExpires {
		return errors.Errorf("client.tokenTTL must be shorter than %s", livefyre.DefaultExpires)
	}
	if c.Trace.Enable && c.Trace.Endpoint == "" {
		return errors.New("trace.endpoint is required when tracing is enabled")
	}
	return nil
}
