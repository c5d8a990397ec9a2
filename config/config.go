package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type Config struct {
	Port     int         `yaml:"port"`
	DataFile string      `yaml:"dataFile"`
	Store    string      `yaml:"store"`
	Redis    RedisConfig `yaml:"redis"`
	Seed     bool        `yaml:"seed"`
	GinMode  string      `yaml:"ginMode"`
}

func Default() Config {
	return Config{
		Port:     3000,
		DataFile: "./students.json",
		Store:    StoreFile,
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
			Key:  "students",
		},
		GinMode: "release",
	}
}

// Load reads a YAML config file. A missing file yields the defaults; a file
// that fails to parse is logged and also yields the defaults.
func Load(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not read config %s: %v", path, err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("Could not parse config %s: %v", path, err)
		return Default()
	}

	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Port <= 0 {
		c.Port = def.Port
	}
	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.Store == "" {
		c.Store = def.Store
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = def.Redis.Addr
	}
	if c.Redis.Key == "" {
		c.Redis.Key = def.Redis.Key
	}
	switch c.GinMode {
	case "debug", "release", "test":
	case "":
		c.GinMode = def.GinMode
	default:
		log.Printf("Unknown ginMode %q in config, using %q", c.GinMode, def.GinMode)
		c.GinMode = def.GinMode
	}
}
