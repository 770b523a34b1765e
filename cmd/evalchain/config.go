package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/evalchain/evalchain"
)

const defaultConfigFile = "evalchain.yaml"

// Config holds all evalchain CLI configuration.
type Config struct {
	ChainFile  string        `yaml:"chain_file"`
	Difficulty uint          `yaml:"difficulty"`
	LogLevel   string        `yaml:"log_level"`
	Store      StorageConfig `yaml:"store"`
}

// StorageConfig selects where the chain document lives.  An S3 bucket wins
// over the local directory when both are set.
type StorageConfig struct {
	Dir string   `yaml:"dir"`
	S3  S3Config `yaml:"s3"`
}

// S3Config configures the S3 backend.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

func (c *Config) defaults() {
	if c.ChainFile == "" {
		c.ChainFile = "blockchain.json"
	}
	if c.Difficulty == 0 {
		c.Difficulty = evalchain.DefaultDifficulty
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Store.Dir == "" {
		c.Store.Dir = "."
	}
}

// LoadConfig reads the named config file, or evalchain.yaml from the
// current directory when path is empty.  A missing default file just
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	var c Config
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			c.defaults()
			return c, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.defaults()
	return c, nil
}
