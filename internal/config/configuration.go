package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Configuration struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	RequestConfig RequestConfig `yaml:"request"`
	LogConfig     LogConfig     `yaml:"log"`
	CleanConfig   CleanConfig   `yaml:"clean"`
}

type RequestConfig struct {
	SizeLimit int `yaml:"size_limit"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"log_path"`
}

type CleanConfig struct {
	Schedule     string `yaml:"schedule"`
	GraceMinutes int    `yaml:"grace_minutes"`
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Configuration) {
	if config.Storage.Path == "" {
		config.Storage.Path = "./data/blobs"
	}
	if config.Database.Path == "" {
		config.Database.Path = "./data/depot.db"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Concurrency == 0 {
		config.Server.Concurrency = 256
	}
	if config.Server.RequestConfig.SizeLimit == 0 {
		config.Server.RequestConfig.SizeLimit = 100
	}
	if config.Server.CleanConfig.Schedule == "" {
		config.Server.CleanConfig.Schedule = "0 * * * *"
	}
	if config.Server.CleanConfig.GraceMinutes == 0 {
		config.Server.CleanConfig.GraceMinutes = 60
	}
}
