package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		PushURL string `yaml:"push_url"`
	} `yaml:"api"`
	Notifications struct {
		LeadMinutes int `yaml:"lead_minutes"`
	} `yaml:"notifications"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides
	config.API.BaseURL = getEnv("TEAMSYNC_API_URL", config.API.BaseURL)
	config.API.PushURL = getEnv("TEAMSYNC_PUSH_URL", config.API.PushURL)
	config.Notifications.LeadMinutes = getEnvAsInt("TEAMSYNC_LEAD_MINUTES", config.Notifications.LeadMinutes)

	if config.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required")
	}

	return &config, nil
}
