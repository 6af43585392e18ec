package config

import (
	"fmt"
	"os"

	"github.com/bensuskins/weekly-planner/internal/models"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabasePath string
	Port         string
	LogLevel     string

	// FallbackStore names the retailer assumed when no store is configured.
	FallbackStore string
	// Stores seed the stores resource the first time the app boots against
	// an empty data store.
	Stores []models.Store
	// Taxonomy is the aisle layout used by category grouping consumers.
	Taxonomy []models.CategoryGroup
}

// fileConfig is the optional YAML file pointed at by PLANNER_CONFIG.
type fileConfig struct {
	FallbackStore string                 `yaml:"fallback_store"`
	Stores        []storeConfig          `yaml:"stores"`
	Categories    []models.CategoryGroup `yaml:"categories"`
}

type storeConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Default bool   `yaml:"default"`
}

func Load() (Config, error) {
	config := Config{
		DatabasePath:  envOrDefault("DATABASE_PATH", "./data/planner.db"),
		Port:          envOrDefault("PORT", "8080"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		FallbackStore: "Sainsbury's",
		Taxonomy:      models.DefaultTaxonomy,
	}

	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		if err := applyFile(&config, path); err != nil {
			return Config{}, err
		}
	}

	return config, nil
}

func applyFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if file.FallbackStore != "" {
		config.FallbackStore = file.FallbackStore
	}
	for _, store := range file.Stores {
		config.Stores = append(config.Stores, models.Store{
			Name:    store.Name,
			URL:     store.URL,
			Default: store.Default,
		})
	}
	if len(file.Categories) > 0 {
		config.Taxonomy = file.Categories
	}
	return nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
