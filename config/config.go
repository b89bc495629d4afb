package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Thresholds ThresholdConfig `yaml:"thresholds"`
	Output     OutputConfig    `yaml:"output"`
	Server     ServerConfig    `yaml:"server"`
	Storage    StorageConfig   `yaml:"storage"`
}

// ThresholdConfig holds the per-attribute tolerances of the similarity rule.
// Each tolerance bounds the absolute difference from the reference track;
// MinPopularity is a strict lower bound on candidate popularity.
type ThresholdConfig struct {
	Danceability  float64 `yaml:"danceability"`
	Energy        float64 `yaml:"energy"`
	Tempo         float64 `yaml:"tempo"`
	Valence       float64 `yaml:"valence"`
	MinPopularity int     `yaml:"min_popularity"`
}

type OutputConfig struct {
	// Name of the exported graph file
	GraphFile string `yaml:"graph_file"`

	// How many similar tracks end up in the graph
	TopKSimilar int `yaml:"top_k_similar"`

	// How many candidates are offered when a track name is ambiguous
	TopKDisambiguation int `yaml:"top_k_disambiguation"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// Local storage options
	OutputDir string `yaml:"output_dir"`

	// GCS storage options
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Default returns the configuration used when no config file is supplied.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	// Unmarshal the YAML data into the struct
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	applyDefaults(config)

	return config, nil
}

// applyDefaults fills in any option the file left unset.
func applyDefaults(config *Config) {
	if config.Thresholds.Danceability == 0 {
		config.Thresholds.Danceability = 0.05
	}

	if config.Thresholds.Energy == 0 {
		config.Thresholds.Energy = 0.05
	}

	if config.Thresholds.Tempo == 0 {
		config.Thresholds.Tempo = 50.0
	}

	if config.Thresholds.Valence == 0 {
		config.Thresholds.Valence = 0.1
	}

	if config.Thresholds.MinPopularity == 0 {
		config.Thresholds.MinPopularity = 70
	}

	if config.Output.GraphFile == "" {
		config.Output.GraphFile = "graph.dot"
	}

	if config.Output.TopKSimilar == 0 {
		config.Output.TopKSimilar = 5
	}

	if config.Output.TopKDisambiguation == 0 {
		config.Output.TopKDisambiguation = 3
	}

	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "local"
	}

	if config.Storage.OutputDir == "" {
		config.Storage.OutputDir = "output"
	}
}
