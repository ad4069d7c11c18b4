package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML configuration accepted by -config. Every field
// is optional; omitted fields keep their defaults.
type fileConfig struct {
	NNodes       int     `yaml:"nnodes"`
	Dimension    int     `yaml:"dimension"`
	Normalize    *bool   `yaml:"normalize"`
	LearningRate float64 `yaml:"learning_rate"`
	Workers      int     `yaml:"workers"`
	Steps        int     `yaml:"steps"`
	Seed         int64   `yaml:"seed"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "opening config %s", path)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
