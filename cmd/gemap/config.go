package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ava12/gevo/grammar"
	"github.com/ava12/gevo/mapper"
)

type runConfig struct {
	CodonSize    int   `yaml:"codon_size"`
	MaxDepth     int   `yaml:"max_depth"`
	MaxWraps     int   `yaml:"max_wraps"`
	Window       int   `yaml:"window"`
	Strict       bool  `yaml:"strict"`
	Workers      int   `yaml:"workers"`
	Genomes      int   `yaml:"genomes"`
	GenomeLength int   `yaml:"genome_length"`
	Seed         int64 `yaml:"seed"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		CodonSize:    mapper.DefaultCodonSize,
		MaxDepth:     mapper.DefaultMaxDepth,
		MaxWraps:     mapper.DefaultMaxWraps,
		Window:       grammar.DefaultWindow,
		Genomes:      10,
		GenomeLength: 50,
		Seed:         1,
	}
}

// loadRunConfig reads YAML file over defaults; keys missing in the file keep default values.
func loadRunConfig(name string) (runConfig, error) {
	cfg := defaultRunConfig()
	data, e := os.ReadFile(name)
	if e != nil {
		return cfg, e
	}

	if e = yaml.Unmarshal(data, &cfg); e != nil {
		return cfg, fmt.Errorf("%s: %w", name, e)
	}
	return cfg, cfg.validate()
}

func (c runConfig) validate() error {
	switch {
	case c.CodonSize < 1:
		return fmt.Errorf("codon_size must be positive, got %d", c.CodonSize)
	case c.MaxDepth < 0:
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	case c.MaxWraps < 0:
		return fmt.Errorf("max_wraps must not be negative, got %d", c.MaxWraps)
	case c.Genomes < 0:
		return fmt.Errorf("genomes must not be negative, got %d", c.Genomes)
	case c.GenomeLength < 1:
		return fmt.Errorf("genome_length must be positive, got %d", c.GenomeLength)
	}
	return nil
}

func (c runConfig) mapperConfig() mapper.Config {
	mc := mapper.DefaultConfig()
	mc.CodonSize = c.CodonSize
	mc.MaxDepth = c.MaxDepth
	mc.MaxWraps = c.MaxWraps
	return mc
}
