// Command som trains a self-organizing map over a CSV table of numbers
// and writes the resulting grid as a textual report.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/jdrub/pysom/som"
)

func main() {
	dataPath := flag.String("data", "", "Path to the input CSV table (headerless, numeric)")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	nnodes := flag.Int("nnodes", 0, "Target node count (overrides config)")
	steps := flag.Int("steps", 0, "Number of training steps (overrides config)")
	noNormalize := flag.Bool("no-normalize", false, "Disable z-score normalization of the input")
	seed := flag.Int64("seed", 0, "Random seed, 0 means time-based (overrides config)")
	workers := flag.Int("workers", 0, "Goroutines used by the update pass (overrides config)")
	out := flag.String("out", "", "Grid report destination, default standard output")
	classify := flag.String("classify", "", "Comma-separated point to classify after training")

	flag.Parse()

	if *dataPath == "" {
		log.Fatal("-data is required")
	}

	cfg := som.DefaultConfig()
	nsteps := 100
	var seedValue int64

	if *configPath != "" {
		fileCfg, err := loadFileConfig(*configPath)
		if err != nil {
			log.Fatalf("Loading config: %v", err)
		}
		if fileCfg.NNodes > 0 {
			cfg.NNodes = fileCfg.NNodes
		}
		if fileCfg.Dimension > 0 {
			cfg.Dimension = fileCfg.Dimension
		}
		if fileCfg.Normalize != nil {
			cfg.Normalize = *fileCfg.Normalize
		}
		if fileCfg.LearningRate > 0 {
			cfg.LearningRate = fileCfg.LearningRate
		}
		if fileCfg.Workers > 0 {
			cfg.Workers = fileCfg.Workers
		}
		if fileCfg.Steps > 0 {
			nsteps = fileCfg.Steps
		}
		if fileCfg.Seed != 0 {
			seedValue = fileCfg.Seed
		}
	}

	if *nnodes > 0 {
		cfg.NNodes = *nnodes
	}
	if *steps > 0 {
		nsteps = *steps
	}
	if *noNormalize {
		cfg.Normalize = false
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *seed != 0 {
		seedValue = *seed
	}
	if seedValue != 0 {
		cfg.Rand = rand.New(rand.NewSource(seedValue))
	}

	dataSet, err := som.ReadDataSetFile(*dataPath)
	if err != nil {
		log.Fatalf("Reading data: %v", err)
	}

	m, err := som.New(dataSet, cfg)
	if err != nil {
		log.Fatalf("Building map: %v", err)
	}

	log.Printf("Training %dx%d map on %d rows for %d steps", m.Side(), m.Side(), dataSet.Len(), nsteps)
	if err := m.Train(nsteps); err != nil {
		log.Fatalf("Training: %v", err)
	}

	if *out == "" {
		err = m.WriteGrid(os.Stdout)
	} else {
		err = m.WriteGridFile(*out)
	}
	if err != nil {
		log.Fatalf("Writing grid: %v", err)
	}

	if *classify != "" {
		point, err := parsePoint(*classify)
		if err != nil {
			log.Fatalf("Parsing -classify point: %v", err)
		}
		coords, err := m.Classify(point)
		if err != nil {
			log.Fatalf("Classifying: %v", err)
		}
		log.Printf("Point %v maps to %v", point, coords)
	}
}

func parsePoint(s string) (som.DataVector, error) {
	fields := strings.Split(s, ",")
	point := make(som.DataVector, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		point[i] = v
	}
	return point, nil
}
