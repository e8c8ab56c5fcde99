package cmd

import (
	"fmt"
	"fraudGuard/business/rgcn"
	"os"

	"gopkg.in/yaml.v3"
)

// Hyperparams is the optional YAML file passed with --config. Omitted keys
// keep their defaults.
type Hyperparams struct {
	Dims  rgcn.Dims        `yaml:"dims"`
	Train rgcn.TrainConfig `yaml:"train"`
}

func DefaultHyperparams() Hyperparams {
	return Hyperparams{
		Dims:  rgcn.DefaultDims(),
		Train: rgcn.DefaultTrainConfig(),
	}
}

func LoadHyperparams(path string) (Hyperparams, error) {
	hp := DefaultHyperparams()
	if path == "" {
		return hp, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return hp, fmt.Errorf("read hyperparameters: %w", err)
	}
	if err := yaml.Unmarshal(raw, &hp); err != nil {
		return hp, fmt.Errorf("parse hyperparameters: %w", err)
	}

	if hp.Train.Epochs <= 0 {
		return hp, fmt.Errorf("epochs must be positive, got %d", hp.Train.Epochs)
	}
	if hp.Train.LearningRate <= 0 {
		return hp, fmt.Errorf("learning_rate must be positive, got %v", hp.Train.LearningRate)
	}
	return hp, nil
}
