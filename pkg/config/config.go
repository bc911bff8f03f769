package config

import (
	"context"
	"errors"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/pressrun/fulfilment-orchestra/pkg/storage"
)

// Stage separates the test and production fulfilment environments. Folder
// layouts and buckets differ per stage, nothing else does.
type Stage string

const (
	StageCode Stage = "CODE"
	StageProd Stage = "PROD"
)

const (
	ErrMsgInvalidStage = "config: stage must be CODE or PROD"
)

var (
	ErrInvalidStage = errors.New(ErrMsgInvalidStage)
)

// ParseStage validates a stage string. Anything other than the two known
// stages fails fast so a typo cannot route output to the wrong folders.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageCode, StageProd:
		return Stage(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidStage, s)
	}
}

// FolderConfig names the upload folder for one destination.
type FolderConfig struct {
	UploadFolder string `yaml:"uploadFolder"`
}

// FulfilmentsConfig holds per-fulfilment folder layouts. Weekly is keyed by
// destination name (UK, CA, CA_HAND, US, AU, EU, ROW).
type FulfilmentsConfig struct {
	HomeDelivery FolderConfig            `yaml:"homedelivery"`
	Weekly       map[string]FolderConfig `yaml:"weekly"`
}

// Config is the stage-scoped fulfilment configuration document.
type Config struct {
	Stage       Stage             `yaml:"stage"`
	InputPrefix string            `yaml:"inputPrefix"`
	Fulfilments FulfilmentsConfig `yaml:"fulfilments"`
}

// FetchConfig reads the stage's configuration document from object storage
// at fulfilment/<stage>/config.yaml.
func FetchConfig(ctx context.Context, store storage.Store, stage Stage) (*Config, error) {
	key := path.Join("fulfilment", string(stage), "config.yaml")
	r, err := store.NewReader(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("config: fetching %s: %w", key, err)
	}
	defer r.Close()

	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", key, err)
	}
	cfg.Stage = stage
	return &cfg, nil
}
