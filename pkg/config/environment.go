package config

import (
	"fmt"
	"os"

	"github.com/pressrun/fulfilment-orchestra/pkg/storage"
)

const DEFAULT_LEDGER_FILE = "data/fulfilment-runs.db"

// BuildStage parses the STAGE env variable.
func BuildStage() (Stage, error) {
	stage := os.Getenv("STAGE")
	if stage == "" {
		return "", fmt.Errorf("STAGE environment variable is not set")
	}
	return ParseStage(stage)
}

// BuildStorageConfig constructs the object-store configuration from the
// STORAGE_PROVIDER, FULFILMENT_BUCKET, AWS_REGION, AWS_PROFILE and DATA_DIR
// env variables.
func BuildStorageConfig() (storage.Config, error) {
	provider := storage.Provider(os.Getenv("STORAGE_PROVIDER"))
	if provider == "" {
		provider = storage.ProviderS3
	}

	if provider == storage.ProviderLocal {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
			fmt.Printf("DATA_DIR environment variable is not set, using default: %s\n", dataDir)
		}
		return storage.Config{
			Provider: provider,
			Dir:      dataDir,
		}, nil
	}

	bucket := os.Getenv("FULFILMENT_BUCKET")
	if bucket == "" {
		return storage.Config{}, fmt.Errorf("FULFILMENT_BUCKET environment variable is not set")
	}

	return storage.Config{
		Provider: provider,
		Bucket:   bucket,
		Region:   os.Getenv("AWS_REGION"),
		Profile:  os.Getenv("AWS_PROFILE"),
	}, nil
}

// BuildLedgerFile returns the run-ledger db file path from LEDGER_FILE or the default.
func BuildLedgerFile() string {
	ledgerFile := os.Getenv("LEDGER_FILE")
	if ledgerFile == "" {
		ledgerFile = DEFAULT_LEDGER_FILE
		fmt.Printf("LEDGER_FILE environment variable is not set, using default: %s\n", DEFAULT_LEDGER_FILE)
	}
	return ledgerFile
}
