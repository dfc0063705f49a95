package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DataDir      string
	DBPath       string
	MethodsPath  string
	NotifierPath string
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".wearlog")
	}
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "wearlog.db"),
		MethodsPath:  filepath.Join(dataDir, "methods.yaml"),
		NotifierPath: filepath.Join(dataDir, "notifier.json"),
	}, nil
}
