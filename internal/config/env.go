package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local from dir. Variables already present
// in the process environment are kept.
func loadEnvFiles(dir string) error {
	var found []string
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		return errors.New("no .env file found")
	}
	return godotenv.Load(found...)
}
