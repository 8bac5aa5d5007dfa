package config

import (
	"fmt"

	"github.com/spf13/viper"

	reportpdf "github.com/porticus-lab/go-report-pdf"
)

// LoadSnapshot reads report data from a YAML, JSON or TOML file. The format
// is chosen by the file extension.
func LoadSnapshot(path string) (*reportpdf.Snapshot, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var s reportpdf.Snapshot
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &s, nil
}
