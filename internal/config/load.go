package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load reads the config at path on top of the defaults. created is true
// when the file was missing and a default one has been written.
func Load(path string) (cfg Config, created bool, err error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, false, fmt.Errorf("loading defaults: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, false, fmt.Errorf("reading config file: %w", err)
		}
		if err := Save(path, Default()); err != nil {
			return Config{}, false, err
		}
		return Default(), true, nil
	}

	if err := k.Load(file.Provider(path), Parser{}); err != nil {
		return Config{}, false, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, false, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, false, nil
}

// Save writes cfg to path in the cfg file format.
func Save(path string, cfg Config) error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	data, err := k.Marshal(Parser{})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
