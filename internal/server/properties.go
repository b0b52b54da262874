// Package server reads settings from a game server's installation.
package server

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
)

// PropertiesFile holds the server settings, relative to the server directory.
const PropertiesFile = "server.properties"

// levelNameKey names the world directory in server.properties.
const levelNameKey = "level-name"

var ErrWorldNameNotFound = errors.New("server: world name not found")

// WorldName returns the configured world of the server in dir.
func WorldName(dir string) (string, error) {
	path := filepath.Join(dir, PropertiesFile)

	// ${...} is legal inside a world name, so no expansion
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", PropertiesFile, err)
	}

	name := strings.TrimSpace(lookupFold(p, levelNameKey))
	if name == "" {
		return "", fmt.Errorf("%w: no %s in %s", ErrWorldNameNotFound, levelNameKey, path)
	}

	return name, nil
}

// lookupFold finds key ignoring case; servers have been seen writing
// Level-Name by hand.
func lookupFold(p *properties.Properties, key string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	for _, k := range p.Keys() {
		if strings.EqualFold(k, key) {
			v, _ := p.Get(k)
			return v
		}
	}
	return ""
}
