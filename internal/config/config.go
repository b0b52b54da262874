// Package config loads and persists the world-archiver retention setting.
package config

// DefaultBackupsPerWorld is written to a freshly created config file.
const DefaultBackupsPerWorld = 7

// FileName is the config file looked up in the working directory.
const FileName = "minecraft-server-backup.cfg"

type Config struct {
	// BackupsPerWorld is the number of snapshots kept for each world.
	// Zero disables retention.
	BackupsPerWorld uint `koanf:"backups_per_world"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{BackupsPerWorld: DefaultBackupsPerWorld}
}

// Unlimited reports whether retention is disabled.
func (c Config) Unlimited() bool {
	return c.BackupsPerWorld == 0
}
