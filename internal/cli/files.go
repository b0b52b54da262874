package cli

import "github.com/raoulx24/world-archiver/internal/config"

// Files locates the config and log files. Relative paths resolve
// against the working directory.
type Files struct {
	Config string
	Log    string
}

// DefaultFiles returns the file names used beside the executable.
func DefaultFiles() Files {
	return Files{
		Config: config.FileName,
		Log:    logFileName,
	}
}
