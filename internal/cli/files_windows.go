//go:build windows

package cli

const logFileName = "log-minecraft-server-backupifier.txt"
