package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Parser reads and writes the line based cfg format:
//
//	//comment
//	backups per world:7
//
// It implements koanf.Parser.
type Parser struct{}

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

// "Backups Per World" -> "backups_per_world"
func fieldKey(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}

// "backups_per_world" -> "backups per world"
func fieldLabel(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// header is written above the settings of a saved file.
var header = []string{
	"The number of backups that will be saved for any given world.",
	"If the number of backups exceeds this limit, the oldest backup will be deleted.",
	"A value of 0 means no limit.",
	fmt.Sprintf("Default: %d", DefaultBackupsPerWorld),
}

func (Parser) Unmarshal(b []byte) (map[string]any, error) {
	out := map[string]any{}

	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		key := fieldKey(label)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(expandEnvVars(value))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning config: %w", err)
	}

	return out, nil
}

func (Parser) Marshal(m map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	for _, line := range header {
		fmt.Fprintf(&buf, "//%s\n", line)
	}
	buf.WriteString("\n")

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, nested := m[k].(map[string]any); nested {
			return nil, fmt.Errorf("nested key %q not supported", k)
		}
		fmt.Fprintf(&buf, "%s:%v\n\n", fieldLabel(k), m[k])
	}

	return buf.Bytes(), nil
}
