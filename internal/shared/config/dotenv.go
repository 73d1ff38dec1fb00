package config

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// loadEnvFiles sets KEY=VALUE pairs from each file that exists into the
// process environment. Intended for local development, so missing files and
// malformed lines are skipped silently.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			continue
		}
		applyEnvLines(file)
		_ = file.Close()
	}
}

func applyEnvLines(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"`)
		if key != "" {
			os.Setenv(key, val)
		}
	}
}
