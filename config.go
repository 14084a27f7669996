package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        string
	Project       string
	BrushSize     int
	DragThreshold int
	Timeout       time.Duration
	ExportDir     string
	LogFile       string
	Confirmations bool
}

func defaultConfig() *Config {
	return &Config{
		Server:        "http://localhost:5000",
		BrushSize:     5,
		DragThreshold: 10,
		Timeout:       15 * time.Second,
		Confirmations: true,
	}
}

func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	file, err := os.Open(filepath.Join(homeDir, ".labeltermrc"))
	if err != nil {
		return config
	}
	defer file.Close()

	parseConfig(config, file, homeDir)
	return config
}

// parseConfig reads key=value lines into config. Unknown keys and
// malformed values are ignored.
func parseConfig(config *Config, r io.Reader, homeDir string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "server", "url":
			config.Server = value
		case "project", "token":
			config.Project = value
		case "brush_size", "brushsize":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.BrushSize = n
			}
		case "drag_threshold", "dragthreshold":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				config.DragThreshold = n
			}
		case "timeout":
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				config.Timeout = d
			}
		case "export_dir", "exportdir", "savedirectory", "save_directory":
			config.ExportDir = expandPath(value, homeDir)
		case "log_file", "logfile":
			config.LogFile = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		}
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetExportPath(filename string) string {
	if c.ExportDir == "" {
		return filename
	}
	os.MkdirAll(c.ExportDir, 0755)
	return filepath.Join(c.ExportDir, filename)
}
