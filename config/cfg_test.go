package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"fracbin/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Output.Format != common.ReportFmtTable {
		t.Errorf("Default output format = %s, want table", cfg.Output.Format)
	}
	if cfg.Output.Headers.Decimal != "Base 10" || cfg.Output.Headers.Binary != "Base 2" {
		t.Errorf("Default headers = %+v", cfg.Output.Headers)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Default file log level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_RowTemplateNotExpanded(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !strings.Contains(cfg.Output.RowTemplate, "{{ .Decimal }}") {
		t.Errorf("row template was expanded: %q", cfg.Output.RowTemplate)
	}
	if strings.Contains(cfg.Logging.FileLogger.Destination, "{{") {
		t.Errorf("log destination was not expanded: %q", cfg.Logging.FileLogger.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
output:
  format: yaml
  headers:
    decimal: "Decimal"
    binary: "Binary"
  row_template: "{{ .Binary }}"
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "logs", "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(dir, "report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Output.Format != common.ReportFmtYaml {
		t.Errorf("Format = %s, want yaml", cfg.Output.Format)
	}
	if cfg.Output.Headers.Decimal != "Decimal" {
		t.Errorf("Decimal header = %q, want Decimal", cfg.Output.Headers.Decimal)
	}
	if cfg.Output.RowTemplate != "{{ .Binary }}" {
		t.Errorf("RowTemplate = %q", cfg.Output.RowTemplate)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("Mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log directory was not created by sanitizer: %v", err)
	}
}

func TestLoadConfiguration_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `version: 1
output:
  format: template
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Output.Format != common.ReportFmtTemplate {
		t.Errorf("Format = %s, want template", cfg.Output.Format)
	}
	if cfg.Output.Headers.Binary != "Base 2" {
		t.Errorf("Binary header = %q, default expected", cfg.Output.Headers.Binary)
	}
	if cfg.Output.RowTemplate == "" {
		t.Error("default row template lost")
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: 1
output:
  format: table
  invalid indent
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	path := writeConfig(t, `version: 1
precision: 16
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationErrors(t *testing.T) {
	tests := map[string]string{
		"version":  "version: 2\n",
		"format":   "version: 1\noutput:\n  format: csv\n",
		"header":   "version: 1\noutput:\n  headers:\n    decimal: \"\"\n",
		"template": "version: 1\noutput:\n  format: template\n  row_template: \"\"\n",
		"level":    "version: 1\nlogging:\n  console:\n    level: verbose\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}

	if _, err = unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Output.Format = common.ReportFmtYaml

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "format: yaml") {
		t.Errorf("Dump() does not contain format name:\n%s", data)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Output != cfg.Output {
		t.Errorf("Output mismatch after dump/load: got %+v, want %+v", cfg2.Output, cfg.Output)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		result, err := unmarshalConfig([]byte(`version: 1`), &Config{}, false)
		if err != nil {
			t.Fatalf("unmarshalConfig() error = %v", err)
		}
		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := unmarshalConfig([]byte(`invalid: [yaml`), &Config{}, false); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}
