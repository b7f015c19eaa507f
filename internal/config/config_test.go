package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loclink.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "address_threshold: 0.65\ndirect_id_share: 0.1\n")
	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.AddressThreshold != 0.65 || c.DirectIDShare != 0.1 {
		t.Errorf("values not merged: %+v", c)
	}
	c.ApplyDefaults()
	if c.FieldThreshold != DefaultFieldThreshold {
		t.Errorf("unset tunable must default, got %v", c.FieldThreshold)
	}
	if c.AddressThreshold != 0.65 {
		t.Errorf("defaults must not clobber file values, got %v", c.AddressThreshold)
	}
}

func TestLoadFromFile_InvalidThreshold(t *testing.T) {
	path := writeConfig(t, "field_threshold: 1.5\n")
	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for out-of-range threshold")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	var c Config
	if err := c.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := writeConfig(t, "address_threshold: [not a number\n")
	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestValidateForRun(t *testing.T) {
	file := writeConfig(t, "anything")
	c := Config{
		DSN:        "postgres://localhost/loclink",
		FilePath:   file,
		OutPath:    "out.csv",
		CatalogURL: "http://localhost:8080",
	}
	c.ApplyDefaults()
	if err := c.ValidateForRun(); err != nil {
		t.Fatalf("ValidateForRun: %v", err)
	}

	missing := c
	missing.CatalogURL = ""
	if err := missing.ValidateForRun(); err == nil {
		t.Error("expected error without catalog url")
	}

	missing = c
	missing.OutPath = ""
	if err := missing.ValidateForRun(); err == nil {
		t.Error("expected error without output path")
	}

	missing = c
	missing.DSN = ""
	if err := missing.ValidateForRun(); err == nil {
		t.Error("expected error without dsn")
	}
}
