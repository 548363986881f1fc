package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remaster.yaml")
	content := "output: edge-install.iso\nkickstart: /srv/ks/edge.ks\nkargs:\n  - console=ttyS0\n  - rd.neednet=1\nverbose: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	defaults, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Defaults{
		Output:    "edge-install.iso",
		Kickstart: "/srv/ks/edge.ks",
		Kargs:     []string{"console=ttyS0", "rd.neednet=1"},
		Verbose:   true,
	}
	if !reflect.DeepEqual(defaults, want) {
		t.Errorf("Load = %+v, want %+v", defaults, want)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remaster.yaml")
	if err := os.WriteFile(path, []byte("output: custom.iso\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	defaults, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if defaults.Output != "custom.iso" {
		t.Errorf("Output = %q, want %q", defaults.Output, "custom.iso")
	}
	if defaults.Kickstart != "" || len(defaults.Kargs) != 0 || defaults.Verbose {
		t.Errorf("unset fields not zero-valued: %+v", defaults)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remaster.yaml")
	if err := os.WriteFile(path, []byte("output: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
