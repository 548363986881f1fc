package remaster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kdomanski/iso9660"
)

func writeFixtureISO(t *testing.T, label string) string {
	t.Helper()

	writer, err := iso9660.NewWriter()
	if err != nil {
		t.Fatalf("create iso writer: %v", err)
	}
	defer writer.Cleanup()

	if err := writer.AddFile(strings.NewReader("fixture"), "readme.txt"); err != nil {
		t.Fatalf("add file to iso: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fixture.iso")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create iso file: %v", err)
	}
	defer f.Close()

	if err := writer.WriteTo(f, label); err != nil {
		t.Fatalf("write iso: %v", err)
	}
	return path
}

func TestReadVolumeLabel(t *testing.T) {
	path := writeFixtureISO(t, "EDGE-1.0")

	label, err := ReadVolumeLabel(path)
	if err != nil {
		t.Fatalf("ReadVolumeLabel: %v", err)
	}
	if label != "EDGE-1.0" {
		t.Errorf("label = %q, want %q", label, "EDGE-1.0")
	}
}

func TestReadVolumeLabelMissingFile(t *testing.T) {
	if _, err := ReadVolumeLabel(filepath.Join(t.TempDir(), "absent.iso")); err == nil {
		t.Error("expected error for missing image")
	}
}

func TestReadVolumeLabelNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	writeFixtureFile(t, path, "not an optical disc image")

	if _, err := ReadVolumeLabel(path); err == nil {
		t.Error("expected error for a non-image file")
	}
}
