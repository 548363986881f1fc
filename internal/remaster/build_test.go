package remaster

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

type stubRunner struct {
	name string
	args []string
	err  error
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func TestMasteringArgsQuietWithoutHybridMBR(t *testing.T) {
	got := masteringArgs("/tmp/ws/extracted", "EDGE-1.0", "bootiso.iso", false, false)
	want := []string{
		"-quiet",
		"-o", "bootiso.iso",
		"-b", "isolinux/isolinux.bin",
		"-c", "isolinux/boot.cat",
		"-no-emul-boot",
		"-boot-load-size", "4",
		"-boot-info-table",
		"-eltorito-alt-boot",
		"-e", "images/efiboot.img",
		"-no-emul-boot",
		"-isohybrid-gpt-basedata",
		"-R", "-J",
		"-V", "EDGE-1.0",
		"/tmp/ws/extracted",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("masteringArgs = %v, want %v", got, want)
	}
}

func TestMasteringArgsVerboseWithHybridMBR(t *testing.T) {
	got := masteringArgs("/tmp/ws/extracted", "EDGE-1.0", "out.iso", true, true)

	if got[0] == "-quiet" {
		t.Error("verbose run must not pass -quiet")
	}
	for i, arg := range got {
		if arg == "-isohybrid-mbr" {
			if got[i+1] != hybridMBRPath {
				t.Errorf("-isohybrid-mbr argument = %q, want %q", got[i+1], hybridMBRPath)
			}
			return
		}
	}
	t.Error("argument list missing -isohybrid-mbr")
}

func TestMasteringArgsTreeDirectoryIsLast(t *testing.T) {
	got := masteringArgs("/tmp/tree", "X", "out.iso", false, true)
	if got[len(got)-1] != "/tmp/tree" {
		t.Errorf("last argument = %q, want the tree directory", got[len(got)-1])
	}
}

func TestBuildImageInvokesMasteringTool(t *testing.T) {
	runner := &stubRunner{}
	err := buildImage(context.Background(), runner, "/tmp/tree", "EDGE-1.0", "out.iso", false, testLogger())
	if err != nil {
		t.Fatalf("buildImage: %v", err)
	}
	if runner.name != masteringTool {
		t.Errorf("invoked %q, want %q", runner.name, masteringTool)
	}
}

func TestBuildImageWrapsToolFailure(t *testing.T) {
	cause := fmt.Errorf("exit status 2")
	runner := &stubRunner{err: cause}

	err := buildImage(context.Background(), runner, "/tmp/tree", "", "out.iso", false, testLogger())
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("buildImage error = %v, want *BuildError", err)
	}
	if buildErr.Output != "out.iso" {
		t.Errorf("BuildError.Output = %q, want %q", buildErr.Output, "out.iso")
	}
	if !errors.Is(err, cause) {
		t.Errorf("BuildError does not wrap the tool failure")
	}
}
