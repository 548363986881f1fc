package remaster

import "fmt"

// MountError reports a failed loop mount or a mount point that did not
// expose an iso9660 filesystem. Unmount failures are not fatal and are
// surfaced as plain errors by the Mounter.
type MountError struct {
	Image string
	Err   error
}

func (e *MountError) Error() string {
	return fmt.Sprintf("mount %s: %v", e.Image, e.Err)
}

func (e *MountError) Unwrap() error { return e.Err }

// CopyError reports a failed extraction of the source tree.
type CopyError struct {
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s: %v", e.Path, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// TemplateError reports a template file that is missing, unreadable, or
// contains a placeholder outside the recognized variable set.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// BuildError reports a mastering tool invocation that exited non-zero. The
// file at Output, if present, must not be treated as a usable image.
type BuildError struct {
	Output string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("master %s: %v", e.Output, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
