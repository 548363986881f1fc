package remaster

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	biosBootConfig = "isolinux/isolinux.cfg"
	uefiBootConfig = "EFI/BOOT/grub.cfg"
)

// placeholderPattern matches any template token, recognized or not. Tokens
// left after substitution indicate a template referencing an unknown
// variable and abort the run before the mastering tool is invoked.
var placeholderPattern = regexp.MustCompile(`@[A-Z]+@`)

// Substitutions carries the closed set of template variables. Every
// template in a run is rendered against the same values.
type Substitutions struct {
	Label     string
	Kickstart string
	Kargs     string
}

func (s Substitutions) tokens() map[string]string {
	return map[string]string{
		"@LABEL@":     s.Label,
		"@KICKSTART@": s.Kickstart,
		"@KARGS@":     s.Kargs,
	}
}

// applyTemplate renders the template at src and writes the result to dst,
// overwriting any existing file. src and dst may be the same path.
func applyTemplate(src, dst string, subs Substitutions) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return &TemplateError{Path: src, Err: err}
	}

	rendered := string(raw)
	for token, value := range subs.tokens() {
		rendered = strings.ReplaceAll(rendered, token, value)
	}

	if leftover := placeholderPattern.FindString(rendered); leftover != "" {
		return &TemplateError{
			Path: src,
			Err:  fmt.Errorf("unknown template variable %s", leftover),
		}
	}

	if err := os.WriteFile(dst, []byte(rendered), 0o644); err != nil {
		return &TemplateError{Path: dst, Err: err}
	}
	return nil
}
