package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02"
	defer func() { Version, Commit, Date = "dev", "none", "unknown" }()

	tmpl := Template()
	for _, want := range []string{"v1.2.3", "abc123", "2026-01-02", "{{.Name}}"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
	if got := UserAgent(); got != "dnrgps/v1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "dnrgps/v1.2.3")
	}
}
