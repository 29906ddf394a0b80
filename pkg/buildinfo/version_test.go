package buildinfo

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = old })

	if !strings.Contains(String(), "version: v9.9.9") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} v9.9.9") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.HasPrefix(UserAgent(), "roadgraph/v9.9.9") {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
