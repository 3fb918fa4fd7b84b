package quadlet

import (
	"strings"
	"testing"
)

func TestRender_HeaderAndTrailingNewline(t *testing.T) {
	out := Render("myapp", ContainerDirectives(ContainerSpec{Name: "myapp", Image: "img:1"}, nil))

	lines := strings.Split(out, "\n")
	if lines[0] != "# Auto-generated by meta-container-deploy" {
		t.Errorf("Unexpected first header line: '%s'", lines[0])
	}
	if lines[1] != "# Podman Quadlet file for myapp" {
		t.Errorf("Unexpected second header line: '%s'", lines[1])
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Expected trailing newline")
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Error("Expected exactly one trailing newline")
	}
}

func TestRender_SectionOrder(t *testing.T) {
	out := Render("myapp", ContainerDirectives(ContainerSpec{Name: "myapp", Image: "img:1"}, nil))

	unitIdx := strings.Index(out, "[Unit]")
	containerIdx := strings.Index(out, "[Container]")
	serviceIdx := strings.Index(out, "[Service]")
	installIdx := strings.Index(out, "[Install]")

	if unitIdx < 0 || containerIdx < 0 || serviceIdx < 0 || installIdx < 0 {
		t.Fatalf("Missing a section:\n%s", out)
	}
	if !(unitIdx < containerIdx && containerIdx < serviceIdx && serviceIdx < installIdx) {
		t.Errorf("Sections out of order:\n%s", out)
	}
}

func TestRender_RepeatedKeys(t *testing.T) {
	directives := []Directive{
		{"Container", "PublishPort", "8080:80"},
		{"Container", "PublishPort", "8443:443"},
	}
	out := Render("multi", directives)

	first := strings.Index(out, "PublishPort=8080:80")
	second := strings.Index(out, "PublishPort=8443:443")
	if first < 0 || second < 0 || second < first {
		t.Errorf("Expected repeated keys as separate lines in order:\n%s", out)
	}
}

func TestRender_Idempotent(t *testing.T) {
	spec := ContainerSpec{
		Name:        "stable",
		Image:       "img:1",
		Ports:       StringList{"8080:80"},
		Environment: KeyValues{"A=1", "B=2"},
		Labels:      KeyValues{"app=stable"},
	}
	a := Render(spec.Name, ContainerDirectives(spec, nil))
	b := Render(spec.Name, ContainerDirectives(spec, nil))
	if a != b {
		t.Error("Expected byte-identical output for identical input")
	}
}
