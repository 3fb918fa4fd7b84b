package quadlet

import "strings"

// Render serializes the directive list into Quadlet unit-file text.
// Sections appear in first-seen order, each key on its own Key=Value
// line; repeated keys repeat the line. Rendering is pure formatting
// and cannot fail, so generating twice from the same spec yields
// byte-identical output.
func Render(name string, directives []Directive) string {
	var order []string
	grouped := make(map[string][]Directive)
	for _, d := range directives {
		if _, ok := grouped[d.Section]; !ok {
			order = append(order, d.Section)
		}
		grouped[d.Section] = append(grouped[d.Section], d)
	}

	var b strings.Builder
	b.WriteString("# Auto-generated by meta-container-deploy\n")
	b.WriteString("# Podman Quadlet file for " + name + "\n")
	for _, section := range order {
		b.WriteString("\n[" + section + "]\n")
		for _, d := range grouped[section] {
			b.WriteString(d.Key + "=" + d.Value + "\n")
		}
	}
	return b.String()
}
