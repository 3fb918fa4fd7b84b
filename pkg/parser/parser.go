// Package parser reads systemd/Quadlet unit-file text back into a
// structured form. Generation only ever writes these files; the parser
// exists so tests and tooling can verify what was written, including
// repeated keys and section order.
package parser

import (
	"bufio"
	"io"
	"strings"
)

type Option struct {
	Key   string
	Value string
}

// Section holds one [Name] block with its options in file order.
type Section struct {
	Name    string
	Options []Option
}

// File is a parsed unit file. Sections keep their file order; repeated
// keys within a section stay as separate options.
type File struct {
	Sections []Section
}

// Parse reads unit-file text. Comment lines (# or ;) and blank lines
// are skipped; a trailing backslash joins the next line with a space,
// as systemd.unit(5) specifies. Lines before the first section header
// and lines without "=" are ignored.
func Parse(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	f := &File{}

	var buffer strings.Builder
	inContinuation := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if inContinuation {
			buffer.WriteString(" ")
		} else {
			buffer.Reset()
		}

		if strings.HasSuffix(line, "\\") {
			buffer.WriteString(line[:len(line)-1])
			inContinuation = true
			continue
		}
		buffer.WriteString(line)
		inContinuation = false

		full := buffer.String()
		if strings.HasPrefix(full, "[") && strings.HasSuffix(full, "]") {
			f.Sections = append(f.Sections, Section{Name: full[1 : len(full)-1]})
			continue
		}
		if len(f.Sections) == 0 {
			continue
		}
		key, value, ok := strings.Cut(full, "=")
		if !ok {
			continue
		}
		cur := &f.Sections[len(f.Sections)-1]
		cur.Options = append(cur.Options, Option{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*File, error) {
	return Parse(strings.NewReader(s))
}

// Section returns the first section with the given name, or nil.
func (f *File) Section(name string) *Section {
	for i := range f.Sections {
		if f.Sections[i].Name == name {
			return &f.Sections[i]
		}
	}
	return nil
}

// SectionNames returns the section names in file order.
func (f *File) SectionNames() []string {
	names := make([]string, 0, len(f.Sections))
	for _, s := range f.Sections {
		names = append(names, s.Name)
	}
	return names
}

// Value returns the first value for key and whether it was present.
func (s *Section) Value(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, o := range s.Options {
		if o.Key == key {
			return o.Value, true
		}
	}
	return "", false
}

// Values returns every value for key, in file order.
func (s *Section) Values(key string) []string {
	if s == nil {
		return nil
	}
	var vals []string
	for _, o := range s.Options {
		if o.Key == key {
			vals = append(vals, o.Value)
		}
	}
	return vals
}
