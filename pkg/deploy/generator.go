package deploy

import (
	"fmt"
	"os"
	"path/filepath"

	"container-deploy/pkg/quadlet"
)

// Names of the two output directories under the working directory.
// Units in ActiveDir are picked up by systemd; units in AvailableDir
// sit ready to be moved or symlinked into place by an operator.
const (
	ActiveDir    = "quadlets"
	AvailableDir = "quadlets-available"
)

// Generator writes Quadlet unit files for validated entity records.
// The whole batch is validated before the first file is written, so a
// fatal record leaves the working directory untouched.
type Generator struct {
	WorkDir string
	Diag    Diagnostics
}

// Containers generates one .container file per record. networks is
// the set of declared network names used for the Network suffix rule.
// An empty record list writes nothing and creates no directories.
func (g Generator) Containers(specs []quadlet.ContainerSpec, networks []string) error {
	for _, c := range specs {
		if err := ValidateContainer(c, g.Diag); err != nil {
			return err
		}
	}
	for _, c := range specs {
		text := quadlet.Render(c.Name, quadlet.ContainerDirectives(c, networks))
		if err := g.write(c.Name+".container", text, c.Enabled); err != nil {
			return err
		}
	}
	return nil
}

// Pods generates one .pod file per record.
func (g Generator) Pods(specs []quadlet.PodSpec, networks []string) error {
	for _, p := range specs {
		if err := ValidatePod(p, g.Diag); err != nil {
			return err
		}
	}
	for _, p := range specs {
		text := quadlet.Render(p.Name, quadlet.PodDirectives(p, networks))
		if err := g.write(p.Name+".pod", text, p.Enabled); err != nil {
			return err
		}
	}
	return nil
}

// Networks generates one .network file per record.
func (g Generator) Networks(specs []quadlet.NetworkSpec) error {
	for _, n := range specs {
		if err := ValidateNetwork(n, g.Diag); err != nil {
			return err
		}
	}
	for _, n := range specs {
		text := quadlet.Render(n.Name, quadlet.NetworkDirectives(n))
		if err := g.write(n.Name+".network", text, n.Enabled); err != nil {
			return err
		}
	}
	return nil
}

func (g Generator) write(filename, text string, enabled quadlet.Enabled) error {
	dir := filepath.Join(g.WorkDir, ActiveDir)
	if enabled.Disabled() {
		dir = filepath.Join(g.WorkDir, AvailableDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	g.Diag.Notef("Generated Quadlet file: %s", path)
	return nil
}
