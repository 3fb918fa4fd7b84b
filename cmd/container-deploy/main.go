// container-deploy reads container deployment configuration from a
// manifest document or flat build variables and generates Podman
// Quadlet unit files, with an optional Kubernetes export for
// development clusters.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	"container-deploy/pkg/config"
	"container-deploy/pkg/converter"
	"container-deploy/pkg/deploy"
	"container-deploy/pkg/quadlet"
)

var (
	workDir      string
	manifestPath string
	confPath     string
	varFlags     []string
	targetArch   string
	splitOutput  bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

func main() {
	rootCmd := &cobra.Command{
		Use:           "container-deploy",
		Short:         "Generate Podman Quadlet unit files from deployment configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write Quadlet unit files under the working directory",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&workDir, "workdir", "", "Output root (defaults to the WORKDIR variable, then the current directory)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration without writing any files",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}

	exportCmd := &cobra.Command{
		Use:   "export-kube",
		Short: "Export the configured entities as Kubernetes manifests",
		Args:  cobra.NoArgs,
		RunE:  runExportKube,
	}
	exportCmd.Flags().BoolVar(&splitOutput, "split", false, "Write one YAML file per entity instead of printing to stdout")

	for _, cmd := range []*cobra.Command{generateCmd, validateCmd, exportCmd} {
		cmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to a JSON or YAML manifest document")
		cmd.Flags().StringVar(&confPath, "conf", "", "Path to a KEY=VALUE conf file with flat variables")
		cmd.Flags().StringArrayVar(&varFlags, "var", nil, "Set one flat variable (KEY=VALUE, repeatable)")
		cmd.Flags().StringVar(&targetArch, "target-arch", "", "Target architecture (overrides the TARGET_ARCH variable)")
		rootCmd.AddCommand(cmd)
	}

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// source is the configuration after reading, independent of whether a
// manifest or flat variables supplied it.
type source struct {
	containers   []quadlet.ContainerSpec
	pods         []quadlet.PodSpec
	networks     []quadlet.NetworkSpec
	networkNames []string
	vars         config.Provider
}

func loadVars() (config.MapProvider, error) {
	vars := config.MapProvider{}
	if confPath != "" {
		loaded, err := config.FileProvider(confPath)
		if err != nil {
			return nil, err
		}
		for k, v := range loaded {
			vars[k] = v
		}
	}
	for _, kv := range varFlags {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--var must be KEY=VALUE, got %q", kv)
		}
		vars[k] = v
	}
	return vars, nil
}

func loadSource() (*source, error) {
	vars, err := loadVars()
	if err != nil {
		return nil, err
	}
	s := &source{vars: vars}

	path := manifestPath
	if path == "" {
		path = config.Get(vars, "CONTAINER_MANIFEST", "")
	}
	if path != "" {
		m, err := config.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		s.containers = m.Containers
		s.pods = m.Pods
		s.networks = m.Networks
		s.networkNames = m.NetworkNames()
		return s, nil
	}

	r := config.FlatReader{Vars: vars}
	s.containers = r.Containers()
	s.pods = r.Pods()
	s.networks = r.Networks()
	s.networkNames = r.NetworkNames()

	// The single-entity layout can coexist with the lists; its record
	// is simply appended.
	if c, ok := r.SingleContainer(); ok {
		s.containers = append(s.containers, c)
	}
	if p, ok := r.SinglePod(); ok {
		s.pods = append(s.pods, p)
	}
	return s, nil
}

func (s *source) arch() string {
	a := targetArch
	if a == "" {
		a = config.Get(s.vars, "TARGET_ARCH", "")
	}
	return config.OCIArch(a)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := loadSource()
	if err != nil {
		return err
	}

	dir := workDir
	if dir == "" {
		dir = config.Get(s.vars, "WORKDIR", ".")
	}

	g := deploy.Generator{
		WorkDir: dir,
		Diag:    deploy.LogDiagnostics{Logger: logger},
	}
	if err := g.Networks(s.networks); err != nil {
		return err
	}
	if err := g.Pods(s.pods, s.networkNames); err != nil {
		return err
	}
	return g.Containers(s.containers, s.networkNames)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := loadSource()
	if err != nil {
		return err
	}

	diag := deploy.LogDiagnostics{Logger: logger}
	for _, n := range s.networks {
		if err := deploy.ValidateNetwork(n, diag); err != nil {
			return err
		}
	}
	for _, p := range s.pods {
		if err := deploy.ValidatePod(p, diag); err != nil {
			return err
		}
	}
	for _, c := range s.containers {
		if err := deploy.ValidateContainer(c, diag); err != nil {
			return err
		}
	}
	logger.Info("configuration is valid",
		"containers", len(s.containers), "pods", len(s.pods), "networks", len(s.networks))
	return nil
}

func runExportKube(cmd *cobra.Command, args []string) error {
	s, err := loadSource()
	if err != nil {
		return err
	}
	arch := s.arch()

	declaredPods := make(map[string]bool)
	for _, p := range s.pods {
		declaredPods[p.Name] = true
	}

	type result struct {
		Name    string
		Objects []runtime.Object
	}
	var results []result

	for _, n := range s.networks {
		objects, err := converter.NetworkObjects(n)
		if err != nil {
			return err
		}
		if len(objects) > 0 {
			results = append(results, result{Name: n.Name, Objects: objects})
		}
	}

	for _, p := range s.pods {
		var members []quadlet.ContainerSpec
		for _, c := range s.containers {
			if c.Pod == p.Name {
				members = append(members, c)
			}
		}
		objects, err := converter.PodObjects(p, members, arch)
		if err != nil {
			return err
		}
		results = append(results, result{Name: p.Name, Objects: objects})
	}

	for _, c := range s.containers {
		if c.Pod != "" {
			if declaredPods[c.Pod] {
				continue
			}
			logger.Warn("container references an undeclared pod; exporting as a standalone Deployment",
				"container", c.Name, "pod", c.Pod)
		}
		objects, err := converter.ContainerObjects(c, arch)
		if err != nil {
			return err
		}
		results = append(results, result{Name: c.Name, Objects: objects})
	}

	first := true
	for _, res := range results {
		if splitOutput {
			outFilename := res.Name + ".yaml"
			// #nosec G304
			f, err := os.Create(outFilename)
			if err != nil {
				return fmt.Errorf("failed to create output file %s: %w", outFilename, err)
			}
			for i, obj := range res.Objects {
				if i > 0 {
					if _, err := f.WriteString("---\n"); err != nil {
						_ = f.Close()
						return fmt.Errorf("failed to write separator to %s: %w", outFilename, err)
					}
				}
				data, err := yaml.Marshal(obj)
				if err != nil {
					_ = f.Close()
					return fmt.Errorf("failed to marshal object: %w", err)
				}
				if _, err := f.Write(data); err != nil {
					_ = f.Close()
					return fmt.Errorf("failed to write %s: %w", outFilename, err)
				}
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", outFilename, err)
			}
			continue
		}

		for _, obj := range res.Objects {
			if !first {
				fmt.Println("---")
			}
			first = false
			data, err := yaml.Marshal(obj)
			if err != nil {
				return fmt.Errorf("failed to marshal object: %w", err)
			}
			fmt.Print(string(data))
		}
	}

	return nil
}
