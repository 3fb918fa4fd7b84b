package deploy

import (
	"fmt"
	"strings"

	"container-deploy/pkg/quadlet"
)

// FatalError aborts the whole generation task. The message names the
// offending field and, where one exists, the entity, so the build log
// points straight at the bad variable.
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string { return e.Message }

func fatalf(format string, args ...any) *FatalError {
	return &FatalError{Message: fmt.Sprintf(format, args...)}
}

// ValidateContainer checks one container record. Missing required
// fields and unknown restart policies are fatal; risky but legal
// configurations only produce warnings and never block generation.
func ValidateContainer(c quadlet.ContainerSpec, diag Diagnostics) error {
	if c.Name == "" {
		return fatalf("CONTAINER_NAME must be set")
	}
	if c.Image == "" {
		return fatalf("CONTAINER_IMAGE must be set for container %s", c.Name)
	}
	if !quadlet.ValidRestartPolicy(c.RestartPolicy) {
		return fatalf("CONTAINER_RESTART must be one of %s (got '%s')",
			strings.Join(quadlet.RestartPolicies(), ", "), c.RestartPolicy)
	}

	if bool(c.Privileged) {
		diag.Warnf("container %s runs privileged; the host is fully exposed to it", c.Name)
	}
	if c.Network == "host" {
		diag.Warnf("container %s uses host networking; no network isolation applies", c.Name)
	}
	if c.Pod != "" && len(c.Ports) > 0 {
		diag.Warnf("container %s is a pod member and also publishes ports; the pod owns the network namespace, so publish the ports on pod %s instead", c.Name, c.Pod)
	}
	return nil
}

// ValidatePod checks one pod record.
func ValidatePod(p quadlet.PodSpec, diag Diagnostics) error {
	if p.Name == "" {
		return fatalf("POD_NAME must be set")
	}
	if p.Network == "host" {
		diag.Warnf("pod %s uses host networking; no network isolation applies", p.Name)
	}
	return nil
}

// ValidateNetwork checks one network record.
func ValidateNetwork(n quadlet.NetworkSpec, diag Diagnostics) error {
	if n.Name == "" {
		return fatalf("NETWORK_NAME must be set")
	}
	return nil
}
