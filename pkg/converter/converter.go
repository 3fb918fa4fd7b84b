// Package converter translates entity records into Kubernetes
// manifests, so a deployment described for the image can also be
// applied to a development cluster.
package converter

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/intstr"

	"container-deploy/pkg/quadlet"
)

// ContainerObjects converts one container record into a Deployment,
// plus a ClusterIP Service when the record publishes ports. arch is
// the OCI architecture label used as a node selector; empty means no
// selector.
func ContainerObjects(c quadlet.ContainerSpec, arch string) ([]runtime.Object, error) {
	container, volumes, servicePorts, err := buildContainer(c)
	if err != nil {
		return nil, err
	}

	labels := map[string]string{
		"app.kubernetes.io/name": c.Name,
	}

	deployment := newDeployment(c.Name, labels, corev1.PodSpec{
		Containers:   []corev1.Container{*container},
		Volumes:      volumes,
		NodeSelector: nodeSelector(arch),
	})

	objects := []runtime.Object{deployment}
	if len(servicePorts) > 0 {
		objects = append(objects, newService(c.Name, labels, servicePorts))
	}
	return objects, nil
}

// PodObjects converts one pod record and its member containers into a
// single Deployment; pod-level volumes are mounted into every member.
// The Service publishes the pod's ports, matching Podman's model where
// the pod owns the network namespace.
func PodObjects(p quadlet.PodSpec, members []quadlet.ContainerSpec, arch string) ([]runtime.Object, error) {
	labels := map[string]string{
		"app.kubernetes.io/name": p.Name,
	}

	var podContainers []corev1.Container
	var podVolumes []corev1.Volume
	var podVolumeMounts []corev1.VolumeMount

	for i, volSpec := range p.Volumes {
		vol, mount, err := parseVolumeSpec(volSpec, fmt.Sprintf("pod-vol-%d", i))
		if err != nil {
			return nil, err
		}
		podVolumes = append(podVolumes, *vol)
		podVolumeMounts = append(podVolumeMounts, *mount)
	}

	for _, m := range members {
		container, cVolumes, _, err := buildContainer(m)
		if err != nil {
			return nil, err
		}

		// Volume names must stay unique across members.
		for j := range cVolumes {
			oldName := cVolumes[j].Name
			newName := fmt.Sprintf("%s-%s", m.Name, oldName)
			cVolumes[j].Name = newName
			for k := range container.VolumeMounts {
				if container.VolumeMounts[k].Name == oldName {
					container.VolumeMounts[k].Name = newName
				}
			}
		}

		container.VolumeMounts = append(container.VolumeMounts, podVolumeMounts...)
		podContainers = append(podContainers, *container)
		podVolumes = append(podVolumes, cVolumes...)
	}

	deployment := newDeployment(p.Name, labels, corev1.PodSpec{
		Containers:   podContainers,
		Volumes:      podVolumes,
		NodeSelector: nodeSelector(arch),
	})
	objects := []runtime.Object{deployment}

	var servicePorts []corev1.ServicePort
	seen := make(map[int32]string)
	for i, portSpec := range p.Ports {
		_, _, sPort, err := parsePortSpec(portSpec, fmt.Sprintf("pod-port-%d", i))
		if err != nil {
			continue
		}
		if definedIn, ok := seen[sPort.Port]; ok {
			return nil, fmt.Errorf("duplicate port definition in pod %s: port %d is already defined in %s", p.Name, sPort.Port, definedIn)
		}
		seen[sPort.Port] = fmt.Sprintf("port index %d", i)
		servicePorts = append(servicePorts, *sPort)
	}
	if len(servicePorts) > 0 {
		objects = append(objects, newService(p.Name, labels, servicePorts))
	}

	return objects, nil
}

// NetworkObjects exists for symmetry; Podman network records have no
// Kubernetes equivalent (CNI owns networking), so it only warns.
func NetworkObjects(n quadlet.NetworkSpec) ([]runtime.Object, error) {
	fmt.Fprintf(os.Stderr, "Warning: network %s skipped. Kubernetes handles networking through CNI; Podman network definitions do not map to cluster resources.\n", n.Name)
	return nil, nil
}

func newDeployment(name string, labels map[string]string, podSpec corev1.PodSpec) *appsv1.Deployment {
	replicas := int32(1)
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{
				MatchLabels: labels,
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: podSpec,
			},
		},
	}
}

func newService(name string, labels map[string]string, ports []corev1.ServicePort) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: labels,
		},
		Spec: corev1.ServiceSpec{
			Selector: labels,
			Ports:    ports,
			Type:     corev1.ServiceTypeClusterIP,
		},
	}
}

func nodeSelector(arch string) map[string]string {
	if arch == "" {
		return nil
	}
	return map[string]string{"kubernetes.io/arch": arch}
}

func buildContainer(c quadlet.ContainerSpec) (*corev1.Container, []corev1.Volume, []corev1.ServicePort, error) {
	var env []corev1.EnvVar
	for _, e := range c.Environment.Pairs() {
		k, v, _ := strings.Cut(e, "=")
		env = append(env, corev1.EnvVar{Name: k, Value: v})
	}

	var command []string
	var args []string
	if c.Entrypoint != "" {
		parsed, err := SplitArgs(c.Entrypoint)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing entrypoint: %w", err)
		}
		command = parsed
	}
	if c.Command != "" {
		parsed, err := SplitArgs(c.Command)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing command: %w", err)
		}
		args = parsed
	}

	var containerPorts []corev1.ContainerPort
	var servicePorts []corev1.ServicePort
	seen := make(map[int32]string)

	for i, portSpec := range c.Ports {
		cPort, _, sPort, err := parsePortSpec(portSpec, fmt.Sprintf("port-%d", i))
		if err != nil {
			continue
		}
		if definedIn, ok := seen[sPort.Port]; ok {
			return nil, nil, nil, fmt.Errorf("duplicate port definition in container %s: port %d is already defined in %s", c.Name, sPort.Port, definedIn)
		}
		seen[sPort.Port] = fmt.Sprintf("port index %d", i)
		containerPorts = append(containerPorts, *cPort)
		servicePorts = append(servicePorts, *sPort)
	}

	var volumeMounts []corev1.VolumeMount
	var volumes []corev1.Volume
	for i, volSpec := range c.Volumes {
		vol, mount, err := parseVolumeSpec(volSpec, fmt.Sprintf("vol-%d", i))
		if err != nil {
			continue
		}
		volumes = append(volumes, *vol)
		volumeMounts = append(volumeMounts, *mount)
	}

	// Podman treats a string HealthCmd as CMD-SHELL; "sh -c" is the
	// matching exec form. "none" disables the check.
	var livenessProbe *corev1.Probe
	if c.HealthCmd != "" && c.HealthCmd != "none" {
		livenessProbe = &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				Exec: &corev1.ExecAction{
					Command: []string{"sh", "-c", c.HealthCmd},
				},
			},
		}
		livenessProbe.PeriodSeconds = durationSeconds(c.HealthInterval)
		livenessProbe.TimeoutSeconds = durationSeconds(c.HealthTimeout)
		livenessProbe.InitialDelaySeconds = durationSeconds(c.HealthStartPeriod)
		if retries, err := strconv.Atoi(string(c.HealthRetries)); err == nil && retries > 0 {
			livenessProbe.FailureThreshold = int32(retries) // #nosec G109
		}
	}

	resources := corev1.ResourceRequirements{}
	if c.MemoryLimit != "" {
		if q, err := resource.ParseQuantity(memoryQuantity(c.MemoryLimit)); err == nil {
			resources.Limits = corev1.ResourceList{corev1.ResourceMemory: q}
			resources.Requests = corev1.ResourceList{corev1.ResourceMemory: q}
		}
	}
	if c.CPULimit != "" {
		if q, err := resource.ParseQuantity(string(c.CPULimit)); err == nil {
			if resources.Limits == nil {
				resources.Limits = corev1.ResourceList{}
			}
			resources.Limits[corev1.ResourceCPU] = q
		}
	}

	securityContext := &corev1.SecurityContext{}
	hasSecurityContext := false

	if c.User != "" {
		user := c.User
		if u, _, found := strings.Cut(user, ":"); found {
			user = u
		}
		if uid, err := strconv.ParseInt(user, 10, 64); err == nil {
			securityContext.RunAsUser = &uid
			hasSecurityContext = true
		}
	}
	if bool(c.ReadOnly) {
		ro := true
		securityContext.ReadOnlyRootFilesystem = &ro
		hasSecurityContext = true
	}
	if bool(c.Privileged) {
		priv := true
		securityContext.Privileged = &priv
		hasSecurityContext = true
	}
	if len(c.CapabilitiesAdd) > 0 || len(c.CapabilitiesDrop) > 0 {
		caps := &corev1.Capabilities{}
		for _, cap := range c.CapabilitiesAdd {
			caps.Add = append(caps.Add, corev1.Capability(strings.ToUpper(cap)))
		}
		for _, cap := range c.CapabilitiesDrop {
			caps.Drop = append(caps.Drop, corev1.Capability(strings.ToUpper(cap)))
		}
		securityContext.Capabilities = caps
		hasSecurityContext = true
	}

	var sc *corev1.SecurityContext
	if hasSecurityContext {
		sc = securityContext
	}

	container := &corev1.Container{
		Name:            c.Name,
		Image:           c.Image,
		Command:         command,
		Args:            args,
		Env:             env,
		Ports:           containerPorts,
		WorkingDir:      c.WorkingDir,
		VolumeMounts:    volumeMounts,
		LivenessProbe:   livenessProbe,
		Resources:       resources,
		SecurityContext: sc,
	}

	return container, volumes, servicePorts, nil
}

func durationSeconds(s string) int32 {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		// Bare numbers mean seconds in Podman health options.
		n, nerr := strconv.Atoi(s)
		if nerr != nil {
			return 0
		}
		d = time.Duration(n) * time.Second
	}
	if d.Seconds() > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(d.Seconds())
}

// memoryQuantity rewrites Podman's memory suffixes (b, k, m, g) into
// Kubernetes binary quantities. A bare "m" suffix would otherwise
// parse as millibytes.
func memoryQuantity(v string) string {
	suffixes := map[byte]string{'b': "", 'k': "Ki", 'm': "Mi", 'g': "Gi"}
	if len(v) < 2 {
		return v
	}
	last := v[len(v)-1] | 0x20
	repl, ok := suffixes[last]
	if !ok {
		return v
	}
	if _, err := strconv.Atoi(v[:len(v)-1]); err != nil {
		return v
	}
	return v[:len(v)-1] + repl
}

func parsePortSpec(spec string, name string) (*corev1.ContainerPort, int, *corev1.ServicePort, error) {
	protocol := corev1.ProtocolTCP
	if rest, proto, found := strings.Cut(spec, "/"); found {
		spec = rest
		if strings.EqualFold(proto, "udp") {
			protocol = corev1.ProtocolUDP
		}
	}

	parts := strings.Split(spec, ":")
	var containerPortStr, hostPortStr string

	switch len(parts) {
	case 1:
		containerPortStr = parts[0]
		hostPortStr = parts[0]
	case 2:
		hostPortStr = parts[0]
		containerPortStr = parts[1]
		if hostPortStr == "" {
			hostPortStr = containerPortStr
		}
	default:
		// host-ip:host-port:container-port
		containerPortStr = parts[len(parts)-1]
		hostPortStr = parts[len(parts)-2]
	}

	cPort, err := strconv.Atoi(containerPortStr)
	if err != nil {
		return nil, 0, nil, err
	}
	hPort, err := strconv.Atoi(hostPortStr)
	if err != nil {
		hPort = cPort
	}

	if cPort > 65535 || cPort < 0 {
		return nil, 0, nil, fmt.Errorf("container port %d out of valid range (0-65535)", cPort)
	}
	if hPort > 65535 || hPort < 0 {
		return nil, 0, nil, fmt.Errorf("host port %d out of valid range (0-65535)", hPort)
	}

	cp := &corev1.ContainerPort{
		Name:          name,
		ContainerPort: int32(cPort), // #nosec G109
		Protocol:      protocol,
	}
	sp := &corev1.ServicePort{
		Name:       name,
		Port:       int32(hPort), // #nosec G109
		TargetPort: intstr.FromInt(cPort),
		Protocol:   protocol,
	}
	return cp, hPort, sp, nil
}

func parseVolumeSpec(spec string, name string) (*corev1.Volume, *corev1.VolumeMount, error) {
	parts := strings.Split(spec, ":")
	var source, dest string
	var readOnly bool

	if len(parts) == 1 {
		dest = parts[0]
	} else {
		last := parts[len(parts)-1]
		isOption := false
		if strings.Contains(last, ",") || last == "ro" || last == "rw" || last == "z" || last == "Z" {
			isOption = true
			if last == "ro" || strings.Contains(last, "ro,") || strings.Contains(last, ",ro") {
				readOnly = true
			}
		}

		if isOption {
			dest = parts[len(parts)-2]
			if len(parts) > 2 {
				source = strings.Join(parts[:len(parts)-2], ":")
			}
		} else {
			dest = parts[len(parts)-1]
			source = strings.Join(parts[:len(parts)-1], ":")
		}
	}

	vm := &corev1.VolumeMount{
		Name:      name,
		MountPath: dest,
		ReadOnly:  readOnly,
	}

	var vol *corev1.Volume
	switch {
	case source == "":
		vol = &corev1.Volume{
			Name: name,
			VolumeSource: corev1.VolumeSource{
				EmptyDir: &corev1.EmptyDirVolumeSource{},
			},
		}
	case strings.HasPrefix(source, "/") || strings.HasPrefix(source, "."):
		vol = &corev1.Volume{
			Name: name,
			VolumeSource: corev1.VolumeSource{
				HostPath: &corev1.HostPathVolumeSource{
					Path: source,
				},
			},
		}
	default:
		// A named Podman volume becomes a claim of the same name.
		vol = &corev1.Volume{
			Name: name,
			VolumeSource: corev1.VolumeSource{
				PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
					ClaimName: source,
				},
			},
		}
	}

	return vol, vm, nil
}
