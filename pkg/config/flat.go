package config

import (
	"strings"

	"container-deploy/pkg/quadlet"
)

// FlatReader produces entity records from the flat variable namespace.
// Two layouts are supported: the multi-entity one, where CONTAINERS,
// PODS and NETWORKS list names and each field lives under
// <KIND>_<name>_<FIELD>, and the single-entity one, where the fields
// live directly under CONTAINER_<FIELD> or POD_<FIELD>.
type FlatReader struct {
	Vars Provider
}

// getter resolves one field of one entity to a string.
type getter func(field, def string) string

func (r FlatReader) entityGetter(prefix, name string) getter {
	return func(field, def string) string {
		return EntityVar(r.Vars, prefix, name, field, def)
	}
}

func (r FlatReader) singleGetter(prefix string) getter {
	return func(field, def string) string {
		return Get(r.Vars, prefix+"_"+field, def)
	}
}

func (r FlatReader) names(listVar string) []string {
	v, _ := r.Vars.GetVar(listVar)
	return strings.Fields(v)
}

// ContainerNames returns the declared container names in input order.
// An unset or empty CONTAINERS variable yields an empty list.
func (r FlatReader) ContainerNames() []string { return r.names("CONTAINERS") }

func (r FlatReader) PodNames() []string { return r.names("PODS") }

func (r FlatReader) NetworkNames() []string { return r.names("NETWORKS") }

// Containers reads every container declared in CONTAINERS.
func (r FlatReader) Containers() []quadlet.ContainerSpec {
	var specs []quadlet.ContainerSpec
	for _, name := range r.ContainerNames() {
		specs = append(specs, buildContainer(name, r.entityGetter("CONTAINER", name)))
	}
	return specs
}

func (r FlatReader) Pods() []quadlet.PodSpec {
	var specs []quadlet.PodSpec
	for _, name := range r.PodNames() {
		specs = append(specs, buildPod(name, r.entityGetter("POD", name)))
	}
	return specs
}

func (r FlatReader) Networks() []quadlet.NetworkSpec {
	var specs []quadlet.NetworkSpec
	for _, name := range r.NetworkNames() {
		specs = append(specs, buildNetwork(name, r.entityGetter("NETWORK", name)))
	}
	return specs
}

// SingleContainer reads the unprefixed CONTAINER_* layout. The second
// return is false when CONTAINER_NAME is unset, meaning the layout is
// not in use; an empty CONTAINER_NAME with other fields set is still
// returned so validation can reject it.
func (r FlatReader) SingleContainer() (quadlet.ContainerSpec, bool) {
	name, ok := r.Vars.GetVar("CONTAINER_NAME")
	if !ok {
		return quadlet.ContainerSpec{}, false
	}
	return buildContainer(name, r.singleGetter("CONTAINER")), true
}

// SinglePod reads the unprefixed POD_* layout.
func (r FlatReader) SinglePod() (quadlet.PodSpec, bool) {
	name, ok := r.Vars.GetVar("POD_NAME")
	if !ok {
		return quadlet.PodSpec{}, false
	}
	return buildPod(name, r.singleGetter("POD")), true
}

func buildContainer(name string, get getter) quadlet.ContainerSpec {
	return quadlet.ContainerSpec{
		Name:              name,
		Image:             get("IMAGE", ""),
		Ports:             quadlet.FieldsList(get("PORTS", "")),
		Volumes:           quadlet.FieldsList(get("VOLUMES", "")),
		Environment:       quadlet.KeyValues(quadlet.FieldsList(get("ENVIRONMENT", ""))),
		Network:           get("NETWORK", ""),
		NetworkAliases:    quadlet.FieldsList(get("NETWORK_ALIASES", "")),
		Pod:               get("POD", ""),
		DependsOn:         quadlet.FieldsList(get("DEPENDS_ON", "")),
		RestartPolicy:     get("RESTART", ""),
		Privileged:        quadlet.Bool(quadlet.ParseBool(get("PRIVILEGED", ""))),
		ReadOnly:          quadlet.Bool(quadlet.ParseBool(get("READ_ONLY", ""))),
		CapabilitiesAdd:   quadlet.FieldsList(get("CAPS_ADD", "")),
		CapabilitiesDrop:  quadlet.FieldsList(get("CAPS_DROP", "")),
		Devices:           quadlet.FieldsList(get("DEVICES", "")),
		User:              get("USER", ""),
		WorkingDir:        get("WORKING_DIR", ""),
		Labels:            quadlet.KeyValues(quadlet.FieldsList(get("LABELS", ""))),
		HealthCmd:         get("HEALTH_CMD", ""),
		HealthInterval:    get("HEALTH_INTERVAL", ""),
		HealthTimeout:     get("HEALTH_TIMEOUT", ""),
		HealthRetries:     quadlet.Scalar(get("HEALTH_RETRIES", "")),
		HealthStartPeriod: get("HEALTH_START_PERIOD", ""),
		Timezone:          get("TIMEZONE", ""),
		LogDriver:         get("LOG_DRIVER", ""),
		LogOpt:            quadlet.KeyValues(quadlet.FieldsList(get("LOG_OPT", ""))),
		Ulimits:           quadlet.KeyValues(quadlet.FieldsList(get("ULIMITS", ""))),
		StopTimeout:       quadlet.Scalar(get("STOP_TIMEOUT", "")),
		SecurityOpts:      quadlet.FieldsList(get("SECURITY_OPTS", "")),
		Sdnotify:          get("SDNOTIFY", ""),
		Cgroups:           get("CGROUPS", ""),
		Entrypoint:        get("ENTRYPOINT", ""),
		Command:           get("COMMAND", ""),
		MemoryLimit:       get("MEMORY_LIMIT", ""),
		CPULimit:          quadlet.Scalar(get("CPU_LIMIT", "")),
		Enabled:           quadlet.Enabled(get("ENABLED", "")),
	}
}

func buildPod(name string, get getter) quadlet.PodSpec {
	return quadlet.PodSpec{
		Name:      name,
		Ports:     quadlet.FieldsList(get("PORTS", "")),
		Network:   get("NETWORK", ""),
		Volumes:   quadlet.FieldsList(get("VOLUMES", "")),
		Labels:    quadlet.KeyValues(quadlet.FieldsList(get("LABELS", ""))),
		DNS:       quadlet.FieldsList(get("DNS", "")),
		DNSSearch: quadlet.FieldsList(get("DNS_SEARCH", "")),
		Hostname:  get("HOSTNAME", ""),
		IP:        get("IP", ""),
		MAC:       get("MAC", ""),
		AddHost:   quadlet.FieldsList(get("ADD_HOST", "")),
		Userns:    get("USERNS", ""),
		Enabled:   quadlet.Enabled(get("ENABLED", "")),
	}
}

func buildNetwork(name string, get getter) quadlet.NetworkSpec {
	return quadlet.NetworkSpec{
		Name:     name,
		Driver:   get("DRIVER", ""),
		Subnet:   get("SUBNET", ""),
		Gateway:  get("GATEWAY", ""),
		IPRange:  get("IP_RANGE", ""),
		IPv6:     quadlet.Bool(quadlet.ParseBool(get("IPV6", ""))),
		Internal: quadlet.Bool(quadlet.ParseBool(get("INTERNAL", ""))),
		DNS:      quadlet.FieldsList(get("DNS", "")),
		Labels:   quadlet.KeyValues(quadlet.FieldsList(get("LABELS", ""))),
		Options:  quadlet.KeyValues(quadlet.FieldsList(get("OPTIONS", ""))),
		Enabled:  quadlet.Enabled(get("ENABLED", "")),
	}
}
