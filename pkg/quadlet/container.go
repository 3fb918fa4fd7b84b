package quadlet

// SdnotifyConmon is Podman's implicit default notify mode; no
// --sdnotify argument is emitted for it.
const SdnotifyConmon = "conmon"

// ContainerDirectives maps one container spec to its unit-file
// directives. networks is the full set of declared network names; the
// Network value gets a ".network" suffix only when it matches one of
// them exactly, so reserved modes like host or bridge pass through
// untouched unless somebody declared a network by that name.
func ContainerDirectives(c ContainerSpec, networks []string) []Directive {
	var d []Directive
	unit := func(k, v string) { d = append(d, Directive{"Unit", k, v}) }
	ctr := func(k, v string) { d = append(d, Directive{"Container", k, v}) }
	svc := func(k, v string) { d = append(d, Directive{"Service", k, v}) }

	unit("Description", c.Name+" container service")
	unit("Wants", "network-online.target")
	unit("After", "network-online.target")
	for _, dep := range c.DependsOn {
		unit("After", dep+".service")
		unit("Requires", dep+".service")
	}

	ctr("Image", c.Image)
	if c.Network != "" {
		ctr("Network", ResolveNetwork(c.Network, networks))
	}
	if c.Pod != "" {
		ctr("Pod", c.Pod+".pod")
	}
	for _, p := range c.Ports {
		ctr("PublishPort", p)
	}
	for _, v := range c.Volumes {
		ctr("Volume", v)
	}
	for _, e := range c.Environment.Pairs() {
		ctr("Environment", e)
	}
	if bool(c.Privileged) {
		ctr("SecurityLabelDisable", "true")
		ctr("PodmanArgs", "--privileged")
	}
	for _, cap := range c.CapabilitiesAdd {
		ctr("AddCapability", cap)
	}
	for _, cap := range c.CapabilitiesDrop {
		ctr("DropCapability", cap)
	}
	if bool(c.ReadOnly) {
		ctr("ReadOnly", "true")
	}
	if c.MemoryLimit != "" {
		ctr("PodmanArgs", "--memory "+c.MemoryLimit)
	}
	if c.CPULimit != "" {
		ctr("PodmanArgs", "--cpus "+string(c.CPULimit))
	}
	for _, dev := range c.Devices {
		ctr("AddDevice", dev)
	}
	if c.User != "" {
		ctr("User", c.User)
	}
	if c.WorkingDir != "" {
		ctr("WorkingDir", c.WorkingDir)
	}
	if c.Timezone != "" {
		ctr("Timezone", c.Timezone)
	}
	if c.LogDriver != "" {
		ctr("LogDriver", c.LogDriver)
	}
	for _, l := range c.Labels.Pairs() {
		ctr("Label", l)
	}
	if c.HealthCmd != "" {
		ctr("HealthCmd", c.HealthCmd)
	}
	if c.HealthInterval != "" {
		ctr("HealthInterval", c.HealthInterval)
	}
	if c.HealthTimeout != "" {
		ctr("HealthTimeout", c.HealthTimeout)
	}
	if c.HealthRetries != "" {
		ctr("HealthRetries", string(c.HealthRetries))
	}
	if c.HealthStartPeriod != "" {
		ctr("HealthStartPeriod", c.HealthStartPeriod)
	}
	for _, o := range c.LogOpt.Pairs() {
		ctr("PodmanArgs", "--log-opt "+o)
	}
	for _, u := range c.Ulimits {
		ctr("Ulimit", u)
	}
	for _, o := range c.SecurityOpts {
		ctr("SecurityOpt", o)
	}
	notify := "false"
	if c.Sdnotify == "container" {
		notify = "true"
	}
	ctr("Notify", notify)
	if c.Sdnotify != "" && c.Sdnotify != SdnotifyConmon {
		ctr("PodmanArgs", "--sdnotify "+c.Sdnotify)
	}
	if c.Cgroups != "" {
		ctr("PodmanArgs", "--cgroups "+c.Cgroups)
	}
	if c.Entrypoint != "" {
		ctr("Exec", c.Entrypoint)
	}
	if c.Command != "" {
		ctr("Exec", c.Command)
	}
	for _, a := range c.NetworkAliases {
		ctr("PodmanArgs", "--network-alias "+a)
	}

	restart := c.RestartPolicy
	if restart == "" {
		restart = DefaultRestartPolicy
	}
	svc("Restart", restart)
	svc("TimeoutStartSec", "900")
	if c.StopTimeout != "" {
		svc("TimeoutStopSec", string(c.StopTimeout))
	}

	d = append(d, Directive{"Install", "WantedBy", "multi-user.target"})
	return d
}

// ResolveNetwork applies the network suffix rule: the value gets a
// ".network" suffix only when it exactly equals a declared network
// name. The test is textual, not semantic.
func ResolveNetwork(value string, networks []string) string {
	for _, n := range networks {
		if n == value {
			return value + ".network"
		}
	}
	return value
}
