package quadlet

// PodDirectives maps one pod spec to its unit-file directives. The pod
// unit waits for container image import in addition to the network,
// since member containers cannot start before their images exist.
func PodDirectives(p PodSpec, networks []string) []Directive {
	var d []Directive
	unit := func(k, v string) { d = append(d, Directive{"Unit", k, v}) }
	pod := func(k, v string) { d = append(d, Directive{"Pod", k, v}) }

	unit("Description", p.Name+" pod")
	unit("Wants", "network-online.target")
	unit("After", "network-online.target")
	unit("After", "container-import.service")

	pod("PodName", p.Name)
	for _, port := range p.Ports {
		pod("PublishPort", port)
	}
	if p.Network != "" {
		pod("Network", ResolveNetwork(p.Network, networks))
	}
	for _, v := range p.Volumes {
		pod("Volume", v)
	}
	for _, l := range p.Labels.Pairs() {
		pod("Label", l)
	}
	for _, s := range p.DNS {
		pod("DNS", s)
	}
	for _, s := range p.DNSSearch {
		pod("DNSSearch", s)
	}
	if p.Hostname != "" {
		pod("Hostname", p.Hostname)
	}
	if p.IP != "" {
		pod("IP", p.IP)
	}
	if p.MAC != "" {
		pod("MAC", p.MAC)
	}
	for _, h := range p.AddHost {
		pod("AddHost", h)
	}
	if p.Userns != "" {
		pod("Userns", p.Userns)
	}

	d = append(d, Directive{"Install", "WantedBy", "multi-user.target"})
	return d
}
