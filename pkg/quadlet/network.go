package quadlet

// NetworkDirectives maps one network spec to its unit-file directives.
func NetworkDirectives(n NetworkSpec) []Directive {
	var d []Directive
	net := func(k, v string) { d = append(d, Directive{"Network", k, v}) }

	d = append(d, Directive{"Unit", "Description", n.Name + " network"})

	net("NetworkName", n.Name)
	if n.Driver != "" {
		net("Driver", n.Driver)
	}
	if n.Subnet != "" {
		net("Subnet", n.Subnet)
	}
	if n.Gateway != "" {
		net("Gateway", n.Gateway)
	}
	if n.IPRange != "" {
		net("IPRange", n.IPRange)
	}
	if bool(n.IPv6) {
		net("IPv6", "true")
	}
	if bool(n.Internal) {
		net("Internal", "true")
	}
	for _, s := range n.DNS {
		net("DNS", s)
	}
	for _, l := range n.Labels.Pairs() {
		net("Label", l)
	}
	for _, o := range n.Options {
		net("Options", o)
	}

	d = append(d, Directive{"Install", "WantedBy", "multi-user.target"})
	return d
}
