package quadlet

// ContainerSpec describes one container to be launched by Podman's
// systemd integration. Field tags follow the manifest document schema;
// the flat-variable reader fills the same struct.
type ContainerSpec struct {
	Name              string     `json:"name"`
	Image             string     `json:"image"`
	Ports             StringList `json:"ports"`
	Volumes           StringList `json:"volumes"`
	Environment       KeyValues  `json:"environment"`
	Network           string     `json:"network"`
	NetworkAliases    StringList `json:"network_aliases"`
	Pod               string     `json:"pod"`
	DependsOn         StringList `json:"depends_on"`
	RestartPolicy     string     `json:"restart_policy"`
	Privileged        Bool       `json:"privileged"`
	ReadOnly          Bool       `json:"read_only"`
	CapabilitiesAdd   StringList `json:"capabilities_add"`
	CapabilitiesDrop  StringList `json:"capabilities_drop"`
	Devices           StringList `json:"devices"`
	User              string     `json:"user"`
	WorkingDir        string     `json:"working_dir"`
	Labels            KeyValues  `json:"labels"`
	HealthCmd         string     `json:"health_cmd"`
	HealthInterval    string     `json:"health_interval"`
	HealthTimeout     string     `json:"health_timeout"`
	HealthRetries     Scalar     `json:"health_retries"`
	HealthStartPeriod string     `json:"health_start_period"`
	Timezone          string     `json:"timezone"`
	LogDriver         string     `json:"log_driver"`
	LogOpt            KeyValues  `json:"log_opt"`
	Ulimits           KeyValues  `json:"ulimits"`
	StopTimeout       Scalar     `json:"stop_timeout"`
	SecurityOpts      StringList `json:"security_opts"`
	Sdnotify          string     `json:"sdnotify"`
	Cgroups           string     `json:"cgroups"`
	Entrypoint        string     `json:"entrypoint"`
	Command           string     `json:"command"`
	MemoryLimit       string     `json:"memory_limit"`
	CPULimit          Scalar     `json:"cpu_limit"`
	Enabled           Enabled    `json:"enabled"`
}

// PodSpec describes one Podman pod.
type PodSpec struct {
	Name      string     `json:"name"`
	Ports     StringList `json:"ports"`
	Network   string     `json:"network"`
	Volumes   StringList `json:"volumes"`
	Labels    KeyValues  `json:"labels"`
	DNS       StringList `json:"dns"`
	DNSSearch StringList `json:"dns_search"`
	Hostname  string     `json:"hostname"`
	IP        string     `json:"ip"`
	MAC       string     `json:"mac"`
	AddHost   StringList `json:"add_host"`
	Userns    string     `json:"userns"`
	Enabled   Enabled    `json:"enabled"`
}

// NetworkSpec describes one Podman network.
type NetworkSpec struct {
	Name     string     `json:"name"`
	Driver   string     `json:"driver"`
	Subnet   string     `json:"subnet"`
	Gateway  string     `json:"gateway"`
	IPRange  string     `json:"ip_range"`
	IPv6     Bool       `json:"ipv6"`
	Internal Bool       `json:"internal"`
	DNS      StringList `json:"dns"`
	Labels   KeyValues  `json:"labels"`
	Options  KeyValues  `json:"options"`
	Enabled  Enabled    `json:"enabled"`
}

// Directive is one Key=Value line destined for a named section of a
// Quadlet unit file. Mappers emit directives already in output order;
// the renderer never reorders them.
type Directive struct {
	Section string
	Key     string
	Value   string
}

// DefaultRestartPolicy is used when a container leaves its restart
// policy unset or empty.
const DefaultRestartPolicy = "always"

var restartPolicies = []string{"always", "on-failure", "no"}

// ValidRestartPolicy reports whether v is a restart policy Podman's
// systemd generator accepts. The empty string is accepted and means
// DefaultRestartPolicy.
func ValidRestartPolicy(v string) bool {
	if v == "" {
		return true
	}
	for _, p := range restartPolicies {
		if v == p {
			return true
		}
	}
	return false
}

// RestartPolicies returns the accepted non-empty policy values, in the
// order they appear in error messages.
func RestartPolicies() []string {
	return restartPolicies
}
