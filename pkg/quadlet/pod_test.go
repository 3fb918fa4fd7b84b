package quadlet

import (
	"reflect"
	"testing"
)

func TestPodDirectives_Minimal(t *testing.T) {
	d := PodDirectives(PodSpec{Name: "testpod"}, nil)

	if v := sectionValue(d, "Unit", "Description"); v != "testpod pod" {
		t.Errorf("Expected Description 'testpod pod', got '%s'", v)
	}
	if v := sectionValue(d, "Unit", "Wants"); v != "network-online.target" {
		t.Errorf("Expected Wants=network-online.target, got '%s'", v)
	}
	after := sectionValues(d, "Unit", "After")
	want := []string{"network-online.target", "container-import.service"}
	if !reflect.DeepEqual(after, want) {
		t.Errorf("Expected After %v, got %v", want, after)
	}
	if v := sectionValue(d, "Install", "WantedBy"); v != "multi-user.target" {
		t.Errorf("Expected WantedBy=multi-user.target, got '%s'", v)
	}

	// With all optionals empty the Pod section holds only PodName.
	var podKeys []string
	for _, dir := range d {
		if dir.Section == "Pod" {
			podKeys = append(podKeys, dir.Key)
		}
	}
	if !reflect.DeepEqual(podKeys, []string{"PodName"}) {
		t.Errorf("Expected only PodName in [Pod], got %v", podKeys)
	}
}

func TestPodDirectives_NetworkSuffixRule(t *testing.T) {
	d := PodDirectives(PodSpec{Name: "p", Network: "mynet"}, []string{"mynet"})
	if v := sectionValue(d, "Pod", "Network"); v != "mynet.network" {
		t.Errorf("Expected mynet.network for a declared network, got '%s'", v)
	}

	d = PodDirectives(PodSpec{Name: "p", Network: "mynet"}, nil)
	if v := sectionValue(d, "Pod", "Network"); v != "mynet" {
		t.Errorf("Expected undeclared network unchanged, got '%s'", v)
	}
}

func TestPodDirectives_Optionals(t *testing.T) {
	d := PodDirectives(PodSpec{
		Name:      "full",
		Ports:     StringList{"9090:9090", "8080:8080"},
		Volumes:   StringList{"/data:/app/data:rw"},
		Labels:    KeyValues{"tier=backend"},
		DNS:       StringList{"8.8.8.8", "1.1.1.1"},
		DNSSearch: StringList{"example.com"},
		Hostname:  "full-host",
		IP:        "10.89.0.5",
		MAC:       "aa:bb:cc:dd:ee:ff",
		AddHost:   StringList{"peer:10.0.0.2"},
		Userns:    "keep-id",
	}, nil)

	ports := sectionValues(d, "Pod", "PublishPort")
	if !reflect.DeepEqual(ports, []string{"9090:9090", "8080:8080"}) {
		t.Errorf("Expected ports in input order, got %v", ports)
	}
	dns := sectionValues(d, "Pod", "DNS")
	if !reflect.DeepEqual(dns, []string{"8.8.8.8", "1.1.1.1"}) {
		t.Errorf("Expected DNS entries in order, got %v", dns)
	}

	checks := map[string]string{
		"Volume":    "/data:/app/data:rw",
		"Label":     "tier=backend",
		"DNSSearch": "example.com",
		"Hostname":  "full-host",
		"IP":        "10.89.0.5",
		"MAC":       "aa:bb:cc:dd:ee:ff",
		"AddHost":   "peer:10.0.0.2",
		"Userns":    "keep-id",
	}
	for key, want := range checks {
		if v := sectionValue(d, "Pod", key); v != want {
			t.Errorf("Expected %s=%s, got '%s'", key, want, v)
		}
	}
}
