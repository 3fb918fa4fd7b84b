package converter

import (
	"testing"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"container-deploy/pkg/quadlet"
)

func TestPodObjects_MembersShareDeployment(t *testing.T) {
	pod := quadlet.PodSpec{
		Name:  "stack",
		Ports: quadlet.StringList{"8080:80"},
	}
	members := []quadlet.ContainerSpec{
		{Name: "web", Image: "nginx:latest"},
		{Name: "cache", Image: "redis:7"},
	}

	objs, err := PodObjects(pod, members, "")
	if err != nil {
		t.Fatalf("PodObjects failed: %v", err)
	}

	var deployment *appsv1.Deployment
	var service *corev1.Service
	for _, obj := range objs {
		switch o := obj.(type) {
		case *appsv1.Deployment:
			deployment = o
		case *corev1.Service:
			service = o
		}
	}

	if deployment == nil {
		t.Fatal("Deployment not found")
	}
	if deployment.Name != "stack" {
		t.Errorf("Expected Deployment name 'stack', got '%s'", deployment.Name)
	}
	containers := deployment.Spec.Template.Spec.Containers
	if len(containers) != 2 {
		t.Fatalf("Expected 2 containers, got %d", len(containers))
	}
	if containers[0].Name != "web" || containers[1].Name != "cache" {
		t.Errorf("Expected members in declaration order, got %s, %s", containers[0].Name, containers[1].Name)
	}

	if service == nil {
		t.Fatal("Service not found")
	}
	if service.Spec.Ports[0].Port != 8080 {
		t.Errorf("Expected pod port 8080 on the Service, got %d", service.Spec.Ports[0].Port)
	}
}

func TestPodObjects_PodVolumesMountedInMembers(t *testing.T) {
	pod := quadlet.PodSpec{
		Name:    "datapod",
		Volumes: quadlet.StringList{"/data:/shared"},
	}
	members := []quadlet.ContainerSpec{
		{Name: "reader", Image: "img:1"},
		{Name: "writer", Image: "img:1"},
	}

	objs, err := PodObjects(pod, members, "")
	if err != nil {
		t.Fatalf("PodObjects failed: %v", err)
	}
	deployment := objs[0].(*appsv1.Deployment)

	for _, c := range deployment.Spec.Template.Spec.Containers {
		found := false
		for _, m := range c.VolumeMounts {
			if m.MountPath == "/shared" {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected pod volume mounted in container %s", c.Name)
		}
	}
}

func TestPodObjects_MemberVolumeNamesPrefixed(t *testing.T) {
	pod := quadlet.PodSpec{Name: "p"}
	members := []quadlet.ContainerSpec{
		{Name: "a", Image: "img:1", Volumes: quadlet.StringList{"/tmp/a:/work"}},
		{Name: "b", Image: "img:1", Volumes: quadlet.StringList{"/tmp/b:/work"}},
	}

	objs, err := PodObjects(pod, members, "")
	if err != nil {
		t.Fatalf("PodObjects failed: %v", err)
	}
	deployment := objs[0].(*appsv1.Deployment)

	seen := make(map[string]bool)
	for _, v := range deployment.Spec.Template.Spec.Volumes {
		if seen[v.Name] {
			t.Errorf("Duplicate volume name %s across pod members", v.Name)
		}
		seen[v.Name] = true
	}
}

func TestPodObjects_DuplicatePortRejected(t *testing.T) {
	pod := quadlet.PodSpec{
		Name:  "dup",
		Ports: quadlet.StringList{"8080:80", "8080:81"},
	}

	_, err := PodObjects(pod, nil, "")
	if err == nil {
		t.Fatal("Expected error for duplicate pod port")
	}
}

func TestNetworkObjects_ProducesNothing(t *testing.T) {
	objs, err := NetworkObjects(quadlet.NetworkSpec{Name: "appnet"})
	if err != nil {
		t.Fatalf("NetworkObjects failed: %v", err)
	}
	if objs != nil {
		t.Errorf("Expected no objects for a network, got %v", objs)
	}
}
