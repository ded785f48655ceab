// Package docker wraps the docker CLI operations the sandbox tool needs.
//
// Probes share the fail-soft contract of the git package: a failed docker
// invocation yields an empty or false result, never an error.
package docker

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Container is one row of `docker ps -a`.
type Container struct {
	ID     string
	Name   string
	Status string
}

// Containers lists all containers (running or not) whose name matches the
// given filter prefix.
func Containers(prefix string) []Container {
	out, err := exec.Command("docker", "ps", "-a",
		"--filter", "name="+prefix,
		"--format", "{{.ID}}\t{{.Names}}\t{{.Status}}").Output()
	if err != nil {
		return nil
	}
	return parseContainers(string(out))
}

// parseContainers parses tab-separated id/name/status rows. Lines with
// fewer than three fields are dropped rather than failing the listing.
func parseContainers(out string) []Container {
	var containers []Container
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		containers = append(containers, Container{
			ID:     parts[0],
			Name:   parts[1],
			Status: parts[2],
		})
	}
	return containers
}

// ContainerExists reports whether a container with the given name exists,
// running or not.
func ContainerExists(name string) bool {
	return exec.Command("docker", "container", "inspect", name).Run() == nil
}

// ContainerRunning reports whether the named container is currently running.
func ContainerRunning(name string) bool {
	out, err := exec.Command("docker", "container", "inspect",
		"-f", "{{.State.Running}}", name).Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "true"
}

// ContainerEnv looks up one environment variable recorded in the named
// container's configuration. Returns the value and whether the key was set.
func ContainerEnv(name, key string) (string, bool) {
	out, err := exec.Command("docker", "container", "inspect",
		"-f", "{{range .Config.Env}}{{println .}}{{end}}", name).Output()
	if err != nil {
		return "", false
	}
	return lookupEnv(string(out), key)
}

func lookupEnv(out, key string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, key+"="); ok {
			return v, true
		}
	}
	return "", false
}

// RemoveContainer force-removes a container by name.
func RemoveContainer(name string) bool {
	return exec.Command("docker", "rm", "-f", name).Run() == nil
}

// ImageExists reports whether an image with the given tag is present locally.
func ImageExists(tag string) bool {
	return exec.Command("docker", "image", "inspect", tag).Run() == nil
}

// BuildImage builds an image from a Dockerfile. Build output is streamed
// to stderr so the directive protocol on stdout stays clean.
func BuildImage(tag, dockerfile, contextDir string) bool {
	cmd := exec.Command("docker", "build", "-t", tag, "-f", dockerfile, contextDir)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run() == nil
}

// ListeningPorts returns the set of TCP ports with a listening socket
// inside the named container, read from the container's own /proc. This
// needs no tooling installed in the image.
func ListeningPorts(name string) map[int]bool {
	out, err := exec.Command("docker", "exec", name,
		"sh", "-c", "cat /proc/net/tcp /proc/net/tcp6 2>/dev/null").Output()
	if err != nil {
		return map[int]bool{}
	}
	return parseListeningPorts(string(out))
}

// parseListeningPorts extracts local ports in LISTEN state (st == 0A) from
// /proc/net/tcp content. The local_address column is "hexip:hexport".
func parseListeningPorts(out string) map[int]bool {
	ports := make(map[int]bool)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[3] != "0A" {
			continue
		}
		addr := fields[1]
		i := strings.LastIndex(addr, ":")
		if i < 0 {
			continue
		}
		port, err := strconv.ParseUint(addr[i+1:], 16, 16)
		if err != nil || port == 0 {
			continue
		}
		ports[int(port)] = true
	}
	return ports
}
