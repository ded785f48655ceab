package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zpdzap/sandbox/internal/docker"
	"github.com/zpdzap/sandbox/internal/sandbox"
)

func portsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports <name>",
		Short: "Show a sandbox's forwarded ports and which are in use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPorts(args[0])
		},
	}
}

func runPorts(name string) error {
	repo, err := requireRepo()
	if err != nil {
		return err
	}

	containerName := sandbox.ContainerName(repo.Name, sandbox.SafeName(name))
	if !docker.ContainerExists(containerName) {
		return fmt.Errorf("no sandbox container: %s", containerName)
	}

	portList, ok := docker.ContainerEnv(containerName, sandbox.PortsEnvVar)
	if !ok || portList == "" {
		fmt.Println("No ports configured for this sandbox.")
		return nil
	}

	// Empty when the container is stopped; every port then shows inactive.
	listening := docker.ListeningPorts(containerName)

	for _, p := range strings.Split(portList, ",") {
		port, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		if listening[port] {
			fmt.Printf("  %d (active)\n", port)
		} else {
			fmt.Printf("  %d\n", port)
		}
	}
	return nil
}
