package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContainers(t *testing.T) {
	out := "abc123\tsandbox-repo-test\tUp 2 hours\ndef456\tsandbox-repo-other\tExited (0) 1 hour ago\n"
	containers := parseContainers(out)
	require.Len(t, containers, 2)
	assert.Equal(t, Container{ID: "abc123", Name: "sandbox-repo-test", Status: "Up 2 hours"}, containers[0])
	assert.Equal(t, "sandbox-repo-other", containers[1].Name)
}

func TestParseContainersDropsMalformedLines(t *testing.T) {
	out := "abc123\tsandbox-repo-test\tUp 2 hours\nbroken line\nonly\ttwo\n"
	containers := parseContainers(out)
	require.Len(t, containers, 1)
	assert.Equal(t, "sandbox-repo-test", containers[0].Name)
}

func TestParseContainersEmpty(t *testing.T) {
	assert.Empty(t, parseContainers(""))
	assert.Empty(t, parseContainers("\n"))
}

func TestLookupEnv(t *testing.T) {
	out := "PATH=/usr/bin\nSANDBOX_PORTS=49152,49153\nGH_TOKEN=abc\n"

	v, ok := lookupEnv(out, "SANDBOX_PORTS")
	assert.True(t, ok)
	assert.Equal(t, "49152,49153", v)

	_, ok = lookupEnv(out, "MISSING")
	assert.False(t, ok)

	// Key must match exactly, not as a prefix of another key.
	_, ok = lookupEnv(out, "SANDBOX")
	assert.False(t, ok)
}

func TestParseListeningPorts(t *testing.T) {
	out := `  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 00000000:C000 00000000:0000 0A 00000000:00000000 00:00000000 00000000  1000        0 12345 1 0000000000000000 100 0 0 10 0
   1: 0100007F:1F90 0100007F:D431 01 00000000:00000000 00:00000000 00000000  1000        0 12346 1 0000000000000000 100 0 0 10 0
   2: 00000000000000000000000000000000:C001 00000000000000000000000000000000:0000 0A 00000000:00000000 00:00000000 00000000  1000        0 12347 1 0000000000000000 100 0 0 10 0
`
	ports := parseListeningPorts(out)
	assert.True(t, ports[49152], "ipv4 listener")
	assert.True(t, ports[49153], "ipv6 listener")
	assert.False(t, ports[8080], "established connection is not a listener")
	assert.Len(t, ports, 2)
}

func TestParseListeningPortsEmpty(t *testing.T) {
	assert.Empty(t, parseListeningPorts(""))
}
