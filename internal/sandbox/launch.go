package sandbox

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Directive prefixes understood by the wrapping shell. The tool never
// executes the launch command itself: the shell that invoked it must own
// the interactive terminal, so the command is printed for it to eval.
const (
	DirectiveCD   = "__SANDBOX_CD__:"
	DirectiveExec = "__SANDBOX_EXEC__:"
	DirectiveName = "__SANDBOX_NAME__:"
	DirectiveRepo = "__SANDBOX_REPO__:"
)

// PortsEnvVar carries the comma-joined forwarded port list in the
// container environment; the ports command reads it back via inspect.
const PortsEnvVar = "SANDBOX_PORTS"

// Mount is one docker -v specification.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

func (m Mount) spec() string {
	s := m.Source + ":" + m.Target
	if m.ReadOnly {
		s += ":ro"
	}
	return s
}

// EnvVar is one container environment variable. Ordered, unlike a map, so
// the generated command line is deterministic.
type EnvVar struct {
	Key   string
	Value string
}

// Plan is a fully computed launch: the directory the caller should enter
// and the command segments it should run. Segments are joined with "&&"
// at serialization time (the stopped-container path needs a start before
// the exec).
type Plan struct {
	Dir      string
	Segments [][]string
}

// Line renders the exec directive payload. Each segment is quoted with
// shellquote so multi-word arguments (the appended system prompt) survive
// the shell's re-parsing.
func (p Plan) Line() string {
	quoted := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		quoted[i] = shellquote.Join(seg...)
	}
	return strings.Join(quoted, " && ")
}

// Emit writes the cd and exec directives.
func (p Plan) Emit(w io.Writer) {
	fmt.Fprintf(w, "%s%s\n", DirectiveCD, p.Dir)
	fmt.Fprintf(w, "%s%s\n", DirectiveExec, p.Line())
}

// EmitIdentity writes the identity directives a post-exit cleanup
// invocation needs.
func EmitIdentity(w io.Writer, name, repoName string) {
	fmt.Fprintf(w, "%s%s\n", DirectiveName, name)
	fmt.Fprintf(w, "%s%s\n", DirectiveRepo, repoName)
}

// claudeCommand is the assistant argv run inside the container.
func claudeCommand(resume bool, systemPrompt string) []string {
	cmd := []string{"claude", "--dangerously-skip-permissions"}
	if resume {
		cmd = append(cmd, "--continue")
	}
	if systemPrompt != "" {
		cmd = append(cmd, "--append-system-prompt", systemPrompt)
	}
	return cmd
}

// ResumePlan computes the launch for a container that already exists:
// exec straight in when running, start it first when stopped.
func ResumePlan(containerName, worktreePath string, running, resume bool) Plan {
	execSeg := append([]string{"docker", "exec", "-it", containerName},
		claudeCommand(resume, "")...)
	p := Plan{Dir: worktreePath}
	if !running {
		p.Segments = append(p.Segments, []string{"docker", "start", containerName})
	}
	p.Segments = append(p.Segments, execSeg)
	return p
}

// RunParams describes a container to be created.
type RunParams struct {
	ContainerName string
	Image         string
	WorktreePath  string
	MainGitDir    string
	Home          string
	GHToken       string
	Ports         []int
	ExtraMounts   []string
	ExtraEnv      []EnvVar
	Resume        bool
}

// RunPlan computes the docker run invocation for a new container.
//
// The worktree and the shared git dir are mounted at their host paths
// read-write, so commits made inside the sandbox land in the host
// repository. Credentials mount read-only.
func RunPlan(p RunParams) Plan {
	mounts := []Mount{
		{Source: p.WorktreePath, Target: p.WorktreePath},
		{Source: p.MainGitDir, Target: p.MainGitDir},
		{Source: p.Home + "/.claude", Target: "/home/agent/.claude"},
		{Source: p.Home + "/.config/gh", Target: "/home/agent/.config/gh", ReadOnly: true},
		{Source: p.Home + "/.ssh", Target: "/home/agent/.ssh", ReadOnly: true},
	}

	env := []EnvVar{
		{Key: "GH_TOKEN", Value: p.GHToken},
		{Key: "CLAUDE_CONFIG_DIR", Value: "/home/agent/.claude"},
		{Key: "FORCE_COLOR", Value: "1"},
		{Key: "COLORTERM", Value: "truecolor"},
	}
	if len(p.Ports) > 0 {
		env = append(env, EnvVar{Key: PortsEnvVar, Value: joinPorts(p.Ports)})
	}
	env = append(env, p.ExtraEnv...)

	args := []string{"docker", "run", "-it", "--name", p.ContainerName}
	for _, m := range mounts {
		args = append(args, "-v", m.spec())
	}
	for _, spec := range p.ExtraMounts {
		args = append(args, "-v", spec)
	}
	for _, e := range env {
		args = append(args, "-e", e.Key+"="+e.Value)
	}
	for _, port := range p.Ports {
		// Host port N forwards to the same port N in the container.
		args = append(args, "-p", fmt.Sprintf("%d:%d", port, port))
	}
	args = append(args, "-w", p.WorktreePath, p.Image)
	args = append(args, claudeCommand(p.Resume, portsPrompt(p.Ports))...)

	return Plan{Dir: p.WorktreePath, Segments: [][]string{args}}
}

func joinPorts(ports []int) string {
	strs := make([]string, len(ports))
	for i, p := range ports {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, ",")
}

// portsPrompt is the one-time system prompt addition telling the
// assistant which forwarded ports it may use.
func portsPrompt(ports []int) string {
	if len(ports) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"This sandbox forwards the following host ports into the container: %s. "+
			"Use these ports for any dev servers you start, and bind them to "+
			"0.0.0.0 (not localhost) so they are reachable through the forwards.",
		joinPorts(ports))
}
