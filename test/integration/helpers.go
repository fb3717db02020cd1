//go:build integration
// +build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Domain   string
	Key      string
	Secret   string
	Audience string
	Env      string
	DhPath   string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Domain:   os.Getenv("DH_DOMAIN"),
		Key:      os.Getenv("DH_KEY"),
		Secret:   os.Getenv("DH_SECRET"),
		Audience: os.Getenv("DH_AUDIENCE"),
		Env:      os.Getenv("DH_ENV"),
		DhPath:   getDhPath(),
		Verbose:  os.Getenv("DH_VERBOSE") == "true",
	}
}

// getDhPath determines the path to the dh binary
func getDhPath() string {
	if path := os.Getenv("DH_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../dh",
		"./dh",
		"../dh",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "dh" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Domain == "" {
		t.Skip("DH_DOMAIN not set, skipping integration test")
	}

	if _, err := os.Stat(config.DhPath); os.IsNotExist(err) {
		t.Skipf("dh binary not found at %s, skipping integration test", config.DhPath)
	}
}

// CommandRunner provides utilities for running dh commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Run executes a dh command with global flags derived from the config and
// returns combined output.
func (r *CommandRunner) Run(args ...string) (string, error) {
	flags := []string{"--domain", r.config.Domain}
	if r.config.Env != "" {
		flags = append(flags, "--env", r.config.Env)
	}

	cmd := exec.Command(r.config.DhPath, append(flags, args...)...)
	cmd.Env = append(os.Environ(),
		"DH_KEY="+r.config.Key,
		"DH_SECRET="+r.config.Secret,
		"DH_AUDIENCE="+r.config.Audience,
	)

	var out bytes.Buffer

	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if r.config.Verbose {
		r.t.Logf("dh %v\n%s", args, out.String())
	}

	return out.String(), err
}

// RunWithTimeout executes a dh command, killing it after the given timeout.
func (r *CommandRunner) RunWithTimeout(timeout time.Duration, args ...string) (string, error) {
	done := make(chan struct{})

	var (
		output string
		err    error
	)

	go func() {
		output, err = r.Run(args...)
		close(done)
	}()

	select {
	case <-done:
		return output, err
	case <-time.After(timeout):
		r.t.Fatalf("dh %v timed out after %s", args, timeout)

		return "", nil
	}
}
