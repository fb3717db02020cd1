//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	// The status endpoint is public; this must work without credentials
	output, err := runner.RunWithTimeout(30*time.Second, "status", "--output", "json")
	require.NoError(t, err, output)

	var status map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(output), &status))
	assert.NotEmpty(t, status["status"])
}

func TestDatasetLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	if config.Key == "" || config.Secret == "" {
		t.Skip("DH_KEY/DH_SECRET not set, skipping authenticated integration test")
	}

	runner := NewCommandRunner(config, t)

	name := "integration-" + time.Now().Format("20060102-150405")

	output, err := runner.RunWithTimeout(time.Minute,
		"datasets", "create", "--name", name, "--tag", "integration")
	require.NoError(t, err, output)
	require.Contains(t, output, name)

	// Pull the UUID out of "Created dataset <name> (<uuid>)"
	start := strings.LastIndex(output, "(")
	end := strings.LastIndex(output, ")")
	require.Greater(t, end, start)

	uuid := output[start+1 : end]

	defer func() {
		cleanup, cleanupErr := runner.RunWithTimeout(time.Minute, "datasets", "delete", uuid)
		assert.NoError(t, cleanupErr, cleanup)
	}()

	output, err = runner.RunWithTimeout(time.Minute, "datasets", "get", uuid, "--output", "json")
	require.NoError(t, err, output)

	var dataset map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(output), &dataset))
	assert.Equal(t, name, dataset["name"])

	output, err = runner.RunWithTimeout(time.Minute,
		"datasets", "list", "--tag", "integration", "--output", "json")
	require.NoError(t, err, output)
	assert.Contains(t, output, uuid)
}
