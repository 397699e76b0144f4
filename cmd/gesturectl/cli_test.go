package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/gesture"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	cmd := buildRootCmd(&logger)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), logs.String(), err
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateDefaultPreset(t *testing.T) {
	out, logs, err := run(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	assert.Contains(t, logs, `"config":"default preset"`)
	assert.Contains(t, logs, `"recognizers":7`)
}

func TestValidateDanglingReference(t *testing.T) {
	path := writeConfig(t, "bad.yaml", `
recognizers:
  - kind: pan
    recognize_with: [swipe]
`)
	_, _, err := run(t, "validate", "--config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, gesture.ErrUnknownReference)
}

func TestValidateWarnsOnUnknownKind(t *testing.T) {
	path := writeConfig(t, "odd.toml", `
[[recognizers]]
kind = "wiggle"
`)
	out, logs, err := run(t, "validate", "-c", path)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	assert.Contains(t, logs, `"kind":"wiggle"`)
	assert.Contains(t, logs, `"level":"warn"`)
}

func TestValidateMissingFile(t *testing.T) {
	_, _, err := run(t, "validate", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEvents(t *testing.T) {
	path := writeConfig(t, "g.json", `{"recognizers":[
		{"kind":"tap"},
		{"kind":"tap","event":"doubletap","taps":2,"recognize_with":["tap"]},
		{"kind":"wiggle"}
	]}`)
	out, _, err := run(t, "events", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "tap (tap)")
	assert.Contains(t, out, "doubletap (tap) with=tap")
	assert.Contains(t, out, "wiggle (wiggle)")
	assert.Contains(t, out, "(none)")
}

func TestEventsDefaultPreset(t *testing.T) {
	out, _, err := run(t, "events")
	require.NoError(t, err)
	assert.Contains(t, out, "rotate (rotate) disabled")
	assert.Contains(t, out, "pinchout")
	assert.Contains(t, out, "pressup")
}

func TestSubscriptions(t *testing.T) {
	path := writeConfig(t, "g.yml", `
recognizers:
  - kind: press
  - kind: tap
`)
	out, logs, err := run(t, "subscriptions", "--config", path, "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, []string{"gesture-press", "gesture-pressup", "gesture-tap"}, strings.Fields(out))
	assert.Contains(t, logs, "gesture subscriptions reconciled")
}

func TestKinds(t *testing.T) {
	out, _, err := run(t, "kinds")
	require.NoError(t, err)
	for _, k := range gesture.Kinds() {
		assert.Contains(t, out, string(k))
	}
	assert.Contains(t, out, "(bare)")
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := run(t, "kinds", "--log-level", "loud")
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	cfgPath := writeConfig(t, "g.yaml", `
recognizers:
  - kind: tap
  - kind: pan
`)
	scriptPath := writeConfig(t, "s.json", `{"steps":[
		{"action":"tap","x":20,"y":20},
		{"action":"wait","frames":30},
		{"action":"drag","fromX":0,"fromY":0,"toX":60,"toY":0,"frames":4}
	]}`)
	out, logs, err := run(t, "replay", scriptPath, "--config", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, []string{"1", "16ms", "tap"}, strings.Fields(lines[0]))
	assert.Equal(t, "panend", strings.Fields(lines[len(lines)-1])[2])
	assert.Contains(t, logs, `"complete":true`)
}

func TestReplayBadScript(t *testing.T) {
	scriptPath := writeConfig(t, "s.json", `{"steps":[{"action":"fling"}]}`)
	_, _, err := run(t, "replay", scriptPath)
	assert.Error(t, err)

	_, _, err = run(t, "replay")
	assert.Error(t, err)
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "typo.yaml", `
recognizers:
  - kind: tap
    tpas: 2
`)
	_, _, err := run(t, "validate", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config schema")
}

func TestEnvOverrideBadValue(t *testing.T) {
	t.Setenv("GESTURE_DEBOUNCE_WAIT_MS", "later")
	_, _, err := run(t, "validate")
	assert.Error(t, err)
}
