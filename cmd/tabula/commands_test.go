package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tabula/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainYAML = `
name: chain
hasher: exact
classes:
  - name: agent
    attributes:
      - {name: pos, min: 0, max: 2}
seeds:
  - objects:
      - {name: a0, class: agent, values: {pos: 0}}
actions:
  - name: right
    when: ["a0.pos < 2"]
    outcomes:
      - p: 0.5
        effects: [{op: add, target: a0.pos, value: 1}]
      - p: 0.5
`

func run(t *testing.T, args ...string) string {
	t.Helper()
	path := testutils.WriteDomainFile(t, "chain.yaml", chainYAML)

	for i, a := range args {
		if a == "DOMAIN" {
			args[i] = path
		}
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestEnumerateCommand_JSON(t *testing.T) {
	out := run(t, "enumerate", "DOMAIN", "--format", "json")

	var got enumeration
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []int{0}, got.Seeds)
	assert.Len(t, got.States, 3)
	assert.Equal(t, 3, got.Model.NumStates)
}

func TestEnumerateCommand_TableAndSave(t *testing.T) {
	dir := t.TempDir()
	out := run(t, "enumerate", "DOMAIN", "--format", "table", "--save", "chain", "--store", "file", "--store-dir", dir)

	assert.Contains(t, out, "| 0 | `a0:agent{pos=0}` | right |")
	assert.Contains(t, out, "_absorbing_")

	_, err := os.Stat(filepath.Join(dir, "chain.json"))
	assert.NoError(t, err)
}

func TestGraphCommand(t *testing.T) {
	out := run(t, "graph", "DOMAIN", "--labels")
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "s0 -- \"right 0.5\" --> s1")
	assert.Contains(t, out, "class s0 seed;")
}

func TestInspectCommand(t *testing.T) {
	out := run(t, "inspect", "DOMAIN", "1")
	assert.Contains(t, out, "state 1: a0:agent{pos=1}")
	assert.Contains(t, out, "right -> 2 (p=0.5), 1 (p=0.5)")
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version")
	assert.Contains(t, out, "tabula version dev")
}

func TestValidateCommand(t *testing.T) {
	out := run(t, "validate", "DOMAIN")
	assert.Equal(t, "ok: 3 states, 1 actions, 1 absorbing\n", out)
}
