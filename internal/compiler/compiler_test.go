package compiler

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applicable evaluates a's precondition in s and fails the test on error.
func applicable(t *testing.T, a domain.Action, s *domain.State) bool {
	t.Helper()
	ok, err := a.Applicable(s, nil)
	require.NoError(t, err)
	return ok
}

func TestCompileFile(t *testing.T) {
	res, err := New().CompileFile(filepath.Join("testdata", "chain.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "chain", res.Domain.Name)
	assert.Equal(t, "exact", domain.HasherName(res.Hasher))
	assert.Equal(t, []string{"right", "reset"}, res.Domain.ActionNames())

	class, ok := res.Domain.Class("agent")
	require.True(t, ok)
	attr, ok := class.Attribute("pos")
	require.True(t, ok)
	assert.Equal(t, 0, attr.Lower)
	assert.Equal(t, 3, attr.Upper)

	require.Len(t, res.Seeds, 1)
	pos, err := res.Seeds[0].Value("a0", "pos")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}

func TestCompile_ActionsBehave(t *testing.T) {
	res, err := New().CompileFile(filepath.Join("testdata", "chain.yaml"))
	require.NoError(t, err)
	seed := res.Seeds[0]

	right, ok := res.Domain.Action("right")
	require.True(t, ok)
	reset, ok := res.Domain.Action("reset")
	require.True(t, ok)

	assert.True(t, applicable(t, right, seed))
	assert.False(t, applicable(t, reset, seed), "reset requires pos > 0")

	tps, err := right.Transitions(seed, nil)
	require.NoError(t, err)
	require.Len(t, tps, 2)
	assert.InDelta(t, 0.8, tps[0].P, 1e-12)
	next, err := tps[0].State.Value("a0", "pos")
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	assert.Same(t, seed, tps[1].State, "an outcome without effects stays put")

	at3, err := seed.Set("a0", "pos", 3)
	require.NoError(t, err)
	assert.False(t, applicable(t, right, at3))
	assert.True(t, applicable(t, reset, at3))
}

func TestCompile_WithRand(t *testing.T) {
	res, err := New(WithRand(func() float64 { return 0.9 })).CompileFile(filepath.Join("testdata", "chain.yaml"))
	require.NoError(t, err)

	right, _ := res.Domain.Action("right")
	next, err := right.Perform(res.Seeds[0], nil)
	require.NoError(t, err)
	pos, err := next.Value("a0", "pos")
	require.NoError(t, err)
	assert.Equal(t, 0, pos, "0.9 falls in the slip outcome")
}

func TestCompile_Defaults(t *testing.T) {
	res, err := New().Compile([]byte(`
name: flags
classes:
  - name: light
    attributes:
      - name: on
        type: bool
actions:
  - name: noop
`))
	require.NoError(t, err)
	assert.Equal(t, "identifier-independent", domain.HasherName(res.Hasher))
	assert.Empty(t, res.Seeds)

	noop, ok := res.Domain.Action("noop")
	require.True(t, ok)
	assert.False(t, domain.IsParameterized(noop))
}

func TestCompile_Parameters(t *testing.T) {
	res, err := New().Compile([]byte(`
name: params
classes:
  - name: block
    attributes:
      - name: h
        min: 0
        max: 2
actions:
  - name: stack
    parameters: [block, block]
`))
	require.NoError(t, err)
	a, ok := res.Domain.Action("stack")
	require.True(t, ok)
	assert.Equal(t, []string{"block", "block"}, a.ParameterClasses())
}

func TestCompile_MaskHasher(t *testing.T) {
	res, err := New().Compile([]byte(`
name: masked
hasher: mask
mask: [agent.x]
`))
	require.NoError(t, err)
	assert.Equal(t, "mask", domain.HasherName(res.Hasher))
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"Invalid YAML", "name: [unterminated"},
		{"Missing Name", "classes: []"},
		{"Unknown Hasher", "name: x\nhasher: fuzzy"},
		{"Unknown Attribute Type", "name: x\nclasses:\n  - name: c\n    attributes:\n      - {name: a, type: float}"},
		{"Inverted Bounds", "name: x\nclasses:\n  - name: c\n    attributes:\n      - {name: a, min: 3, max: 1}"},
		{"Bad Condition", "name: x\nactions:\n  - name: a\n    when: [\"a0.x <\"]"},
		{"Bad Condition Value", "name: x\nactions:\n  - name: a\n    when: [\"a0.x < four\"]"},
		{"Bad Operator", "name: x\nactions:\n  - name: a\n    when: [\"a0.x ~ 1\"]"},
		{"Bad Target", "name: x\nactions:\n  - name: a\n    outcomes:\n      - p: 1\n        effects: [{op: set, target: x, value: 1}]"},
		{"Unknown Effect", "name: x\nactions:\n  - name: a\n    outcomes:\n      - p: 1\n        effects: [{op: mul, target: a.x, value: 1}]"},
		{"Bad Distribution", "name: x\nactions:\n  - name: a\n    outcomes:\n      - p: 0.5"},
		{"Seed Out Of Bounds", "name: x\nclasses:\n  - name: c\n    attributes:\n      - {name: a, min: 0, max: 1}\nseeds:\n  - objects:\n      - {name: o, class: c, values: {a: 5}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Compile([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestCompileFile_Missing(t *testing.T) {
	_, err := New().CompileFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestCompile_Examples(t *testing.T) {
	tests := []struct {
		file   string
		hasher string
	}{
		{"gridworld/domain.yaml", "exact"},
		{"twin-lights/domain.yaml", "identifier-independent"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			res, err := New().CompileFile(filepath.Join("..", "..", "examples", tt.file))
			require.NoError(t, err)
			assert.Equal(t, tt.hasher, domain.HasherName(res.Hasher))
			assert.NotEmpty(t, res.Seeds)
		})
	}
}
