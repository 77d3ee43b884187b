package tabulated

import (
	"sort"
	"strconv"
	"testing"

	"github.com/aretw0/tabula/internal/metrics"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/dsl"
	"github.com/aretw0/tabula/pkg/enumerator"
	"github.com/prometheus/client_golang/prometheus/testutil"
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

func toggle(object, attribute string) dsl.Effect {
	return func(d *domain.Domain, s *domain.State) (*domain.State, error) {
		v, err := s.Value(object, attribute)
		if err != nil {
			return nil, err
		}
		return s.Set(object, attribute, 1-v)
	}
}

func cycleDomain(t *testing.T) (*domain.Domain, *domain.State) {
	t.Helper()
	b := dsl.New("cycle")
	b.Class("node").Bool("v")
	b.Seed(dsl.Object("n", "node").Set("v", 0))
	b.Action("A").Deterministic(toggle("n", "v"))
	d, seeds, err := b.Build()
	require.NoError(t, err)
	return d, seeds[0]
}

// gridDomain is a 3x3 grid with a slippery "north" and a deterministic "east".
func gridDomain(t *testing.T) (*domain.Domain, *domain.State) {
	t.Helper()
	b := dsl.New("grid")
	b.Class("agent").Int("x", 0, 2).Int("y", 0, 2)
	b.Seed(dsl.Object("a", "agent").Set("x", 0).Set("y", 0))
	b.Action("north").
		When(dsl.Compare("a", "y", "<", 2)).
		Outcome(0.8, dsl.Add("a", "y", 1)).
		Outcome(0.1, dsl.Add("a", "x", 1)).
		Outcome(0.1, dsl.Add("a", "x", -1))
	b.Action("east").Deterministic(dsl.Add("a", "x", 1))
	d, seeds, err := b.Build()
	require.NoError(t, err)
	return d, seeds[0]
}

func TestWrapper_TwoCycleScenario(t *testing.T) {
	d, s0 := cycleDomain(t)
	w := NewWrapper(d, domain.ExactHasher{})
	require.NoError(t, w.AddReachableStatesFrom(s0))
	assert.Equal(t, 2, w.Enumerator().NumStatesEnumerated())

	tab, err := w.GenerateDomain()
	require.NoError(t, err)

	a, ok := tab.Action("A")
	require.True(t, ok)

	ts := StateFor(0)
	assert.True(t, applicable(t, a, ts))

	ts, err = a.Perform(ts, nil)
	require.NoError(t, err)
	id, err := w.StateID(ts)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	ts, err = a.Perform(ts, nil)
	require.NoError(t, err)
	id, err = w.StateID(ts)
	require.NoError(t, err)
	assert.Equal(t, 0, id)
}

func TestWrapper_GeneratedShape(t *testing.T) {
	d, s0 := gridDomain(t)
	w := NewWrapper(d, domain.ExactHasher{})
	require.NoError(t, w.AddReachableStatesFrom(s0))

	tab, err := w.GenerateDomain()
	require.NoError(t, err)
	assert.Same(t, tab, w.Domain())
	assert.Equal(t, []string{"north", "east"}, tab.ActionNames())

	class, ok := tab.Class(domain.ClassState)
	require.True(t, ok)
	attr, ok := class.Attribute(domain.AttState)
	require.True(t, ok)
	assert.Equal(t, domain.AttributeInt, attr.Type)
	assert.Equal(t, 0, attr.Lower)
	assert.Equal(t, 8, attr.Upper, "all nine grid cells are reachable")

	for _, a := range tab.Actions() {
		assert.False(t, domain.IsParameterized(a))
	}
}

func TestWrapper_RoundTrip(t *testing.T) {
	d, s0 := gridDomain(t)
	w := NewWrapper(d, domain.ExactHasher{})
	require.NoError(t, w.AddReachableStatesFrom(s0))
	_, err := w.GenerateDomain()
	require.NoError(t, err)

	h := domain.ExactHasher{}
	for _, s := range w.Enumerator().States() {
		ts, err := w.TabularizedState(s)
		require.NoError(t, err)
		back, err := w.SourceDomainState(ts)
		require.NoError(t, err)
		assert.Equal(t, h.Key(s), h.Key(back))
	}
}

func TestWrapper_TransitionFidelity(t *testing.T) {
	d, s0 := gridDomain(t)
	w := NewWrapper(d, domain.ExactHasher{})
	require.NoError(t, w.AddReachableStatesFrom(s0))
	tab, err := w.GenerateDomain()
	require.NoError(t, err)

	h := domain.ExactHasher{}
	flatten := func(tps []domain.TransitionProbability) []string {
		out := make([]string, 0, len(tps))
		for _, tp := range tps {
			out = append(out, h.Key(tp.State)+"@"+formatP(tp.P))
		}
		sort.Strings(out)
		return out
	}

	for _, src := range d.Actions() {
		wrapped, ok := tab.Action(src.Name())
		require.True(t, ok)

		for id, s := range w.Enumerator().States() {
			if !applicable(t, src, s) {
				assert.False(t, applicable(t, wrapped, StateFor(id)))
				continue
			}
			want, err := src.Transitions(s, nil)
			require.NoError(t, err)

			got, err := wrapped.Transitions(StateFor(id), nil)
			require.NoError(t, err)

			decoded := make([]domain.TransitionProbability, 0, len(got))
			for _, tp := range got {
				back, err := w.SourceDomainState(tp.State)
				require.NoError(t, err)
				decoded = append(decoded, domain.TransitionProbability{State: back, P: tp.P})
			}
			assert.Equal(t, flatten(want), flatten(decoded), "state %d action %s", id, src.Name())
		}
	}
}

func TestWrapper_RejectsParameterizedActions(t *testing.T) {
	b := dsl.New("params")
	b.Class("block").Int("h", 0, 1)
	b.Seed(dsl.Object("b0", "block").Set("h", 0))
	b.Action("stay")
	b.Action("stack").Params("block", "block")
	d, seeds, err := b.Build()
	require.NoError(t, err)

	w := NewWrapper(d, domain.ExactHasher{})
	require.NoError(t, w.AddReachableStatesFrom(seeds[0]))

	tab, err := w.GenerateDomain()
	assert.ErrorIs(t, err, domain.ErrUnsupportedDomain)
	assert.Nil(t, tab)
	assert.Nil(t, w.Domain(), "no partial domain is kept")

	_, err = w.Model()
	assert.ErrorIs(t, err, domain.ErrUnsupportedDomain)
}

func TestWrapper_TranslationErrors(t *testing.T) {
	d, s0 := cycleDomain(t)

	// Only S0 is known: the table was restored from a partial snapshot.
	e, err := enumerator.Restore(d, domain.ExactHasher{}, &domain.Snapshot{
		Domain: "cycle",
		States: []*domain.State{s0},
	})
	require.NoError(t, err)
	w := FromEnumerator(e)

	tab, err := w.GenerateDomain()
	require.NoError(t, err)
	a, _ := tab.Action("A")

	_, err = a.Perform(StateFor(0), nil)
	assert.ErrorIs(t, err, domain.ErrNotEnumerated)

	_, err = a.Transitions(StateFor(0), nil)
	assert.ErrorIs(t, err, domain.ErrNotEnumerated)

	_, err = a.Perform(StateFor(5), nil)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	_, err = a.Applicable(StateFor(5), nil)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = w.SourceDomainState(StateFor(-1))
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	s1, _ := s0.Set("n", "v", 1)
	_, err = w.TabularizedState(s1)
	assert.ErrorIs(t, err, domain.ErrNotEnumerated)

	_, err = w.StateID(domain.NewState())
	assert.Error(t, err)
	_, err = w.StateID(nil)
	assert.Error(t, err)
}

func TestWrapper_Model(t *testing.T) {
	d, s0 := cycleDomain(t)
	w := NewWrapper(d, domain.ExactHasher{})
	require.NoError(t, w.AddReachableStatesFrom(s0))

	m, err := w.Model()
	require.NoError(t, err)
	assert.Equal(t, "cycle", m.Domain)
	assert.Equal(t, 2, m.NumStates)
	assert.Equal(t, []string{"A"}, m.Actions)

	out, ok := m.Outcomes(0, "A")
	require.True(t, ok)
	assert.Equal(t, []Outcome{{Next: 1, P: 1}}, out)

	out, ok = m.Outcomes(1, "A")
	require.True(t, ok)
	assert.Equal(t, []Outcome{{Next: 0, P: 1}}, out)

	_, ok = m.Outcomes(2, "A")
	assert.False(t, ok)
	_, ok = m.Outcomes(0, "B")
	assert.False(t, ok)

	assert.Equal(t, []string{"A"}, m.Applicable(0))
	assert.Nil(t, m.Applicable(7))
}

func TestWrapper_ModelSkipsInapplicable(t *testing.T) {
	d, s0 := gridDomain(t)
	w := NewWrapper(d, domain.ExactHasher{})
	require.NoError(t, w.AddReachableStatesFrom(s0))

	m, err := w.Model()
	require.NoError(t, err)

	top, err := w.TabularizedState(mustSet(t, mustSet(t, s0, "x", 0), "y", 2))
	require.NoError(t, err)
	topID, err := w.StateID(top)
	require.NoError(t, err)

	assert.Equal(t, []string{"east"}, m.Applicable(topID))
}

func TestWrapper_RecordsActionCalls(t *testing.T) {
	d, s0 := cycleDomain(t)
	rec := metrics.NewRecorder()
	w := NewWrapper(d, domain.ExactHasher{}, enumerator.WithRecorder(rec))
	require.NoError(t, w.AddReachableStatesFrom(s0))
	tab, err := w.GenerateDomain()
	require.NoError(t, err)

	a, _ := tab.Action("A")
	_, err = a.Perform(StateFor(0), nil)
	require.NoError(t, err)
	_, err = a.Perform(StateFor(9), nil)
	require.Error(t, err)

	count, err := testutil.GatherAndCount(rec.Registry(), "tabula_action_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one ok and one error series")
}

func mustSet(t *testing.T, s *domain.State, attr string, v int) *domain.State {
	t.Helper()
	next, err := s.Set("a", attr, v)
	require.NoError(t, err)
	return next
}

func formatP(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
