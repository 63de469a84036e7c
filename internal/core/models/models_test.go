package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagRegistry(t *testing.T) {
	r := NewTagRegistry()

	a, err := r.Intern("Position")
	require.NoError(t, err)
	b, err := r.Intern("Velocity")
	require.NoError(t, err)
	again, err := r.Intern("Position")
	require.NoError(t, err)

	require.True(t, a.Valid())
	require.NotEqual(t, a, b)
	require.Equal(t, a, again)

	_, err = r.Intern("")
	require.Error(t, err)

	tags, err := r.InternAll([]string{"Velocity", "Health"})
	require.NoError(t, err)
	require.Equal(t, b, tags[0])
	require.Equal(t, ComponentTag(3), tags[1])
}

func TestClauseMatches(t *testing.T) {
	const (
		A ComponentTag = iota + 1
		B
		C
	)
	set := NewTagSet([]ComponentTag{A, B, A})

	require.True(t, Clause{}.Matches(set))
	require.True(t, With(A).Matches(set))
	require.True(t, With(A, B).Matches(set))
	require.False(t, With(A, C).Matches(set))
	require.False(t, With(A).Excluding(B).Matches(set))
	require.True(t, With(A).Excluding(C).Matches(set))

	base := With(A)
	_ = base.Excluding(C)
	require.Empty(t, base.Without)
}

func TestValueTable(t *testing.T) {
	values := ValueTable{}
	values.Set("e1", 1, nil)

	v, ok := values.Lookup("e1", 1)
	require.True(t, ok)
	require.Nil(t, v)

	_, ok = values.Lookup("e1", 2)
	require.False(t, ok)

	require.True(t, IsAbsent(Absent))
	require.False(t, IsAbsent(nil))
}

func TestSelectionWidth(t *testing.T) {
	require.Equal(t, 0, Selection{}.Width())
	require.Equal(t, 4, Selection{WithEntity: true, Mandatory: []ComponentTag{1}, Optional: []ComponentTag{2, 3}}.Width())
}

func TestEntityIDValid(t *testing.T) {
	require.True(t, EntityID("e1").Valid())
	require.False(t, EntityID("").Valid())
}
