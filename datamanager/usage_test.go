//go:build !nousagerewriter

package datamanager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsageRewriter(t *testing.T) {
	u := newTestManager(t, newFixture()).UsageRewriter()
	require.False(t, u.IsEmpty())
	require.Equal(t, 2, u.Len())

	item := u.Item(1)
	require.Equal(t, uint32(2), item.ID)
	require.Equal(t, "たべる", string(item.Key))
	require.Equal(t, "食べる", string(item.Value))
	require.Equal(t, "口に入れる", string(item.Meaning))
	require.Equal(t, 1, item.ConjugationID)

	conj := u.Conjugations(item.ConjugationID)
	require.Len(t, conj, 2)
	require.Equal(t, "ない", string(conj[1].ValueSuffix))
	require.Equal(t, "ない", string(conj[1].KeySuffix))

	base := u.BaseConjugation(item.ConjugationID)
	require.Equal(t, "る", string(base.ValueSuffix))

	require.Panics(t, func() { u.Conjugations(2) })
	require.Panics(t, func() { u.Item(2) })
}

func TestUsageRewriter_Absent(t *testing.T) {
	f := newFixture()
	f.usage = false

	u := newTestManager(t, f).UsageRewriter()
	require.True(t, u.IsEmpty())
	require.Zero(t, u.Len())
	require.Panics(t, func() { u.Conjugations(0) })
}
