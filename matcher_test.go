package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSwipeMutualMatch(t *testing.T) {
	app, m := newTestApp(t)
	mustSeed(t, m, Profile{Code: "AAAAAA"})
	mustSeed(t, m, Profile{Code: "BBBBBB"})

	res, err := app.RecordSwipe("AAAAAA", "BBBBBB", SwipeRight)
	require.NoError(t, err)
	assert.False(t, res.Matched, "one-sided right must not match")
	assert.Nil(t, res.Partner)

	res, err = app.RecordSwipe("BBBBBB", "AAAAAA", SwipeRight)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	require.NotNil(t, res.Partner)
	assert.Equal(t, "AAAAAA", res.Partner.Code)

	pairs, err := m.ScanMatches("")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "AAAAAA", pairs[0].MemberA)
	assert.Equal(t, "BBBBBB", pairs[0].MemberB)
}

func TestRecordSwipeIdempotence(t *testing.T) {
	app, m := newTestApp(t)
	mustSeed(t, m, Profile{Code: "AAAAAA"})
	mustSeed(t, m, Profile{Code: "BBBBBB"})

	_, err := app.RecordSwipe("BBBBBB", "AAAAAA", SwipeRight)
	require.NoError(t, err)

	// Repeating the completing swipe reports the match every time but only
	// ever records one pair.
	for i := 0; i < 3; i++ {
		res, err := app.RecordSwipe("AAAAAA", "BBBBBB", SwipeRight)
		require.NoError(t, err)
		assert.True(t, res.Matched, "attempt %d", i)
	}

	pairs, err := m.ScanMatches("")
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestRecordSwipeOrderSymmetry(t *testing.T) {
	run := func(t *testing.T, first, second [2]string) MatchPair {
		app, m := newTestApp(t)
		mustSeed(t, m, Profile{Code: "AAAAAA"})
		mustSeed(t, m, Profile{Code: "BBBBBB"})

		res, err := app.RecordSwipe(first[0], first[1], SwipeRight)
		require.NoError(t, err)
		assert.False(t, res.Matched)

		res, err = app.RecordSwipe(second[0], second[1], SwipeRight)
		require.NoError(t, err)
		assert.True(t, res.Matched)

		pairs, err := m.ScanMatches("")
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		return pairs[0]
	}

	forward := run(t, [2]string{"AAAAAA", "BBBBBB"}, [2]string{"BBBBBB", "AAAAAA"})
	reverse := run(t, [2]string{"BBBBBB", "AAAAAA"}, [2]string{"AAAAAA", "BBBBBB"})

	assert.Equal(t, forward.MemberA, reverse.MemberA)
	assert.Equal(t, forward.MemberB, reverse.MemberB)
}

func TestRecordSwipeLeft(t *testing.T) {
	app, m := newTestApp(t)
	mustSeed(t, m, Profile{Code: "AAAAAA"})
	mustSeed(t, m, Profile{Code: "BBBBBB"})

	res, err := app.RecordSwipe("AAAAAA", "BBBBBB", SwipeLeft)
	require.NoError(t, err)
	assert.False(t, res.Matched)

	// Even a mutual LEFT never produces a pair.
	res, err = app.RecordSwipe("BBBBBB", "AAAAAA", SwipeLeft)
	require.NoError(t, err)
	assert.False(t, res.Matched)

	pairs, err := m.ScanMatches("")
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestRecordSwipeHistoricalRightCounts(t *testing.T) {
	app, m := newTestApp(t)
	mustSeed(t, m, Profile{Code: "AAAAAA"})
	mustSeed(t, m, Profile{Code: "BBBBBB"})

	// B liked A once, then changed their mind. Existence semantics: the old
	// RIGHT still completes the match when A swipes right.
	_, err := app.RecordSwipe("BBBBBB", "AAAAAA", SwipeRight)
	require.NoError(t, err)
	_, err = app.RecordSwipe("BBBBBB", "AAAAAA", SwipeLeft)
	require.NoError(t, err)

	res, err := app.RecordSwipe("AAAAAA", "BBBBBB", SwipeRight)
	require.NoError(t, err)
	assert.True(t, res.Matched)
}

func TestRecordSwipeValidation(t *testing.T) {
	app, m := newTestApp(t)
	mustSeed(t, m, Profile{Code: "AAAAAA"})
	mustSeed(t, m, Profile{Code: "BBBBBB"})

	_, err := app.RecordSwipe("AAAAAA", "AAAAAA", SwipeRight)
	assert.ErrorIs(t, err, errInvalidInput, "self swipe")

	_, err = app.RecordSwipe("short", "BBBBBB", SwipeRight)
	assert.ErrorIs(t, err, errInvalidInput, "malformed code")

	_, err = app.RecordSwipe("AAAAAA", "BBBBBB", SwipeDirection("UP"))
	assert.ErrorIs(t, err, errInvalidInput, "unsupported direction")

	_, err = app.RecordSwipe("AAAAAA", "ZZZZZZ", SwipeRight)
	assert.ErrorIs(t, err, errNotFound, "unknown target")

	// Nothing was appended for the rejected swipes.
	swipes, err := m.ScanSwipes(SwipeFilter{})
	require.NoError(t, err)
	assert.Empty(t, swipes)
}

func TestRecordSwipeCaseInsensitiveCodes(t *testing.T) {
	app, m := newTestApp(t)
	mustSeed(t, m, Profile{Code: "AAAAAA"})
	mustSeed(t, m, Profile{Code: "BBBBBB"})

	_, err := app.RecordSwipe("aaaaaa", "bbbbbb", SwipeRight)
	require.NoError(t, err)
	res, err := app.RecordSwipe("Bbbbbb", "Aaaaaa", SwipeRight)
	require.NoError(t, err)
	assert.True(t, res.Matched)

	pairs, err := m.ScanMatches("AAAAAA")
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestListMatches(t *testing.T) {
	app, m := newTestApp(t)
	mustSeed(t, m, Profile{Code: "AAAAAA"})
	mustSeed(t, m, Profile{Code: "BBBBBB"})
	mustSeed(t, m, Profile{Code: "CCCCCC"})

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	require.NoError(t, m.AppendMatch(MatchPair{MemberA: "AAAAAA", MemberB: "BBBBBB", At: t1}))
	require.NoError(t, m.AppendMatch(MatchPair{MemberA: "AAAAAA", MemberB: "CCCCCC", At: t2}))

	entries, err := app.ListMatches("AAAAAA")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "CCCCCC", entries[0].Partner.Code, "most recent first")
	assert.Equal(t, "BBBBBB", entries[1].Partner.Code)

	_, err = app.ListMatches("ZZZZZZ")
	assert.ErrorIs(t, err, errNotFound)
}

func TestListMatchesDeduplicatesRacyRows(t *testing.T) {
	app, m := newTestApp(t)
	mustSeed(t, m, Profile{Code: "AAAAAA"})
	mustSeed(t, m, Profile{Code: "BBBBBB"})

	// Simulate a backing store that let two concurrent writers both append:
	// the read path keeps one entry per pair, preferring the newest row.
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.matches = append(m.matches,
		MatchPair{MemberA: "AAAAAA", MemberB: "BBBBBB", At: t1},
		MatchPair{MemberA: "AAAAAA", MemberB: "BBBBBB", At: t1.Add(time.Minute)},
	)

	entries, err := app.ListMatches("AAAAAA")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, t1.Add(time.Minute), entries[0].MatchedAt)
}
