package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typego/internal/model"
	"github.com/verte-zerg/typego/internal/store"
)

type memKV struct {
	values   map[string]string
	setErr   error
	getErr   error
	setCalls int
}

func newMemKV() *memKV {
	return &memKV{values: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func result(wpm, errs int) model.Result {
	return model.Result{WPM: wpm, Errors: errs, Date: fmt.Sprintf("%d/%d", wpm, errs)}
}

func collect(s *Store) []Ranked {
	var out []Ranked
	for r := range s.Ranked() {
		out = append(out, r)
	}
	return out
}

func TestRecordPrependsNewest(t *testing.T) {
	s := New(newMemKV())
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, result(10, 0)))
	require.NoError(t, s.Record(ctx, result(20, 0)))

	entries := s.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, 20, entries[0].WPM)
	require.Equal(t, 10, entries[1].WPM)
}

func TestRecordEvictsOldestBeyondCapacity(t *testing.T) {
	s := New(newMemKV())
	ctx := context.Background()
	for i := 1; i <= Capacity+1; i++ {
		require.NoError(t, s.Record(ctx, result(i, 0)))
	}

	entries := s.Entries()
	require.Len(t, entries, Capacity)
	require.Equal(t, Capacity+1, entries[0].WPM)
	require.Equal(t, 2, entries[Capacity-1].WPM)
}

func TestRankedOrderAndTieBreak(t *testing.T) {
	s := New(newMemKV())
	ctx := context.Background()
	// Recorded oldest first, so the log reads newest-first as
	// [60/0, 60/1, 30/0].
	require.NoError(t, s.Record(ctx, result(30, 0)))
	require.NoError(t, s.Record(ctx, result(60, 1)))
	require.NoError(t, s.Record(ctx, result(60, 0)))

	ranked := collect(s)
	require.Len(t, ranked, 3)
	require.Equal(t, result(60, 0), ranked[0].Result)
	require.Equal(t, result(60, 1), ranked[1].Result)
	require.Equal(t, result(30, 0), ranked[2].Result)
	require.Equal(t, []Medal{MedalGold, MedalSilver, MedalBronze},
		[]Medal{ranked[0].Medal, ranked[1].Medal, ranked[2].Medal})
	require.Equal(t, 1, ranked[0].Rank)
	require.Equal(t, 3, ranked[2].Rank)
}

func TestRankedTieKeepsMoreRecentFirst(t *testing.T) {
	s := New(newMemKV())
	ctx := context.Background()
	older := model.Result{WPM: 30, Errors: 0, Date: "older"}
	newer := model.Result{WPM: 60, Errors: 1, Date: "newer"}
	require.NoError(t, s.Record(ctx, older))
	require.NoError(t, s.Record(ctx, newer))

	ranked := collect(s)
	require.Equal(t, "newer", ranked[0].Result.Date)
	require.Equal(t, "older", ranked[1].Result.Date)
}

func TestRankedIsRestartableAndLazy(t *testing.T) {
	s := New(newMemKV())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, result(i*10, 0)))
	}
	seq := s.Ranked()

	first := 0
	for range seq {
		first++
		if first == 2 {
			break
		}
	}
	require.Equal(t, 2, first)

	var all []Ranked
	for r := range seq {
		all = append(all, r)
	}
	require.Len(t, all, 5)
	require.Equal(t, 40, all[0].Result.WPM)

	require.NoError(t, s.Record(ctx, result(100, 0)))
	for r := range seq {
		require.Equal(t, 100, r.Result.WPM)
		break
	}
}

func TestRankedDoesNotReorderLog(t *testing.T) {
	s := New(newMemKV())
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, result(90, 0)))
	require.NoError(t, s.Record(ctx, result(10, 0)))
	_ = collect(s)
	require.Equal(t, 10, s.Entries()[0].WPM)
}

func TestRecordWriteFailureKeepsMemory(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("disk full")
	s := New(kv)

	err := s.Record(context.Background(), result(42, 2))
	require.ErrorIs(t, err, ErrPersistence)
	require.Equal(t, 1, kv.setCalls)
	require.Equal(t, []model.Result{result(42, 2)}, s.Entries())
}

func TestLoadCorruptValue(t *testing.T) {
	kv := newMemKV()
	kv.values[Key] = "{not json"
	s := New(kv)
	require.Error(t, s.Load(context.Background()))
	require.Zero(t, s.Len())
}

func TestLoadReadFailure(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("locked")
	s := New(kv)
	require.Error(t, s.Load(context.Background()))
	require.Zero(t, s.Len())
}

func TestLoadTruncatesOversizedLog(t *testing.T) {
	kv := newMemKV()
	s := New(kv)
	ctx := context.Background()
	for i := 0; i < Capacity; i++ {
		require.NoError(t, s.Record(ctx, result(i, 0)))
	}
	kv.values[Key] = kv.values[Key][:len(kv.values[Key])-1] + `,{"wpm":1,"errors":0,"date":"extra"}]`

	reloaded := New(kv)
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, Capacity, reloaded.Len())
}

func TestPersistsThroughSQLite(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "typego.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()

	s := New(st)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Record(ctx, result(55, 1)))
	require.NoError(t, s.Record(ctx, result(61, 3)))

	raw, ok, err := st.Get(ctx, Key)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"wpm":61,"errors":3,"date":"61/3"},{"wpm":55,"errors":1,"date":"55/1"}]`, raw)

	reloaded := New(st)
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, s.Entries(), reloaded.Entries())
}

func TestMedalFor(t *testing.T) {
	require.Equal(t, MedalGold, MedalFor(1))
	require.Equal(t, MedalSilver, MedalFor(2))
	require.Equal(t, MedalBronze, MedalFor(3))
	require.Equal(t, MedalNone, MedalFor(4))
	require.Equal(t, "gold", MedalGold.String())
	require.Equal(t, "", MedalNone.String())
}
