package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backup-power-sim/internal/model"
	"backup-power-sim/internal/sim"
)

func TestProfileJSON_RoundTrip(t *testing.T) {
	spec := SyntheticSpec{
		Site:            "depot",
		Start:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Hours:           24,
		StepMinutes:     60,
		BaseLoadKW:      20,
		PeakLoadKW:      80,
		SurplusPeakKW:   60,
		OutageStartHour: 8,
		OutageHours:     12,
	}
	p, err := GenerateProfile(spec)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, WriteProfileJSON(path, p))

	loaded, err := LoadProfileJSON(path)
	require.NoError(t, err)
	require.Len(t, loaded.Data, 24)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, "depot", loaded.Data[0].Site)
	assert.True(t, loaded.Data[3].IntervalStart.Equal(p.Data[3].IntervalStart))
	assert.InDelta(t, p.Data[12].NetLoadKW, loaded.Data[12].NetLoadKW, 1e-9)
}

func TestLoadProfileJSON_MissingFile(t *testing.T) {
	_, err := LoadProfileJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestGenerateProfile_Shape(t *testing.T) {
	spec := SyntheticSpec{
		Site:            "depot",
		Start:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Hours:           24,
		StepMinutes:     60,
		BaseLoadKW:      20,
		PeakLoadKW:      100,
		SurplusPeakKW:   60,
		OutageStartHour: 18,
		OutageHours:     4,
	}
	p, err := GenerateProfile(spec)
	require.NoError(t, err)
	require.Len(t, p.Data, 24)

	// Noon, grid up: PV surplus only.
	assert.Less(t, p.Data[12].NetLoadKW, 0.0)
	// Midnight, grid up, no sun: nothing to do.
	assert.InDelta(t, 0, p.Data[0].NetLoadKW, 1e-9)
	// During the evening outage the plant carries a deficit.
	assert.Greater(t, p.Data[19].NetLoadKW, 0.0)

	// Intervals are contiguous.
	for i := 1; i < len(p.Data); i++ {
		assert.True(t, p.Data[i].IntervalStart.Equal(p.Data[i-1].IntervalEnd))
	}
}

func TestGenerateProfile_Deterministic(t *testing.T) {
	spec := SyntheticSpec{
		Start:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Hours:       6,
		StepMinutes: 15,
		BaseLoadKW:  20,
		PeakLoadKW:  80,
		JitterKW:    5,
		Seed:        42,
	}
	a, err := GenerateProfile(spec)
	require.NoError(t, err)
	b, err := GenerateProfile(spec)
	require.NoError(t, err)

	require.Equal(t, len(a.Data), len(b.Data))
	for i := range a.Data {
		assert.Equal(t, a.Data[i].NetLoadKW, b.Data[i].NetLoadKW)
	}
}

func TestGenerateProfile_Invalid(t *testing.T) {
	_, err := GenerateProfile(SyntheticSpec{Hours: 0, StepMinutes: 60})
	assert.Error(t, err)

	_, err = GenerateProfile(SyntheticSpec{Hours: 24, StepMinutes: 0})
	assert.Error(t, err)

	_, err = GenerateProfile(SyntheticSpec{Hours: 24, StepMinutes: 60, BaseLoadKW: 100, PeakLoadKW: 50})
	assert.Error(t, err)
}

func TestGroupBySite(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &model.Profile{Data: []model.NetLoadInterval{
		{IntervalStart: start, Site: "a", NetLoadKW: 1},
		{IntervalStart: start, Site: "b", NetLoadKW: 2},
		{IntervalStart: start.Add(time.Hour), Site: "a", NetLoadKW: 3},
	}}

	groups := GroupBySite(p)
	require.Len(t, groups, 2)
	assert.Len(t, groups["a"], 2)
	assert.Len(t, groups["b"], 1)
	assert.Empty(t, GroupBySite(nil))
}

func TestResultStore_PutGet(t *testing.T) {
	store := NewResultStore(time.Hour)
	res := &sim.Result{TotalDemandKWh: 120}

	id := store.Put(res)
	require.NotEmpty(t, id)

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.InDelta(t, 120, got.TotalDemandKWh, 1e-9)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestResultStore_Expiry(t *testing.T) {
	store := NewResultStore(time.Millisecond)
	id := store.Put(&sim.Result{})

	time.Sleep(5 * time.Millisecond)
	_, ok := store.Get(id)
	assert.False(t, ok)
}

func TestResultStore_Clear(t *testing.T) {
	store := NewResultStore(time.Hour)
	id := store.Put(&sim.Result{})

	store.Clear()
	_, ok := store.Get(id)
	assert.False(t, ok)
}
