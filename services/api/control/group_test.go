package control

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(ts, tag string, v float64) Record {
	return Record{SubjectID: "p1", Timestamp: ts, Value: v, Tag: tag}
}

func zeros(n int) []float64 { return make([]float64, n) }

func TestGroupSlotAddressing(t *testing.T) {
	events := Group([]Record{rec("2024-03-01T10:00:00Z", "PESO FILL 5", 12.5)})

	require.Len(t, events, 1)
	want := zeros(DefaultSlotCount)
	want[4] = 12.5
	assert.Equal(t, want, events[0].Fill)
	assert.Equal(t, zeros(DefaultSlotCount), events[0].Net)
}

func TestGroupLegacyFallbackOrder(t *testing.T) {
	events := Group([]Record{
		rec("2024-03-01T10:00:00Z", "PESO NETO", 1.0),
		rec("2024-03-01T10:00:00Z", "PESO NETO", 2.0),
		rec("2024-03-01T10:00:00Z", "PESO NETO", 3.0),
	})

	require.Len(t, events, 1)
	assert.Equal(t, []float64{1, 2, 3, 0, 0, 0, 0, 0, 0, 0}, events[0].Net)
}

func TestGroupLegacyFillsAroundExplicitSlots(t *testing.T) {
	events := Group([]Record{
		rec("2024-03-01T10:00:00Z", "PESO FILL 1", 4.0),
		rec("2024-03-01T10:00:00Z", "PESO FILL", 5.0),
	})

	require.Len(t, events, 1)
	assert.Equal(t, []float64{4, 5, 0, 0, 0, 0, 0, 0, 0, 0}, events[0].Fill)
}

func TestGroupLegacyDroppedWhenFull(t *testing.T) {
	var records []Record
	for i := 1; i <= 3; i++ {
		records = append(records, rec("2024-03-01T10:00:00Z", "PESO FILL", float64(i)))
	}

	var drops []DropReason
	g := Grouper{SlotCount: 2, OnDrop: func(_ Record, reason DropReason) { drops = append(drops, reason) }}
	events := g.Group(records)

	require.Len(t, events, 1)
	assert.Equal(t, []float64{1, 2}, events[0].Fill)
	assert.Equal(t, []DropReason{DropNoFreeSlot}, drops)
}

func TestGroupLastWriteWins(t *testing.T) {
	events := Group([]Record{
		rec("2024-03-01T10:00:00Z", "PESO FILL 1", 10.0),
		rec("2024-03-01T10:00:00.400Z", "PESO FILL 1", 20.0),
	})

	require.Len(t, events, 1)
	assert.Equal(t, 20.0, events[0].Fill[0])
}

func TestGroupKeyGranularity(t *testing.T) {
	events := Group([]Record{
		rec("2024-03-01T10:00:00.120Z", "PESO FILL 1", 1),
		rec("2024-03-01T10:00:00.980Z", "PESO NETO 1", 2),
		rec("2024-03-01T10:00:01.000Z", "PESO NETO 1", 3),
	})

	require.Len(t, events, 2)
	assert.Equal(t, "2024-03-01T10:00:00.120Z", events[0].Timestamp)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), events[0].Key)
	assert.Equal(t, 1.0, events[0].Fill[0])
	assert.Equal(t, 2.0, events[0].Net[0])
	assert.Equal(t, 3.0, events[1].Net[0])
}

func TestGroupOutOfRangeSlotDropped(t *testing.T) {
	var drops []DropReason
	g := Grouper{OnDrop: func(_ Record, reason DropReason) { drops = append(drops, reason) }}
	events := g.Group([]Record{
		rec("2024-03-01T10:00:00Z", "PESO FILL 11", 9),
		rec("2024-03-01T10:00:00Z", "PESO NETO 0", 9),
	})

	require.Len(t, events, 1)
	assert.Equal(t, zeros(DefaultSlotCount), events[0].Fill)
	assert.Equal(t, zeros(DefaultSlotCount), events[0].Net)
	assert.Equal(t, []DropReason{DropSlotOutOfRange, DropSlotOutOfRange}, drops)
}

func TestGroupOrdering(t *testing.T) {
	events := Group([]Record{
		rec("2024-03-01T10:00:02Z", "PESO FILL 1", 2),
		rec("2024-03-01T10:00:01Z", "PESO FILL 1", 1),
		rec("2024-03-01T10:00:03Z", "PESO FILL 1", 3),
	})

	require.Len(t, events, 3)
	for i, ev := range events {
		assert.Equal(t, float64(i+1), ev.Fill[0])
	}
}

func TestGroupSkipsBadRecords(t *testing.T) {
	var drops []DropReason
	g := Grouper{OnDrop: func(_ Record, reason DropReason) { drops = append(drops, reason) }}
	events := g.Group([]Record{
		rec("not a date", "PESO FILL 1", 1),
		rec("2024-03-01T10:00:00Z", "PESO BRUTO 1", 2),
		rec("2024-03-01T10:00:00Z", "PESO FILL 2", 3),
	})

	require.Len(t, events, 1)
	assert.Equal(t, 3.0, events[0].Fill[1])
	assert.Equal(t, []DropReason{DropBadTimestamp, DropUnknownTag}, drops)
}

func TestGroupZoneLessTimestamps(t *testing.T) {
	events := Group([]Record{
		rec("2024-03-01T10:00:00.5", "PESO FILL 1", 1),
		rec("2024-03-01 10:00:00", "PESO NETO 1", 2),
	})

	require.Len(t, events, 1)
	assert.Equal(t, 1.0, events[0].Fill[0])
	assert.Equal(t, 2.0, events[0].Net[0])
}

func TestGroupIdempotent(t *testing.T) {
	records := []Record{
		rec("2024-03-01T10:00:02Z", "PESO FILL 3", 2),
		rec("2024-03-01T10:00:01Z", "PESO NETO", 1),
		rec("2024-03-01T10:00:01.300Z", "PESO NETO", 4),
		rec("2024-03-01T10:00:02Z", "PESO FILL 3", 7),
	}

	first := Group(records)
	second := Group(records)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("grouping not deterministic (-first +second):\n%s", diff)
	}
}

func TestGroupEmpty(t *testing.T) {
	events := Group(nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventReadings(t *testing.T) {
	events := Group([]Record{
		rec("2024-03-01T10:00:00Z", "PESO FILL 1", 1),
		rec("2024-03-01T10:00:00Z", "PESO FILL 2", 0),
		rec("2024-03-01T10:00:00Z", "PESO NETO 4", 5),
	})

	require.Len(t, events, 1)
	fill, net := events[0].Readings()
	assert.Equal(t, 1, fill)
	assert.Equal(t, 1, net)
}
