package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestCaptureBuildsTaggedRecords(t *testing.T) {
	at := time.Date(2024, 5, 2, 14, 30, 15, 250_000_000, time.UTC)
	records, err := Capture("p1", at, []*float64{f(101.456), nil, f(99)}, []*float64{nil, f(80.004)}, DefaultSlotCount)
	require.NoError(t, err)
	require.Len(t, records, 2*DefaultSlotCount)

	assert.Equal(t, Record{SubjectID: "p1", Timestamp: "2024-05-02T14:30:15.250Z", Value: 101.46, Tag: "PESO FILL 1"}, records[0])
	assert.Equal(t, 0.0, records[1].Value)
	assert.Equal(t, 99.0, records[2].Value)
	assert.Equal(t, "PESO FILL 10", records[9].Tag)
	assert.Equal(t, "PESO NETO 1", records[10].Tag)
	assert.Equal(t, 80.0, records[11].Value)

	events := Group(records)
	require.Len(t, events, 1)
	assert.Equal(t, []float64{101.46, 0, 99, 0, 0, 0, 0, 0, 0, 0}, events[0].Fill)
	assert.Equal(t, []float64{0, 80, 0, 0, 0, 0, 0, 0, 0, 0}, events[0].Net)
}

func TestCaptureRequiresBothChannels(t *testing.T) {
	at := time.Now()

	_, err := Capture("p1", at, nil, []*float64{f(1)}, DefaultSlotCount)
	assert.ErrorIs(t, err, ErrNoFillReading)

	_, err = Capture("p1", at, []*float64{f(1)}, []*float64{nil, nil}, DefaultSlotCount)
	assert.ErrorIs(t, err, ErrNoNetReading)
}

func TestCaptureRejectsTooManyReadings(t *testing.T) {
	values := []*float64{f(1), f(2), f(3)}
	_, err := Capture("p1", time.Now(), values, values, 2)
	assert.ErrorIs(t, err, ErrTooManyReadings)
}
