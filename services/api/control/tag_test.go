package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		ok      bool
		kind    ChannelKind
		hasSlot bool
		slot    int
	}{
		{tag: "PESO FILL 5", ok: true, kind: Fill, hasSlot: true, slot: 5},
		{tag: "PESO NETO 10", ok: true, kind: Net, hasSlot: true, slot: 10},
		{tag: "PESO FILL     7", ok: true, kind: Fill, hasSlot: true, slot: 7},
		{tag: "PESO NETO\t2 ", ok: true, kind: Net, hasSlot: true, slot: 2},
		{tag: "PESO FILL", ok: true, kind: Fill},
		{tag: "PESO NETO ", ok: true, kind: Net},
		{tag: "PESO FILL abc", ok: true, kind: Fill},
		{tag: "PESO FILL 0", ok: true, kind: Fill, hasSlot: true, slot: 0},
		{tag: "PESO FILLER 1", ok: false},
		{tag: "peso fill 1", ok: false},
		{tag: "PESO BRUTO 1", ok: false},
		{tag: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := ParseTag(tt.tag)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.hasSlot, got.HasSlot)
			assert.Equal(t, tt.slot, got.Slot)
			assert.Equal(t, tt.tag, got.Original)
		})
	}
}

func TestParseTagHugeSlotIsOutOfRange(t *testing.T) {
	got, ok := ParseTag("PESO FILL 99999999999999999999999")
	require.True(t, ok)
	assert.True(t, got.HasSlot)
	assert.Less(t, got.Slot, 1)
}

func TestFormatTag(t *testing.T) {
	assert.Equal(t, "PESO FILL 3", FormatTag(Fill, 3))
	assert.Equal(t, "PESO NETO 10", FormatTag(Net, 10))
	assert.Equal(t, "PESO NETO", FormatTag(Net, 0))

	for _, kind := range []ChannelKind{Fill, Net} {
		for slot := 1; slot <= DefaultSlotCount; slot++ {
			parsed, ok := ParseTag(FormatTag(kind, slot))
			require.True(t, ok)
			assert.Equal(t, kind, parsed.Kind)
			assert.Equal(t, slot, parsed.Slot)
		}
	}
}
