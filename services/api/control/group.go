// Package control rebuilds quality-control events from the flat, tagged
// weight readings stored by the backend.
//
// A control event is one capture of up to DefaultSlotCount fill weights and
// DefaultSlotCount net weights taken at the same moment. The backend keeps
// each weight as a separate record tagged "PESO FILL <n>" or "PESO NETO <n>";
// Group puts them back together keyed by the timestamp truncated to the
// second. A zero value is indistinguishable from an empty slot.
package control

import (
	"slices"
	"time"
)

// DefaultSlotCount is the number of readings per channel in one event.
const DefaultSlotCount = 10

// Record is one measurement as returned by the backend.
type Record struct {
	SubjectID string  `json:"productControlId"`
	Timestamp string  `json:"fecha"`
	Value     float64 `json:"peso"`
	Tag       string  `json:"tipoControl"`
}

// Event is a reconstructed control event. Fill and Net always have the
// grouper's slot count as length; zero means no reading.
type Event struct {
	Key       time.Time `json:"key"`
	Timestamp string    `json:"fechaHora"`
	Time      time.Time `json:"-"`
	Fill      []float64 `json:"pesosFill"`
	Net       []float64 `json:"pesosNeto"`
}

// Slots returns the slot array for the given channel.
func (e *Event) Slots(kind ChannelKind) []float64 {
	if kind == Net {
		return e.Net
	}
	return e.Fill
}

// Readings counts the non-zero slots of each channel.
func (e Event) Readings() (fill, net int) {
	for _, v := range e.Fill {
		if v != 0 {
			fill++
		}
	}
	for _, v := range e.Net {
		if v != 0 {
			net++
		}
	}
	return fill, net
}

// DropReason explains why a record did not land in any slot.
type DropReason int

const (
	DropUnknownTag DropReason = iota
	DropBadTimestamp
	DropSlotOutOfRange
	DropNoFreeSlot
)

func (r DropReason) String() string {
	switch r {
	case DropUnknownTag:
		return "unknown tag"
	case DropBadTimestamp:
		return "bad timestamp"
	case DropSlotOutOfRange:
		return "slot out of range"
	case DropNoFreeSlot:
		return "no free slot"
	default:
		return "unknown"
	}
}

// Grouper buckets records into events. The zero value uses
// DefaultSlotCount and ignores drops.
type Grouper struct {
	SlotCount int
	// OnDrop, when set, is called for every record that is skipped.
	OnDrop func(Record, DropReason)
}

// Group groups records with the default slot count.
func Group(records []Record) []Event {
	return Grouper{}.Group(records)
}

// Group returns one event per distinct second present in records, sorted by
// the timestamp of the first record seen for that second. Records are
// applied in input order, so a later record addressing the same slot
// overwrites an earlier one.
func (g Grouper) Group(records []Record) []Event {
	n := g.slotCount()
	events := make([]*Event, 0)
	index := make(map[int64]*Event)

	for _, rec := range records {
		ts, err := ParseTimestamp(rec.Timestamp)
		if err != nil {
			g.drop(rec, DropBadTimestamp)
			continue
		}

		key := ts.Unix()
		ev, ok := index[key]
		if !ok {
			ev = &Event{
				Key:       time.Unix(key, 0).UTC(),
				Timestamp: rec.Timestamp,
				Time:      ts,
				Fill:      make([]float64, n),
				Net:       make([]float64, n),
			}
			index[key] = ev
			events = append(events, ev)
		}

		tag, ok := ParseTag(rec.Tag)
		if !ok {
			g.drop(rec, DropUnknownTag)
			continue
		}

		slots := ev.Slots(tag.Kind)
		pos := -1
		if tag.HasSlot {
			if tag.Slot < 1 || tag.Slot > n {
				g.drop(rec, DropSlotOutOfRange)
				continue
			}
			pos = tag.Slot - 1
		} else {
			pos = slices.Index(slots, 0)
			if pos < 0 {
				g.drop(rec, DropNoFreeSlot)
				continue
			}
		}
		slots[pos] = rec.Value
	}

	slices.SortStableFunc(events, func(a, b *Event) int {
		return a.Time.Compare(b.Time)
	})

	out := make([]Event, len(events))
	for i, ev := range events {
		out[i] = *ev
	}
	return out
}

func (g Grouper) slotCount() int {
	if g.SlotCount <= 0 {
		return DefaultSlotCount
	}
	return g.SlotCount
}

func (g Grouper) drop(rec Record, reason DropReason) {
	if g.OnDrop != nil {
		g.OnDrop(rec, reason)
	}
}
