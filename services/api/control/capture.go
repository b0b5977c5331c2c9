package control

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoFillReading   = errors.New("Debe ingresar al menos un valor en Peso Fill")
	ErrNoNetReading    = errors.New("Debe ingresar al menos un valor en Peso Neto")
	ErrTooManyReadings = errors.New("too many readings for the slot count")
)

// Capture turns one entry form into the tagged records the backend stores:
// slotCount fill records followed by slotCount net records, all stamped
// with at. Nil entries are stored as zero. Each channel needs at least one
// reading.
func Capture(subjectID string, at time.Time, fill, net []*float64, slotCount int) ([]Record, error) {
	if slotCount <= 0 {
		slotCount = DefaultSlotCount
	}
	if len(fill) > slotCount || len(net) > slotCount {
		return nil, fmt.Errorf("%w: %d fill, %d net, %d slots", ErrTooManyReadings, len(fill), len(net), slotCount)
	}
	if !hasReading(fill) {
		return nil, ErrNoFillReading
	}
	if !hasReading(net) {
		return nil, ErrNoNetReading
	}

	stamp := FormatTimestamp(at)
	records := make([]Record, 0, 2*slotCount)
	for _, ch := range []struct {
		kind   ChannelKind
		values []*float64
	}{{Fill, fill}, {Net, net}} {
		for i := 0; i < slotCount; i++ {
			var v float64
			if i < len(ch.values) && ch.values[i] != nil {
				v = round2(*ch.values[i])
			}
			records = append(records, Record{
				SubjectID: subjectID,
				Timestamp: stamp,
				Value:     v,
				Tag:       FormatTag(ch.kind, i+1),
			})
		}
	}
	return records, nil
}

func hasReading(values []*float64) bool {
	for _, v := range values {
		if v != nil && !math.IsNaN(*v) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
