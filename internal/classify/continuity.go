package classify

import "time"

// ActivityFrame pairs a photo's classified activity (possibly empty) with
// its filename-derived unix timestamp.
type ActivityFrame struct {
	Activity  string
	Timestamp int64
}

// Resolver fills in activity labels for photos that carry no usable text,
// inheriting the previous photo's activity while the time gap stays under
// the threshold. Frames must be fed in non-decreasing timestamp order;
// frames with identical timestamps keep their collection order.
type Resolver struct {
	gapSeconds int64
	blockNames bool
	prev       *ActivityFrame
}

// NewResolver returns a resolver with the given gap threshold in minutes.
// With blockNames set, a new segment is labeled by its starting timestamp
// instead of the unclassified sentinel.
func NewResolver(gapMinutes int, blockNames bool) *Resolver {
	return &Resolver{
		gapSeconds: int64(gapMinutes) * 60,
		blockNames: blockNames,
	}
}

// Next resolves the activity for one frame and advances the state.
//
// A frame with a non-empty classified activity always wins and becomes the
// new state. Otherwise the previous activity is inherited while the gap is
// strictly under the threshold; a gap equal to the threshold starts a new
// segment.
func (r *Resolver) Next(f ActivityFrame) string {
	if f.Activity != "" {
		r.prev = &ActivityFrame{Activity: f.Activity, Timestamp: f.Timestamp}
		return f.Activity
	}

	if r.prev != nil && f.Timestamp-r.prev.Timestamp < r.gapSeconds {
		inherited := r.prev.Activity
		r.prev = &ActivityFrame{Activity: inherited, Timestamp: f.Timestamp}
		return inherited
	}

	label := Unclassified
	if r.blockNames {
		label = BlockName(f.Timestamp)
	}
	r.prev = &ActivityFrame{Activity: label, Timestamp: f.Timestamp}
	return label
}

// BlockName derives a deterministic segment label from a timestamp, down to
// the minute.
func BlockName(ts int64) string {
	return time.Unix(ts, 0).Format("20060102_1504")
}
