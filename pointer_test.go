package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inputRecorder struct {
	inputs []Input
}

func (r *inputRecorder) Input(in Input) { r.inputs = append(r.inputs, in) }

func (r *inputRecorder) types() []InputType {
	out := make([]InputType, 0, len(r.inputs))
	for _, in := range r.inputs {
		out = append(out, in.Type)
	}
	return out
}

func TestPointerFeedUpdateSequence(t *testing.T) {
	clock := newManualClock()
	sink := &inputRecorder{}
	f := NewPointerFeed(sink, clock)

	f.update([]Point{{X: 10, Y: 10}}, clock.Now())
	f.update([]Point{{X: 12, Y: 10}}, clock.Now())
	f.update([]Point{{X: 12, Y: 10}, {X: 20, Y: 30}}, clock.Now())
	f.update([]Point{{X: 14, Y: 10}}, clock.Now())
	f.update(nil, clock.Now())

	require.Equal(t, []InputType{InputStart, InputMove, InputStart, InputMove, InputEnd}, sink.types())

	first := sink.inputs[0]
	assert.True(t, first.IsFirst)
	assert.Equal(t, 1, first.Pointers)

	second := sink.inputs[2]
	assert.False(t, second.IsFirst)
	assert.Equal(t, 2, second.Pointers)
	assert.Equal(t, Point{X: 16, Y: 20}, second.Center)

	end := sink.inputs[4]
	assert.True(t, end.IsFinal)
	assert.Equal(t, Point{X: 14, Y: 10}, end.Center)
	assert.False(t, f.Active())
}

func TestPointerFeedIdleReportsNothing(t *testing.T) {
	sink := &inputRecorder{}
	f := NewPointerFeed(sink, newManualClock())
	f.update(nil, time.Time{})
	f.Cancel()
	assert.Empty(t, sink.inputs)
}

func TestPointerFeedCancel(t *testing.T) {
	sink := &inputRecorder{}
	f := NewPointerFeed(sink, newManualClock())
	f.update([]Point{{X: 3, Y: 4}}, time.Time{})
	f.Cancel()

	require.Len(t, sink.inputs, 2)
	assert.Equal(t, InputCancel, sink.inputs[1].Type)
	assert.True(t, sink.inputs[1].IsFinal)
	assert.Equal(t, Point{X: 3, Y: 4}, sink.inputs[1].Center)
	assert.False(t, f.Active())
}

func TestPointerFeedInjectDrag(t *testing.T) {
	clock := newManualClock()
	sink := &inputRecorder{}
	f := NewPointerFeed(sink, clock)

	f.InjectDrag(0, 0, 30, 0, 4)
	require.Equal(t, 5, f.Queued())
	for f.Queued() > 0 {
		f.Poll()
	}

	assert.Equal(t, []InputType{InputStart, InputMove, InputMove, InputMove, InputEnd}, sink.types())
	var xs []float64
	for _, in := range sink.inputs {
		xs = append(xs, in.Center.X)
	}
	assert.InDeltaSlice(t, []float64{0, 10, 20, 30, 30}, xs, 1e-9)
}

func TestPointerFeedInjectPointers(t *testing.T) {
	sink := &inputRecorder{}
	f := NewPointerFeed(sink, newManualClock())

	pts := []Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	f.InjectPointers(pts...)
	pts[0] = Point{X: 99, Y: 99}
	f.InjectRelease()
	f.Poll()
	f.Poll()

	require.Len(t, sink.inputs, 2)
	assert.Equal(t, Point{X: 5, Y: 5}, sink.inputs[0].Center, "queued frame is a copy")
	assert.Equal(t, 2, sink.inputs[0].Pointers)
	assert.Equal(t, InputEnd, sink.inputs[1].Type)
}

func TestPointerFeedDrivesHub(t *testing.T) {
	clock := newManualClock()
	h := NewHub(clock)
	h.AddRecognizer(NewTap(RecognizerOptions{}))
	h.AddRecognizer(NewPan(RecognizerOptions{}))
	log := record(h)
	f := NewPointerFeed(h, clock)

	f.InjectTap(20, 20)
	for f.Queued() > 0 {
		f.Poll()
		clock.Advance(16 * time.Millisecond)
	}
	assert.Equal(t, []string{"tap"}, log.types())

	clock.Advance(time.Second)
	f.InjectDrag(0, 0, 60, 0, 4)
	for f.Queued() > 0 {
		f.Poll()
		clock.Advance(16 * time.Millisecond)
	}
	assert.Equal(t, []string{
		"tap",
		"panstart", "pan", "panright",
		"panmove", "pan", "panright",
		"panmove", "pan", "panright",
		"pan", "panend",
	}, log.types())
}
