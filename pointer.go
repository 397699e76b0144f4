package gesture

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputSink receives raw input. *Hub implements it.
type InputSink interface {
	Input(in Input)
}

// syntheticFrame is one queued frame of injected pointer positions.
// An empty frame means "all pointers up".
type syntheticFrame struct {
	points []Point
}

// PointerFeed polls ebiten's mouse and touch state once per frame and reports
// it to a sink as a single aggregated Input stream. The left mouse button
// counts as one pointer; every touch counts as another.
//
// While any pointer is down an input is reported every frame, even without
// movement, so time-based recognizers such as press can fire.
type PointerFeed struct {
	sink  InputSink
	clock Clock

	touchIDs []ebiten.TouchID
	points   []Point

	active bool
	count  int
	last   Point

	injectQueue []syntheticFrame
}

// NewPointerFeed creates a feed reporting to sink. A nil clock uses
// SystemClock.
func NewPointerFeed(sink InputSink, clock Clock) *PointerFeed {
	if clock == nil {
		clock = SystemClock
	}
	return &PointerFeed{sink: sink, clock: clock}
}

// Poll reads the current pointer state and reports it. Call once per frame
// from the game's Update. Queued injected frames take priority over real
// input.
func (f *PointerFeed) Poll() {
	if f.processInjected() {
		return
	}
	f.points = f.points[:0]
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		f.points = append(f.points, Point{X: float64(mx), Y: float64(my)})
	}
	f.touchIDs = ebiten.AppendTouchIDs(f.touchIDs[:0])
	for _, id := range f.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		f.points = append(f.points, Point{X: float64(tx), Y: float64(ty)})
	}
	f.update(f.points, f.clock.Now())
}

// Cancel aborts the gesture in progress, if any.
func (f *PointerFeed) Cancel() {
	if !f.active {
		return
	}
	f.active = false
	f.count = 0
	f.sink.Input(Input{
		Type:    InputCancel,
		IsFinal: true,
		Center:  f.last,
		Time:    f.clock.Now(),
	})
}

// Active reports whether a gesture is in progress.
func (f *PointerFeed) Active() bool {
	return f.active
}

// update turns one frame of pointer positions into an Input.
func (f *PointerFeed) update(points []Point, now time.Time) {
	n := len(points)
	if n == 0 {
		if !f.active {
			return
		}
		f.active = false
		f.count = 0
		f.sink.Input(Input{
			Type:    InputEnd,
			IsFinal: true,
			Center:  f.last,
			Time:    now,
		})
		return
	}

	c := centroid(points)
	in := Input{Center: c, Pointers: n, Time: now}
	switch {
	case !f.active:
		in.Type = InputStart
		in.IsFirst = true
		f.active = true
	case n > f.count:
		in.Type = InputStart
	default:
		in.Type = InputMove
	}
	f.count = n
	f.last = c
	f.sink.Input(in)
}

func centroid(points []Point) Point {
	if len(points) == 1 {
		return points[0]
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// --- Injected input ---

// InjectPress queues a frame with a single pointer down at (x, y).
func (f *PointerFeed) InjectPress(x, y float64) {
	f.injectQueue = append(f.injectQueue, syntheticFrame{points: []Point{{X: x, Y: y}}})
}

// InjectMove queues a frame with a single pointer held at (x, y). Use it
// between InjectPress and InjectRelease to simulate a drag or a hold.
func (f *PointerFeed) InjectMove(x, y float64) {
	f.InjectPress(x, y)
}

// InjectPointers queues a frame with several pointers down.
func (f *PointerFeed) InjectPointers(points ...Point) {
	frame := make([]Point, len(points))
	copy(frame, points)
	f.injectQueue = append(f.injectQueue, syntheticFrame{points: frame})
}

// InjectRelease queues a frame with every pointer up.
func (f *PointerFeed) InjectRelease() {
	f.injectQueue = append(f.injectQueue, syntheticFrame{})
}

// InjectTap queues a press followed by a release at (x, y). Consumes two
// frames.
func (f *PointerFeed) InjectTap(x, y float64) {
	f.InjectPress(x, y)
	f.InjectRelease()
}

// InjectDrag queues a press at (fromX, fromY), frames-2 linearly
// interpolated moves, a move to (toX, toY) and a release. The sequence
// consumes frames+1 frames. Minimum frames is 2.
func (f *PointerFeed) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	f.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		f.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	f.InjectMove(toX, toY)
	f.InjectRelease()
}

// Queued returns the number of injected frames not yet consumed.
func (f *PointerFeed) Queued() int {
	return len(f.injectQueue)
}

// processInjected pops one injected frame and reports it. Returns true if a
// frame was consumed.
func (f *PointerFeed) processInjected() bool {
	if len(f.injectQueue) == 0 {
		return false
	}
	frame := f.injectQueue[0]
	copy(f.injectQueue, f.injectQueue[1:])
	f.injectQueue[len(f.injectQueue)-1] = syntheticFrame{}
	f.injectQueue = f.injectQueue[:len(f.injectQueue)-1]
	f.update(frame.points, f.clock.Now())
	return true
}
