package board

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Interrupts binds callbacks to interrupt lines.
//
// Direct handlers run in interrupt context and must not touch state the
// main context uses without WithoutInterrupts. Deferred handlers are
// queued by the hardware handler and run later by Poll or Run in the
// caller's goroutine, so they may use any state the main context owns.
type Interrupts struct {
	board   *Board
	bound   map[uint8]*binding
	queue   chan uint8
	dropped atomic.Uint32
	logged  uint32
	depth   atomic.Int32
}

type binding struct {
	fn       func()
	trigger  InterruptTrigger
	deferred bool
}

func newInterrupts(b *Board) *Interrupts {
	return &Interrupts{
		board: b,
		bound: make(map[uint8]*binding),
		queue: make(chan uint8, b.irqQueue),
	}
}

// Attach binds fn to line, running it directly in interrupt context. A
// previous handler on the line is replaced. A trigger the board family
// lacks is ignored and leaves the line as it was.
func (i *Interrupts) Attach(line uint8, fn func(), trigger InterruptTrigger) {
	i.attach(line, &binding{fn: fn, trigger: trigger})
}

// AttachDeferred binds fn to line like Attach, but fn runs from Poll or
// Run instead of interrupt context. Events arriving while the queue is
// full are counted by Dropped and lost.
func (i *Interrupts) AttachDeferred(line uint8, fn func(), trigger InterruptTrigger) {
	i.attach(line, &binding{fn: fn, trigger: trigger, deferred: true})
}

func (i *Interrupts) attach(line uint8, bnd *binding) bool {
	code, ok := i.board.Family().NativeTrigger(bnd.trigger)
	if !ok {
		i.board.log.Debug("ignoring unsupported interrupt trigger", "line", line, "trigger", bnd.trigger)
		return false
	}

	var isr func()
	if bnd.deferred {
		isr = func() {
			i.depth.Add(1)
			defer i.depth.Add(-1)
			select {
			case i.queue <- line:
			default:
				i.dropped.Add(1)
			}
		}
	} else {
		fn := bnd.fn
		isr = func() {
			i.depth.Add(1)
			defer i.depth.Add(-1)
			fn()
		}
	}

	i.bound[line] = bnd
	i.board.drv.AttachInterrupt(line, isr, code)
	return true
}

// AttachPin resolves pin to its interrupt line and attaches fn directly.
// The returned function detaches the handler unless another one has
// replaced it in the meantime.
func (i *Interrupts) AttachPin(pin Pin, fn func(), trigger InterruptTrigger) (detach func(), err error) {
	return i.attachPin(pin, &binding{fn: fn, trigger: trigger})
}

// AttachPinDeferred is AttachPin for a deferred handler.
func (i *Interrupts) AttachPinDeferred(pin Pin, fn func(), trigger InterruptTrigger) (detach func(), err error) {
	return i.attachPin(pin, &binding{fn: fn, trigger: trigger, deferred: true})
}

func (i *Interrupts) attachPin(pin Pin, bnd *binding) (func(), error) {
	i.board.checkISR("AttachPin")
	line, ok := i.board.InterruptLineOf(pin)
	if !ok {
		return nil, fmt.Errorf("%w: pin %d", ErrInvalidInterruptPin, pin)
	}
	if !i.attach(line, bnd) {
		return func() {}, nil
	}
	return func() {
		if i.bound[line] == bnd {
			i.Detach(line)
		}
	}, nil
}

// Detach unbinds whatever handler is on line.
func (i *Interrupts) Detach(line uint8) {
	delete(i.bound, line)
	i.board.drv.DetachInterrupt(line)
}

// Attached reports whether a handler is bound to line.
func (i *Interrupts) Attached(line uint8) bool {
	_, ok := i.bound[line]
	return ok
}

// Poll runs the deferred handlers of every queued event without blocking
// and returns how many ran. Events for lines detached since they fired
// are discarded.
func (i *Interrupts) Poll() int {
	n := 0
	for {
		select {
		case line := <-i.queue:
			if i.dispatch(line) {
				n++
			}
		default:
			i.reportDrops()
			return n
		}
	}
}

// Run dispatches deferred events as they arrive until ctx is done. Like
// Poll it must be called from the goroutine that attaches handlers.
func (i *Interrupts) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			i.reportDrops()
			return ctx.Err()
		case line := <-i.queue:
			i.dispatch(line)
			if len(i.queue) == 0 {
				i.reportDrops()
			}
		}
	}
}

func (i *Interrupts) reportDrops() {
	d := i.dropped.Load()
	if d != i.logged {
		i.board.log.Warn("interrupt events dropped", "dropped", d-i.logged, "total", d)
		i.logged = d
	}
}

func (i *Interrupts) dispatch(line uint8) bool {
	bnd, ok := i.bound[line]
	if !ok || !bnd.deferred {
		return false
	}
	bnd.fn()
	return true
}

// Dropped returns how many deferred events were lost to a full queue.
func (i *Interrupts) Dropped() uint32 {
	return i.dropped.Load()
}

// InsideISR reports whether the caller is running inside an interrupt
// handler installed by this package.
func (i *Interrupts) InsideISR() bool {
	return i.depth.Load() > 0
}

// WithoutInterrupts runs fn with interrupts masked and restores the
// previous mask afterwards.
func (i *Interrupts) WithoutInterrupts(fn func()) {
	state := i.board.drv.DisableInterrupts()
	defer i.board.drv.RestoreInterrupts(state)
	fn()
}
