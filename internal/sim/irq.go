package sim

// Interrupt controller. Handlers run synchronously on the goroutine that
// calls Fire, which stands in for the hardware raising the line.

func (d *Driver) AttachInterrupt(line uint8, isr func(), mode uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AttachInterrupt", 0, uint32(line), uint32(mode))
	d.isrs[line] = isrBinding{fn: isr, mode: mode}
}

func (d *Driver) DetachInterrupt(line uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DetachInterrupt", 0, uint32(line))
	delete(d.isrs, line)
}

func (d *Driver) DisableInterrupts() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := uint32(0)
	if d.masked {
		prev = 1
	}
	d.masked = true
	return prev
}

func (d *Driver) RestoreInterrupts(state uint32) {
	d.mu.Lock()
	d.masked = state != 0
	var run []func()
	if !d.masked {
		for _, line := range d.pending {
			if b, ok := d.isrs[line]; ok {
				run = append(run, b.fn)
			}
		}
		d.pending = nil
	}
	d.mu.Unlock()

	for _, fn := range run {
		fn()
	}
}

// Masked reports whether interrupts are currently disabled.
func (d *Driver) Masked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.masked
}

// TriggerMode returns the native trigger code bound to line.
func (d *Driver) TriggerMode(line uint8) (uint8, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.isrs[line]
	return b.mode, ok
}

// Fire raises line. It returns false when nothing is bound. While
// interrupts are masked the event is held until they are restored.
func (d *Driver) Fire(line uint8) bool {
	d.mu.Lock()
	b, ok := d.isrs[line]
	if ok && d.masked {
		d.pending = append(d.pending, line)
		d.mu.Unlock()
		return true
	}
	d.mu.Unlock()

	if !ok {
		return false
	}
	b.fn()
	return true
}
