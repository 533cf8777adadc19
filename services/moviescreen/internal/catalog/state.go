package catalog

import "slices"

func (a *Aggregator) setLoading(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Loading = v
	a.broadcastLocked()
}

func (a *Aggregator) publish(movies []Movie) State {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Movies = movies
	a.state.Version++
	a.state.RefreshedAt = a.opts.Now().UTC()
	a.state.LastError = ""
	a.broadcastLocked()
	return a.snapshotLocked()
}

func (a *Aggregator) recordFailure(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.LastError = err.Error()
	a.broadcastLocked()
}

// Snapshot returns a copy of the current state.
func (a *Aggregator) Snapshot() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshotLocked()
}

func (a *Aggregator) snapshotLocked() State {
	st := a.state
	st.Movies = slices.Clone(a.state.Movies)
	if st.Movies == nil {
		st.Movies = []Movie{}
	}
	return st
}

func (a *Aggregator) Movies() []Movie {
	return a.Snapshot().Movies
}

func (a *Aggregator) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Loading
}

// Subscribe returns a channel that always holds the latest state. Slow
// readers skip intermediate states. cancel closes the channel.
func (a *Aggregator) Subscribe() (<-chan State, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextSub
	a.nextSub++
	ch := make(chan State, 1)
	ch <- a.snapshotLocked()
	a.subs[id] = ch

	var once bool
	cancel := func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if once {
			return
		}
		once = true
		delete(a.subs, id)
		close(ch)
	}
	return ch, cancel
}

func (a *Aggregator) broadcastLocked() {
	if len(a.subs) == 0 {
		return
	}
	st := a.snapshotLocked()
	for _, ch := range a.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- st
		}
	}
}
