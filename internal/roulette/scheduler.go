package roulette

import (
	"sync"
	"time"
)

// Scheduler runs fn every interval until the returned cancel func is
// called. cancel must be safe to call more than once and must not block
// on an in-flight fn.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler runs each loop on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// A tick racing with cancel must not run.
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
	}
}

// ManualScheduler fires loops only when Advance is called. It is
// deterministic and test-friendly.
type ManualScheduler struct {
	mu     sync.Mutex
	nextID int
	loops  map[int]*manualLoop
}

type manualLoop struct {
	interval time.Duration
	elapsed  time.Duration
	fn       func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{loops: make(map[int]*manualLoop)}
}

func (s *ManualScheduler) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.loops[id] = &manualLoop{interval: interval, fn: fn}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.loops, id)
	}
}

// Active returns the number of loops that have not been cancelled.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loops)
}

// Advance moves simulated time forward by d and returns how many callbacks
// fired. Loops cancelled by an earlier callback in the same Advance do not
// fire again.
func (s *ManualScheduler) Advance(d time.Duration) int {
	fired := 0
	for remaining := d; ; {
		s.mu.Lock()
		id, step := s.nextDueLocked()
		if id < 0 || step > remaining {
			for _, l := range s.loops {
				l.elapsed += remaining
			}
			s.mu.Unlock()
			return fired
		}
		for _, l := range s.loops {
			l.elapsed += step
		}
		remaining -= step
		loop := s.loops[id]
		loop.elapsed = 0
		fn := loop.fn
		s.mu.Unlock()

		fn()
		fired++
	}
}

// nextDueLocked returns the loop that fires soonest and the time until it
// fires. Ties go to the loop registered first.
func (s *ManualScheduler) nextDueLocked() (int, time.Duration) {
	best, bestStep := -1, time.Duration(0)
	for id, l := range s.loops {
		step := l.interval - l.elapsed
		if step < 0 {
			step = 0
		}
		if best < 0 || step < bestStep || (step == bestStep && id < best) {
			best, bestStep = id, step
		}
	}
	return best, bestStep
}
