package clock

import (
	"sync"
	"time"
)

// Mock is a Clock that only moves when Add or Set is called.
// Like time.Ticker, a mock ticker holds at most one pending tick; a slow
// receiver sees the most recent deadline rather than a backlog.
type Mock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*mockTicker
}

// NewMock returns a Mock starting at start.
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

// Now returns the mock's current time.
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// NewTicker creates a ticker whose first tick is due one period from now.
func (m *Mock) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker period")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &mockTicker{
		mock:   m,
		period: d,
		next:   m.now.Add(d),
		c:      make(chan time.Time, 1),
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Add advances the clock by d and fires every ticker deadline crossed on the way.
func (m *Mock) Add(d time.Duration) {
	m.Set(m.Now().Add(d))
}

// Set moves the clock to t. Moving backwards only changes Now.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = t
	for _, tk := range m.tickers {
		for !tk.stopped && !tk.next.After(t) {
			select {
			case <-tk.c:
			default:
			}
			tk.c <- tk.next
			tk.next = tk.next.Add(tk.period)
		}
	}
}

// Tickers returns the number of tickers that have not been stopped.
func (m *Mock) Tickers() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, tk := range m.tickers {
		if !tk.stopped {
			n++
		}
	}
	return n
}

type mockTicker struct {
	mock    *Mock
	period  time.Duration
	next    time.Time
	stopped bool
	c       chan time.Time
}

func (t *mockTicker) C() <-chan time.Time { return t.c }

func (t *mockTicker) Stop() {
	t.mock.mu.Lock()
	defer t.mock.mu.Unlock()
	t.stopped = true
}
