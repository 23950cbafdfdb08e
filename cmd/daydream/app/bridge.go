package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// callbackMsg carries a timer callback onto the bubbletea loop.
type callbackMsg func()

// Bridge hands clock callbacks from timer goroutines to the program's
// update loop, so the session is only ever touched from Update.
type Bridge struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

// NewBridge creates a bridge. Its Dispatch method is a clock.Dispatcher.
func NewBridge() *Bridge {
	return &Bridge{ch: make(chan func(), 64), done: make(chan struct{})}
}

// Dispatch queues fn for the update loop. It blocks while the queue is full
// and drops fn once the bridge is closed.
func (b *Bridge) Dispatch(fn func()) {
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.ch <- fn:
	case <-b.done:
	}
}

// Wait returns a command that delivers the next callback.
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-b.ch:
			return callbackMsg(fn)
		case <-b.done:
			return nil
		}
	}
}

// Close releases every blocked Dispatch and Wait.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}
