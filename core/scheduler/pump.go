package scheduler

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Kind identifies a message.
type Kind string

const (
	// KindQuit ends the loop.
	KindQuit Kind = "quit"
	// KindSignal carries an OS signal that does not end the loop.
	KindSignal Kind = "signal"
	// KindCommand carries an application command.
	KindCommand Kind = "command"
)

// Message is a unit of work for the main thread.
type Message struct {
	Kind    Kind
	Payload any
}

// Pump yields pending messages without blocking.
type Pump interface {
	// Peek removes and returns the next message, if any.
	Peek() (Message, bool)
}

// Dispatcher handles messages taken from the Pump.
type Dispatcher interface {
	Dispatch(msg Message)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(msg Message)

func (f DispatcherFunc) Dispatch(msg Message) { f(msg) }

// LogDispatcher returns a Dispatcher that only logs messages.
func LogDispatcher(logger *zap.Logger) Dispatcher {
	return DispatcherFunc(func(msg Message) {
		logger.Debug("Message dispatched",
			zap.String("kind", string(msg.Kind)),
			zap.Any("payload", msg.Payload),
		)
	})
}

// ChannelPump is a Pump fed from other goroutines.
// Quit is delivered after every message posted before it.
type ChannelPump struct {
	ch   chan Message
	quit atomic.Bool
}

// NewChannelPump creates a pump buffering up to size messages.
func NewChannelPump(size int) *ChannelPump {
	if size < 1 {
		size = 1
	}
	return &ChannelPump{ch: make(chan Message, size)}
}

// Post queues msg. It reports false when the buffer is full.
func (p *ChannelPump) Post(msg Message) bool {
	if msg.Kind == KindQuit {
		p.Quit()
		return true
	}
	select {
	case p.ch <- msg:
		return true
	default:
		return false
	}
}

// Quit asks the loop to stop. It never blocks.
func (p *ChannelPump) Quit() {
	p.quit.Store(true)
}

// Peek implements Pump.
func (p *ChannelPump) Peek() (Message, bool) {
	select {
	case msg := <-p.ch:
		return msg, true
	default:
	}
	if p.quit.Load() {
		return Message{Kind: KindQuit}, true
	}
	return Message{}, false
}
