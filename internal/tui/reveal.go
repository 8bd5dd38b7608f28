package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/diogo/resumechat/internal/api"
)

// revealEvent is one step of a paced stream: a single character, the end
// of the stream, or the error that stopped it.
type revealEvent struct {
	text string
	err  error
	done bool
}

// Reveal messages delivered to the Update loop
type (
	revealMsg struct {
		text string
	}
	streamDoneMsg struct{}
	streamErrMsg  struct {
		err error
	}
)

// revealer pumps a chat stream one character at a time into an unbuffered
// channel. The Update loop pulls one event per waitForReveal command, so
// characters arrive in stream order.
type revealer struct {
	events chan revealEvent
}

// startReveal starts the pump goroutine. interval is the delay between
// characters; 0 reveals as fast as the stream is read. The pump closes the
// stream when it exits and stops early when ctx is cancelled.
func startReveal(ctx context.Context, stream *api.ChatStream, interval time.Duration) *revealer {
	r := &revealer{events: make(chan revealEvent)}
	go r.run(ctx, stream, interval)
	return r
}

func (r *revealer) run(ctx context.Context, stream *api.ChatStream, interval time.Duration) {
	defer close(r.events)
	defer func() {
		_ = stream.Close()
	}()

	var limiter *rate.Limiter
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	for {
		text, err := stream.Next()
		if errors.Is(err, io.EOF) {
			r.send(ctx, revealEvent{done: true})
			return
		}
		if err != nil {
			r.send(ctx, revealEvent{err: err})
			return
		}

		for _, ch := range text {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
			}
			if !r.send(ctx, revealEvent{text: string(ch)}) {
				return
			}
		}
	}
}

func (r *revealer) send(ctx context.Context, ev revealEvent) bool {
	select {
	case r.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// waitForReveal returns a command that delivers the next reveal event
func waitForReveal(r *revealer) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-r.events
		switch {
		case !ok:
			// The pump stopped without a final event: the program is shutting down
			return streamErrMsg{err: context.Canceled}
		case ev.err != nil:
			return streamErrMsg{err: ev.err}
		case ev.done:
			return streamDoneMsg{}
		default:
			return revealMsg{text: ev.text}
		}
	}
}
