package bot

import (
	"context"

	"github.com/rs/zerolog/log"
)

// delivery is one inbound message and the handle to answer it through.
type delivery struct {
	msg Message
	r   Responder
}

// Pump feeds messages to a Dispatcher one at a time, in the order they
// were submitted. Submit from a single goroutine (the gateway event loop)
// and run one Run loop.
type Pump struct {
	d  *Dispatcher
	in chan delivery
}

// NewPump returns a Pump with room for buffer queued messages.
func NewPump(d *Dispatcher, buffer int) *Pump {
	return &Pump{d: d, in: make(chan delivery, buffer)}
}

// Submit queues msg. It blocks while the queue is full and gives up when
// ctx is done.
func (p *Pump) Submit(ctx context.Context, msg Message, r Responder) error {
	select {
	case p.in <- delivery{msg: msg, r: r}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting messages; Run returns once the queue is drained.
func (p *Pump) Close() { close(p.in) }

// Run processes queued messages until Close or ctx is done.
func (p *Pump) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case dl, ok := <-p.in:
			if !ok {
				return
			}
			p.process(ctx, dl)
		}
	}
}

func (p *Pump) process(ctx context.Context, dl delivery) {
	out, err := p.d.Handle(ctx, dl.msg)
	if err != nil {
		// Nothing was acknowledged and the in-memory state is unchanged;
		// the message stays as is.
		log.Error().Err(err).Int64("channel", dl.msg.ChannelID).Int64("user", dl.msg.AuthorID).Msg("handle message")
		return
	}
	if out.Action == ActionNone {
		return
	}
	if err := p.d.Respond(ctx, out, dl.r); err != nil {
		log.Warn().Err(err).
			Int64("channel", dl.msg.ChannelID).
			Str("game", string(out.Game)).
			Str("action", out.Action.String()).
			Msg("respond")
	}
}
