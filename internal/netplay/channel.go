package netplay

import "context"

// Channel is the abstract broadcast transport between two peers. The
// core never sees the wire; relay polling, websockets and the in-memory
// pair below all satisfy it.
type Channel interface {
	Send(ctx context.Context, in Intent) error
	// Recv yields inbound intents. The channel closes when the peer
	// disconnects.
	Recv() <-chan Intent
}

// endpoint is one end of an in-memory pair.
type endpoint struct {
	out chan<- Intent
	in  <-chan Intent
}

func (e *endpoint) Send(ctx context.Context, in Intent) error {
	select {
	case e.out <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *endpoint) Recv() <-chan Intent { return e.in }

// Pair returns two connected in-memory channels: what one sends the
// other receives. Used for local matches and tests.
func Pair(buffer int) (Channel, Channel) {
	ab := make(chan Intent, buffer)
	ba := make(chan Intent, buffer)
	return &endpoint{out: ab, in: ba}, &endpoint{out: ba, in: ab}
}

// Discard is a channel that drops everything sent and never delivers.
// Solo play uses it: the synthesized opponent needs no transport.
type Discard struct{}

func (Discard) Send(ctx context.Context, in Intent) error { return nil }

func (Discard) Recv() <-chan Intent { return nil }
