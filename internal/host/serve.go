package host

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Result is the outcome of one request.
type Result struct {
	Response Response
	Err      error
}

// Envelope carries a request from a surface together with its reply channel.
type Envelope struct {
	Surface SurfaceID
	Request Request
	Reply   chan<- Result
}

// Serve handles envelopes until ctx is done or in is closed. Each envelope is
// handled in its own goroutine, so a request waiting on a dialog never blocks
// requests from other surfaces. Serve waits for in-flight requests on return.
func (o *Orchestrator) Serve(ctx context.Context, in <-chan Envelope) {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-in:
			if !ok {
				return
			}
			wg.Add(1)
			go func(env Envelope) {
				defer wg.Done()
				kind := env.Request.Kind()
				resp, err := o.Handle(ctx, env.Surface, env.Request)
				if err != nil {
					o.logger.Warn("request failed",
						zap.String("kind", kind.String()),
						zap.String("surface", string(env.Surface)),
						zap.Bool("dialog", kind.IsDialogBacked()),
						zap.Bool("disk", kind.TouchesDisk()),
						zap.Error(err))
				} else if kind.TouchesDisk() {
					o.logger.Debug("project request handled",
						zap.String("kind", kind.String()),
						zap.String("surface", string(env.Surface)))
				}
				if env.Reply != nil {
					env.Reply <- Result{Response: resp, Err: err}
				}
			}(env)
		}
	}
}

// Bridge is the surface side of the message boundary.
type Bridge struct {
	requests chan Envelope
}

// NewBridge creates a bridge with a request buffer of size buffer.
func NewBridge(buffer int) *Bridge {
	return &Bridge{requests: make(chan Envelope, buffer)}
}

// Requests is the channel to pass to Orchestrator.Serve.
func (b *Bridge) Requests() <-chan Envelope {
	return b.requests
}

// Call sends req on behalf of surface and waits for the reply.
func (b *Bridge) Call(ctx context.Context, surface SurfaceID, req Request) (Response, error) {
	reply := make(chan Result, 1)
	select {
	case b.requests <- Envelope{Surface: surface, Request: req, Reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-reply:
		return res.Response, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting requests; Serve returns once in-flight requests finish.
func (b *Bridge) Close() {
	close(b.requests)
}
