package query

import (
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/varbrowse/internal/logging"
)

//nolint:gochecknoglobals // Monotonic id source shared by all queries.
var lastQueryID atomic.Int64

// FetchFunc performs one request. It must honour ctx cancellation.
type FetchFunc[T any] func(ctx context.Context, req Request) (T, error)

// State is what a Query exposes to its owner.
type State[T any] struct {
	Data    T
	Err     error
	Loading bool
}

// GraphQLErrors returns the server-reported errors, if that is why the
// request failed.
func (s State[T]) GraphQLErrors() (*GraphQLErrors, bool) {
	var gqlErr *GraphQLErrors
	if errors.As(s.Err, &gqlErr) {
		return gqlErr, true
	}
	return nil, false
}

// ResultMsg carries a finished request back into the Bubble Tea loop.
type ResultMsg[T any] struct {
	queryID    int64
	generation uint64

	Request Request
	Data    T
	Err     error
}

// Query owns the request lifecycle of one consumer.
type Query[T any] struct {
	id     int64
	ctx    context.Context
	fetch  FetchFunc[T]
	cancel context.CancelFunc

	generation uint64
	current    Request
	started    bool
	closed     bool
	state      State[T]
}

// New returns a Query that runs fetch under ctx.
func New[T any](ctx context.Context, fetch FetchFunc[T]) *Query[T] {
	return &Query[T]{
		id:    lastQueryID.Add(1),
		ctx:   ctx,
		fetch: fetch,
	}
}

// State returns the current state.
func (q *Query[T]) State() State[T] { return q.state }

// Request returns the most recently issued request.
func (q *Query[T]) Request() Request { return q.current }

// Run issues req unless it equals the request already issued. Any in-flight
// request is cancelled and its result will be discarded.
func (q *Query[T]) Run(req Request) tea.Cmd {
	if q.closed || (q.started && req.Equal(q.current)) {
		return nil
	}
	return q.issue(req)
}

// Refetch reissues the current request.
func (q *Query[T]) Refetch() tea.Cmd {
	if q.closed || !q.started {
		return nil
	}
	return q.issue(q.current)
}

func (q *Query[T]) issue(req Request) tea.Cmd {
	if q.cancel != nil {
		q.cancel()
	}
	ctx, cancel := context.WithCancel(q.ctx)
	q.cancel = cancel
	q.generation++
	q.current = req
	q.started = true
	q.state.Loading = true
	q.state.Err = nil

	id, gen, fetch := q.id, q.generation, q.fetch
	logging.FromContext(ctx).Debug().
		Uint64("generation", gen).
		Str("request_key", req.Key()).
		Msg("query issued")

	return func() tea.Msg {
		data, err := fetch(ctx, req)
		return ResultMsg[T]{
			queryID:    id,
			generation: gen,
			Request:    req,
			Data:       data,
			Err:        err,
		}
	}
}

// Resolve applies msg if it belongs to the latest request of this query and
// the query is still open. It returns false for anything else; the state is
// then unchanged.
func (q *Query[T]) Resolve(msg ResultMsg[T]) (State[T], bool) {
	if q.closed || msg.queryID != q.id || msg.generation != q.generation {
		logging.FromContext(q.ctx).Debug().
			Uint64("generation", msg.generation).
			Bool("closed", q.closed).
			Msg("query result discarded")
		return q.state, false
	}

	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.state.Loading = false
	q.state.Err = msg.Err
	if msg.Err == nil {
		q.state.Data = msg.Data
	}
	return q.state, true
}

// Close cancels any in-flight request. Results arriving afterwards are discarded.
func (q *Query[T]) Close() {
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.closed = true
	q.state.Loading = false
}

// Closed reports whether Close was called.
func (q *Query[T]) Closed() bool { return q.closed }
