package query_test

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/varbrowse/internal/query"
)

func TestRequest_Key(t *testing.T) {
	a := query.Request{Query: "q", Variables: map[string]any{"a": 1, "b": "x"}}
	b := query.Request{Query: "q", Variables: map[string]any{"b": "x", "a": 1}}
	c := query.Request{Query: "q", Variables: map[string]any{"a": 2, "b": "x"}}

	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Len(t, a.Key(), 64)
}

func echoFetch(ctx context.Context, req query.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return req.Query, nil
}

func resultOf(t *testing.T, cmd tea.Cmd) query.ResultMsg[string] {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(query.ResultMsg[string])
	require.True(t, ok)
	return msg
}

func TestQuery_SupersededResultIsDiscarded(t *testing.T) {
	q := query.New(context.Background(), echoFetch)

	first := q.Run(query.Request{Query: "first"})
	require.NotNil(t, first)
	assert.True(t, q.State().Loading)

	second := q.Run(query.Request{Query: "second"})
	require.NotNil(t, second)

	// The first request's context was cancelled by the second Run.
	msg1 := resultOf(t, first)
	assert.ErrorIs(t, msg1.Err, context.Canceled)
	state, applied := q.Resolve(msg1)
	assert.False(t, applied)
	assert.True(t, state.Loading)

	msg2 := resultOf(t, second)
	state, applied = q.Resolve(msg2)
	require.True(t, applied)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Equal(t, "second", state.Data)
}

func TestQuery_SameRequestIsNotReissued(t *testing.T) {
	q := query.New(context.Background(), echoFetch)
	req := query.Request{Query: "q", Variables: map[string]any{"id": 1}}

	require.NotNil(t, q.Run(req))
	assert.Nil(t, q.Run(query.Request{Query: "q", Variables: map[string]any{"id": 1}}))

	refetch := q.Refetch()
	require.NotNil(t, refetch)
	msg := resultOf(t, refetch)
	_, applied := q.Resolve(msg)
	assert.True(t, applied)
}

func TestQuery_CloseDiscardsResults(t *testing.T) {
	q := query.New(context.Background(), echoFetch)
	cmd := q.Run(query.Request{Query: "q"})
	q.Close()

	assert.True(t, q.Closed())
	assert.False(t, q.State().Loading)

	msg := resultOf(t, cmd)
	_, applied := q.Resolve(msg)
	assert.False(t, applied)

	assert.Nil(t, q.Run(query.Request{Query: "other"}))
	assert.Nil(t, q.Refetch())
}

func TestQuery_ResultsAreRoutedByQuery(t *testing.T) {
	a := query.New(context.Background(), echoFetch)
	b := query.New(context.Background(), echoFetch)

	cmdA := a.Run(query.Request{Query: "a"})
	b.Run(query.Request{Query: "b"})

	msg := resultOf(t, cmdA)
	_, applied := b.Resolve(msg)
	assert.False(t, applied)
	_, applied = a.Resolve(msg)
	assert.True(t, applied)
}

func TestQuery_ErrorState(t *testing.T) {
	gqlErr := &query.GraphQLErrors{Errors: []query.GraphQLError{{Message: "dataset not found"}}}
	q := query.New(context.Background(), func(context.Context, query.Request) (string, error) {
		return "", gqlErr
	})

	cmd := q.Run(query.Request{Query: "q"})
	state, applied := q.Resolve(resultOf(t, cmd))
	require.True(t, applied)
	require.Error(t, state.Err)

	got, ok := state.GraphQLErrors()
	require.True(t, ok)
	assert.Equal(t, "graphql: dataset not found", got.Error())

	plain := query.State[string]{Err: errors.New("boom")}
	_, ok = plain.GraphQLErrors()
	assert.False(t, ok)
}
