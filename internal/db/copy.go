package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CopyRow is a staging row that knows its COPY column values.
type CopyRow interface {
	CopyValues() []any
}

// ChannelSource implements pgx.CopyFromSource by reading rows from a channel.
// This provides natural backpressure between the classifier and COPY writer.
type ChannelSource[R CopyRow] struct {
	ch      <-chan R
	current R
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource[R CopyRow](ch <-chan R) *ChannelSource[R] {
	return &ChannelSource[R]{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource[R]) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource[R]) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err returns the producer's error, if any. It is only meaningful once Next
// has returned false.
func (s *ChannelSource[R]) Err() error {
	return s.err
}

// CopyFromChannel runs produce in its own goroutine and COPYs every row it
// sends into table. produce must stop when its context is done. A producer
// error aborts the COPY, so a failed run never leaves a partial load behind.
func CopyFromChannel[R CopyRow](
	ctx context.Context,
	pool *pgxpool.Pool,
	table pgx.Identifier,
	columns []string,
	buffer int,
	produce func(ctx context.Context, ch chan<- R) error,
) (int64, error) {
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan R, buffer)
	src := NewChannelSource(ch)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(ch)
		src.err = produce(cctx, ch)
	}()

	n, err := pool.CopyFrom(cctx, table, columns, src)
	cancel()
	<-done

	if err != nil {
		return n, fmt.Errorf("copy into %s: %w", table.Sanitize(), err)
	}
	if src.err != nil {
		return n, fmt.Errorf("copy into %s: %w", table.Sanitize(), src.err)
	}
	return n, nil
}

// Compile-time check that ChannelSource satisfies the interface.
var _ pgx.CopyFromSource = (*ChannelSource[CopyRow])(nil)
