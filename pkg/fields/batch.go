package fields

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of decoding one payload of a batch.
type Result struct {
	Values []Value

	// Remaining is the number of payload bits left after the last field.
	Remaining int

	// Err is the decode error for this payload, if any. A failed payload
	// does not stop the rest of the batch.
	Err error
}

// DecodeBatch decodes payloads in parallel with at most limit goroutines
// (limit <= 0 means one per payload). Every payload gets its own Reader.
//
// Results are returned in payload order. The returned error is non-nil only
// when ctx is cancelled before all payloads were scheduled.
func DecodeBatch(ctx context.Context, dec *Decoder, payloads [][]byte, limit int) ([]Result, error) {
	results := make([]Result, len(payloads))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range payloads {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return results, fmt.Errorf("decode batch: %w", err)
		}
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vals, rem, err := dec.DecodeBytes(p)
			results[i] = Result{Values: vals, Remaining: rem, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("decode batch: %w", err)
	}
	return results, nil
}
