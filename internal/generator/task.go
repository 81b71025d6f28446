package generator

import "context"

// Task is work scheduled to run after the tree has been committed.
type Task func(ctx context.Context) error

// RunSerial chains tasks. Nil tasks are skipped and the first error stops
// the chain.
func RunSerial(tasks ...Task) Task {
	return func(ctx context.Context) error {
		for _, t := range tasks {
			if t == nil {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := t(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
