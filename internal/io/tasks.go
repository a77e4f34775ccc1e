package io

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// taskManager runs a set of tasks, sequentially or with a bounded number of
// workers, and collects their errors.
type taskManager struct {
	sync.Mutex
	tasks []func() error
}

func newTaskManager() *taskManager {
	return &taskManager{}
}

// add adds a new task. Tasks with parameters can be added by invoking a
// parameterized function that immediately returns a func() error, capturing
// any parameters in the closure.
func (t *taskManager) add(task func() error) {
	t.Lock()
	defer t.Unlock()

	t.tasks = append(t.tasks, task)
}

// launchConcAndWait concurrently launches the tasks with at most maxWorkers
// running at once and returns all of their errors joined. Tasks not yet
// started when ctx is canceled are not started at all.
func (t *taskManager) launchConcAndWait(ctx context.Context, maxWorkers int) error {
	t.Lock()
	defer t.Unlock()

	maxWorkers = max(maxWorkers, 1)

	var wg sync.WaitGroup
	var errsMu sync.Mutex
	var errs []error

	semaphore := make(chan struct{}, maxWorkers)

	for _, task := range t.tasks {
		select {
		case <-ctx.Done():
			wg.Wait()

			return fmt.Errorf("(io-tasker-conc) %w", errors.Join(append(errs, ctx.Err())...))
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(task func() error) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := task(); err != nil {
				errsMu.Lock()
				errs = append(errs, err)
				errsMu.Unlock()
			}
		}(task)
	}

	wg.Wait()

	if ctx.Err() != nil {
		errs = append(errs, ctx.Err())
	}

	if len(errs) > 0 {
		return fmt.Errorf("(io-tasker-conc) %w", errors.Join(errs...))
	}

	return nil
}

// ChecksumAll returns the checksums of the regular files at paths, computed
// by at most maxWorkers concurrent workers. Paths that could not be hashed
// are missing from the result and their errors are returned joined.
func (i *Handler) ChecksumAll(ctx context.Context, paths []string, maxWorkers int) (map[string]string, error) {
	var mu sync.Mutex
	sums := make(map[string]string, len(paths))

	tasker := newTaskManager()

	for _, path := range paths {
		tasker.add(func() error {
			sum, err := i.Checksum(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			mu.Lock()
			sums[path] = sum
			mu.Unlock()

			return nil
		})
	}

	if err := tasker.launchConcAndWait(ctx, maxWorkers); err != nil {
		return sums, err
	}

	return sums, nil
}
