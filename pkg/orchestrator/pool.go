package orchestrator

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Aurore54F/jstap/pkg/jlog"
)

// Job is one unit of work: analyze the file at Path (with optional ground
// truth Label for training/evaluation runs).
type Job struct {
	Path  string
	Label string
}

// Worker builds an Analysis for one job. Implementations run the
// PDG-build -> feature-extraction -> vectorization pipeline; ctx carries
// the per-file timeout, and a Worker that ignores ctx cancellation simply
// runs past its deadline with no effect beyond a delayed result (Go gives
// no way to forcibly preempt a goroutine, unlike the source's
// process-based workers, which terminate-on-timeout).
type Worker func(ctx context.Context, job Job) *Analysis

// Pool runs jobs across a fixed number of goroutines, each job bounded by
// perFileTimeout, and returns results sorted by file path for
// reproducibility. This replaces the source's three-queue
// (in/out/exception) polling dance — get_features/
// get_features_representation's non-blocking out_queue.get(timeout=0.01)
// loop combined with exitcode-is-None checks — with Go's native
// worker-pool idiom: an unbuffered job channel, a WaitGroup, and a
// mutex-guarded results slice. The anti-deadlock property the source's
// polling loop exists to guarantee (drain the output queue before joining
// workers, so a worker blocked writing to a full pipe never deadlocks
// against a parent blocked in join()) is structural here instead: Go
// channels and goroutines don't have that failure mode, so no draining
// discipline is needed to avoid it.
func Pool(ctx context.Context, jobs []Job, workers int, perFileTimeout time.Duration, work Worker, log *jlog.Logger) []*Analysis {
	if workers < 1 {
		workers = 1
	}

	jobCh := make(chan Job)
	var mu sync.Mutex
	var results []*Analysis

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				jobCtx, cancel := context.WithTimeout(ctx, perFileTimeout)
				a := work(jobCtx, job)
				cancel()
				if a != nil {
					a.ID = uuid.New().String()
				}
				if a != nil && a.Err != nil && log != nil {
					log.Warnf("%s [%s]: %v", job.Path, a.ID, a.Err)
				}
				mu.Lock()
				results = append(results, a)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case jobCh <- job:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobCh)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].FilePath < results[j].FilePath
	})
	return results
}
