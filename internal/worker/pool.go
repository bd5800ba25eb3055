package worker

import (
	"context"
	"sync"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/infra"

	"github.com/rs/zerolog/log"
)

const (
	// MaxAttempts is how often a document write is tried before it is
	// moved to the dead letters.
	MaxAttempts = 3

	defaultQueueSize = 64
)

// Job is one generated document waiting to be written to disk.
type Job struct {
	Name     string
	Data     []byte
	Attempts int
}

// Archiver copies generated PDFs into the storage directory in the
// background. Requests never wait for the disk.
type Archiver struct {
	dir     string
	jobs    chan Job
	save    func(dir, name string, data []byte) (string, error)
	backoff func(attempt int) time.Duration

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
	dead   []DeadLetter
}

func NewArchiver(dir string, queueSize int) *Archiver {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Archiver{
		dir:     dir,
		jobs:    make(chan Job, queueSize),
		save:    infra.SavePDF,
		backoff: retryBackoff,
	}
}

// Start launches numWorkers goroutines draining the queue. They exit when
// ctx is cancelled or Close has drained the queue.
func (a *Archiver) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		a.wg.Add(1)
		go a.run(ctx, i)
	}
	log.Info().Int("workers", numWorkers).Str("dir", a.dir).Msg("pdf archive pool started")
}

// Archive queues a copy of data under name. A full queue drops the copy.
func (a *Archiver) Archive(name string, data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	select {
	case a.jobs <- Job{Name: name, Data: data}:
	default:
		log.Warn().Str("file", name).Msg("pdf archive queue full, copy dropped")
	}
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (a *Archiver) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.jobs)
	}
	a.mu.Unlock()
	a.wg.Wait()
}

func (a *Archiver) run(ctx context.Context, id int) {
	defer a.wg.Done()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("pdf archive worker shutting down")
			return
		case job, ok := <-a.jobs:
			if !ok {
				return
			}
			a.process(ctx, job)
		}
	}
}

func (a *Archiver) process(ctx context.Context, job Job) {
	for {
		job.Attempts++
		path, err := a.save(a.dir, job.Name, job.Data)
		if err == nil {
			log.Debug().Str("path", path).Int("attempts", job.Attempts).Msg("pdf archived")
			return
		}
		if job.Attempts >= MaxAttempts {
			a.bury(job, err)
			return
		}
		log.Warn().Err(err).Str("file", job.Name).Int("attempt", job.Attempts).Msg("pdf archive failed, retrying")

		select {
		case <-ctx.Done():
			a.bury(job, ctx.Err())
			return
		case <-time.After(a.backoff(job.Attempts)):
		}
	}
}

// retryBackoff: 1s, 2s, 4s...
func retryBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}
