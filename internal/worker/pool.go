package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEtiquetas = "jobs:etiquetas_qr"
	QueueEmail     = "jobs:email"

	JobEtiquetaQR = "etiqueta_qr"
	JobEmail      = "email"

	// DefaultMaxAttempts is how many times a job runs before it goes to the DLQ.
	DefaultMaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload. A non-nil error schedules a retry.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEtiquetaQR schedules rendering of a batch's traceability label.
func (d *Dispatcher) EnqueueEtiquetaQR(ctx context.Context, p EtiquetaJobPayload) error {
	return d.enqueue(ctx, QueueEtiquetas, JobEtiquetaQR, p)
}

// EnqueueEmail schedules an outgoing e-mail.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, p EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, p)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", jobType, err)
	}
	return push(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes every registered queue with a fixed number of goroutines.
type Pool struct {
	rdb          *redis.Client
	handlers     map[string]Handler
	queues       map[string]string // job type → queue
	maxAttempts  int
	blockTimeout time.Duration
	wg           sync.WaitGroup
}

func NewPool(rdb *redis.Client) *Pool {
	return &Pool{
		rdb:          rdb,
		handlers:     make(map[string]Handler),
		queues:       make(map[string]string),
		maxAttempts:  DefaultMaxAttempts,
		blockTimeout: 5 * time.Second,
	}
}

// Register routes jobType, read from queue, to h. Call before Start.
func (p *Pool) Register(queue, jobType string, h Handler) {
	p.handlers[jobType] = h
	p.queues[jobType] = queue
}

func (p *Pool) queueList() []string {
	seen := make(map[string]bool)
	var qs []string
	for _, q := range p.queues {
		if !seen[q] {
			seen[q] = true
			qs = append(qs, q)
		}
	}
	return qs
}

// Start launches numWorkers goroutines. Each blocks on BRPOP, so idle
// workers cost nothing. They exit when ctx is cancelled; Wait blocks until then.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	queues := p.queueList()
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i, queues)
	}
	log.Info().Strs("queues", queues).Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int, queues []string) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
		}

		// Blocking pop: waits up to blockTimeout then loops to check ctx.
		result, err := p.rdb.BRPop(ctx, p.blockTimeout, queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("brpop failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.process(ctx, result[0], result[1])
	}
}

// process runs one raw job. Failures are re-enqueued until maxAttempts,
// then moved to the dead letter queue.
func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		SendToDLQ(ctx, p.rdb, queue, "", rawPayload(raw), "invalid job envelope: "+err.Error(), 0)
		return
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, "no handler registered", job.Attempts)
		return
	}

	job.Attempts++
	logger := log.With().Str("queue", queue).Str("type", job.Type).Int("attempt", job.Attempts).Logger()
	logger.Info().Msg("processing job")

	err := h.Process(ctx, job.Payload)
	if err == nil {
		return
	}

	if job.Attempts >= p.maxAttempts {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	logger.Warn().Err(err).Msg("job failed, re-enqueueing")
	if perr := push(ctx, p.rdb, queue, job); perr != nil {
		logger.Error().Err(perr).Msg("re-enqueue failed")
	}
}

// rawPayload keeps an unparseable job readable inside the DLQ entry.
func rawPayload(raw string) json.RawMessage {
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw)
	}
	quoted, _ := json.Marshal(raw)
	return quoted
}
