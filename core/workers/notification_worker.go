// ABOUTME: Notification worker delivers platform notifications off the save path
// ABOUTME: Provides a managed worker pool so a slow notifier never delays a save result

package workers

import (
	"context"
	"sync"
	"time"

	"postsheet-api/core/domain"
	coreerrors "postsheet-api/core/errors"
	"postsheet-api/core/interfaces"
)

// NotificationJob is one queued notification
type NotificationJob struct {
	Notification domain.Notification

	// Done receives the delivery error, if set
	Done chan<- error
}

// NotificationWorker manages background notification delivery
type NotificationWorker struct {
	notifier    interfaces.Notifier
	logger      interfaces.Logger
	jobQueue    chan *NotificationJob
	queueSize   int
	maxWorkers  int
	sendTimeout time.Duration
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.Mutex
	running     bool
}

// WorkerConfig holds configuration for the notification worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int

	// SendTimeout bounds a single delivery
	SendTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers:  2,
		QueueSize:   64,
		SendTimeout: 10 * time.Second,
	}
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(notifier interfaces.Notifier, logger interfaces.Logger, config WorkerConfig) *NotificationWorker {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.SendTimeout <= 0 {
		config.SendTimeout = defaults.SendTimeout
	}

	return &NotificationWorker{
		notifier:    notifier,
		logger:      logger,
		queueSize:   config.QueueSize,
		maxWorkers:  config.MaxWorkers,
		sendTimeout: config.SendTimeout,
	}
}

// Start starts the worker pool; a stopped pool restarts with a fresh queue
func (nw *NotificationWorker) Start() error {
	nw.mu.Lock()
	defer nw.mu.Unlock()

	if nw.running {
		return nil
	}

	nw.jobQueue = make(chan *NotificationJob, nw.queueSize)
	nw.ctx, nw.cancel = context.WithCancel(context.Background())

	for i := 0; i < nw.maxWorkers; i++ {
		nw.wg.Add(1)
		go nw.run(nw.ctx, nw.jobQueue, i)
	}

	nw.running = true
	return nil
}

// Stop drains queued jobs and waits for the workers to exit
func (nw *NotificationWorker) Stop() error {
	nw.mu.Lock()
	defer nw.mu.Unlock()

	if !nw.running {
		return nil
	}

	close(nw.jobQueue)
	nw.wg.Wait()
	nw.cancel()

	nw.running = false
	return nil
}

// Submit queues a job without blocking; a full queue drops it
func (nw *NotificationWorker) Submit(job *NotificationJob) error {
	nw.mu.Lock()
	defer nw.mu.Unlock()

	if !nw.running {
		return ErrWorkerNotRunning
	}

	select {
	case nw.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Enqueue submits a notification and reports whether it was queued
func (nw *NotificationWorker) Enqueue(n domain.Notification) error {
	return nw.Submit(&NotificationJob{Notification: n})
}

func (nw *NotificationWorker) run(ctx context.Context, queue <-chan *NotificationJob, id int) {
	defer nw.wg.Done()

	for job := range queue {
		nw.process(ctx, id, job)
	}
}

func (nw *NotificationWorker) process(parent context.Context, id int, job *NotificationJob) {
	ctx, cancel := context.WithTimeout(parent, nw.sendTimeout)
	defer cancel()

	err := nw.notifier.Notify(ctx, job.Notification)
	if err != nil && nw.logger != nil {
		fields := map[string]interface{}{
			"worker":          id,
			"notification_id": job.Notification.ID,
			"error":           err.Error(),
		}
		if coreerrors.IsExternalAPI(err) {
			nw.logger.Warn("Notification rejected by notify service", fields)
		} else {
			nw.logger.Warn("Notification delivery failed", fields)
		}
	}

	if job.Done != nil {
		select {
		case job.Done <- err:
		default:
		}
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
