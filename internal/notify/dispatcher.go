package notify

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/utils"
)

// DispatcherConfig sizes the worker pool.
type DispatcherConfig struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

// Dispatcher queues messages for background delivery. Send never blocks:
// when the queue is full the message is dropped and the drop is logged.
type Dispatcher struct {
	mailer  Mailer
	queue   chan Message
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	abort   atomic.Bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// NewDispatcher starts the workers.
func NewDispatcher(mailer Mailer, cfg DispatcherConfig) *Dispatcher {
	if cfg.Workers < 1 {
		cfg.Workers = constants.DefaultMailWorkers
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = constants.DefaultMailQueueSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = constants.DefaultMailSendTimeout
	}

	d := &Dispatcher{
		mailer:  mailer,
		queue:   make(chan Message, cfg.QueueSize),
		timeout: cfg.SendTimeout,
	}

	d.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go d.worker()
	}

	log.Info().
		Str("transport", mailer.Name()).
		Int("workers", cfg.Workers).
		Int("queue_size", cfg.QueueSize).
		Msg("Mail dispatcher started")

	return d
}

// Send queues an email and returns immediately.
func (d *Dispatcher) Send(subject string, recipients []string, htmlBody, replyTo string) {
	d.Dispatch(Message{
		Subject: subject,
		To:      recipients,
		HTML:    htmlBody,
		ReplyTo: replyTo,
	})
}

// Dispatch queues msg and reports whether it was accepted.
func (d *Dispatcher) Dispatch(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(msg, "dispatcher stopped")
		return false
	}

	select {
	case d.queue <- msg.clone():
		return true
	default:
		d.drop(msg, "queue full")
		return false
	}
}

// Dropped returns how many messages were never handed to the transport.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *Dispatcher) drop(msg Message, reason string) {
	d.dropped.Add(1)
	log.Warn().
		Str("subject", msg.Subject).
		Int("recipients", len(msg.To)).
		Str("reason", reason).
		Msg("Email dropped")
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for msg := range d.queue {
		if d.abort.Load() {
			d.drop(msg, "shutdown deadline exceeded")
			continue
		}
		d.deliver(msg)
	}
}

// deliver sends one message. A panicking transport is contained so the
// worker keeps serving the queue.
func (d *Dispatcher) deliver(msg Message) {
	start := time.Now()
	var err error

	defer func() {
		if r := recover(); r != nil {
			utils.LogPanic(r, debug.Stack())
			err = fmt.Errorf("transport panic: %v", r)
		}
		utils.LogMail(msg.Subject, msg.To, d.mailer.Name(), time.Since(start), err)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err = d.mailer.Send(ctx, msg)
}

// Shutdown stops intake and waits for queued messages to be delivered.
// When ctx ends first, whatever is still queued is dropped and ctx's error
// is returned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Mail dispatcher drained")
		return nil
	case <-ctx.Done():
		d.abort.Store(true)
		log.Warn().Int("pending", len(d.queue)).Msg("Mail dispatcher shutdown deadline reached, dropping pending emails")
		return ctx.Err()
	}
}
