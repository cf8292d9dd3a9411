package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ferdiebergado/pneumodetect/internal/config"
)

// Dispatcher delivers messages through a Mailer on a fixed pool of workers.
// Enqueue never blocks: when the queue is full the message is dropped and logged.
// Delivery failures are logged and not retried.
type Dispatcher struct {
	mailer Mailer
	jobs   chan Message
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

var _ Queue = (*Dispatcher)(nil)

func NewDispatcher(mailer Mailer, cfg config.Email) *Dispatcher {
	workers := max(cfg.Workers, 1)

	d := &Dispatcher{
		mailer: mailer,
		jobs:   make(chan Message, max(cfg.QueueSize, 1)),
	}

	d.wg.Add(workers)
	for i := range workers {
		go d.work(i)
	}

	return d
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()

	for msg := range d.jobs {
		if err := d.mailer.SendHTML(msg.To, msg.Subject, msg.Template, msg.Data); err != nil {
			slog.Error("failed to send email", "worker", id, "subject", msg.Subject, "reason", err)
		}
	}
}

// Enqueue reports whether msg was accepted for delivery.
func (d *Dispatcher) Enqueue(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		slog.Warn("email dispatcher is closed, message dropped", "subject", msg.Subject)
		return false
	}

	select {
	case d.jobs <- msg:
		return true
	default:
		slog.Warn("email queue is full, message dropped", "subject", msg.Subject)
		return false
	}
}

// Close stops accepting messages and waits for queued ones to be sent.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain email queue: %w", ctx.Err())
	}
}
