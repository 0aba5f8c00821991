package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/Domenick1991/lastchanceair/internal/kafka"
)

const deliveryTimeout = 15 * time.Second

// Deliverer hands an event to its next hop: a Kafka topic or the email handler.
type Deliverer interface {
	Deliver(ctx context.Context, event kafka.NotificationEvent) error
}

// Dispatcher is a bounded fire-and-forget queue. Enqueueing never blocks: when
// the queue is full the event is dropped and logged.
type Dispatcher struct {
	deliverer Deliverer
	queue     chan kafka.NotificationEvent
	workers   int
	now       func() time.Time

	startOnce sync.Once
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	wg        sync.WaitGroup
}

func NewDispatcher(deliverer Deliverer, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		deliverer: deliverer,
		queue:     make(chan kafka.NotificationEvent, queueSize),
		workers:   workers,
		now:       time.Now,
	}
}

// Start launches the worker pool. Workers exit once Close has drained the queue.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		for i := 0; i < d.workers; i++ {
			d.wg.Add(1)
			go d.run()
		}
	})
}

// Close stops accepting events and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	d.wg.Wait()
}

func (d *Dispatcher) BookingConfirmed(booking domain.Booking, flight *domain.Flight) {
	d.enqueue(kafka.NotificationEvent{
		Type:      kafka.EventBookingConfirmed,
		To:        booking.PassengerEmail,
		Booking:   &booking,
		Flight:    flight,
		CreatedAt: d.now(),
	})
}

func (d *Dispatcher) PasswordReset(to, link string) {
	d.enqueue(kafka.NotificationEvent{
		Type:      kafka.EventPasswordReset,
		To:        to,
		ResetLink: link,
		CreatedAt: d.now(),
	})
}

func (d *Dispatcher) enqueue(event kafka.NotificationEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Printf("dispatcher closed, dropping %s notification to %s", event.Type, event.To)
		return
	}
	select {
	case d.queue <- event:
	default:
		log.Printf("notification queue full, dropping %s notification to %s", event.Type, event.To)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event kafka.NotificationEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notification delivery panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := d.deliverer.Deliver(ctx, event); err != nil {
		log.Printf("deliver %s notification to %s: %v", event.Type, event.To, err)
	}
}
