package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/metrics"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	sendTimeout    = 15 * time.Second
)

// Dispatcher routes lead notifications to a fixed set of workers using
// consistent hashing on the lead email, so retries and repeats for the
// same sender land on the same worker in order.
type Dispatcher struct {
	workers []chan ports.LeadNotification
	sender  ports.LeadSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.LeadSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.LeadNotification, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.LeadNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its email.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n ports.LeadNotification) {
	idx := d.shardIndex(n.Email)
	d.workers[idx] <- n
	metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.LeadNotification) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotifyQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))

			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err := d.sender.Send(sendCtx, n)
			cancel()
			if err != nil {
				metrics.NotifySendTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("client_id", n.ClientID).
					Int("worker_id", id).
					Msg("lead notification delivery failed")
				continue
			}
			metrics.NotifySendTotal.WithLabelValues("ok").Inc()
		}
	}
}
