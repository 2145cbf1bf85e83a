// Package scheduler owns the authoritative simulation clock. It executes
// events in time order and publishes the time of the round being executed
// through CurrentTime, which any goroutine may call.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hostsim/hostsim/sim/simtime"
)

// Event is a unit of work for one host at one instant.
type Event interface {
	Time() simtime.EmulatedTime
	Host() int
	Execute(s *Scheduler) error
}

// Config controls a Scheduler.
type Config struct {
	// StopTime is exclusive: events at or after it are not executed.
	StopTime simtime.EmulatedTime
	// Parallelism bounds how many hosts run concurrently within a round.
	// Values below 1 mean 1.
	Parallelism int
}

// Stats summarizes a run.
type Stats struct {
	Rounds   uint64
	Executed uint64
	Pending  int
}

// Scheduler runs events in rounds. A round is every event sharing the
// earliest pending time. Events of different hosts in a round may run
// concurrently; events of one host run in schedule order.
type Scheduler struct {
	config Config

	mu     sync.Mutex
	events *EventHeap
	seqs   map[int]uint64

	now      atomic.Uint64
	rounds   atomic.Uint64
	executed atomic.Uint64
}

func New(config Config) *Scheduler {
	if config.Parallelism < 1 {
		config.Parallelism = 1
	}
	s := &Scheduler{
		config: config,
		events: NewEventHeap(),
		seqs:   make(map[int]uint64),
	}
	s.now.Store(simtime.EmulatedInvalid)
	return s
}

// CurrentTime returns the time of the round being executed. It reports false
// outside Run.
func (s *Scheduler) CurrentTime() (simtime.EmulatedTime, bool) {
	return simtime.EmulatedFromRaw(s.now.Load())
}

// Schedule queues e. Events may not be scheduled before the current time.
func (s *Scheduler) Schedule(e Event) error {
	if now, ok := s.CurrentTime(); ok && e.Time().Before(now) {
		return fmt.Errorf("scheduler: host %d event at %v is before current time %v", e.Host(), e.Time(), now)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.seqs[e.Host()]
	s.seqs[e.Host()] = seq + 1
	s.events.schedule(queued{event: e, time: e.Time(), host: e.Host(), seq: seq})
	return nil
}

// Run executes rounds until the queue drains, StopTime is reached, an event
// fails, or ctx is cancelled between rounds.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.now.Store(simtime.EmulatedInvalid)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		round := s.popRound()
		if len(round) == 0 {
			logrus.Debugf("scheduler: no events before %v, stopping", s.config.StopTime)
			return nil
		}

		s.now.Store(round[0].time.Raw())
		s.rounds.Add(1)
		logrus.Tracef("scheduler: round at %v with %d events", round[0].time, len(round))

		// A failing host cancels roundCtx; batches not yet started skip.
		g, roundCtx := errgroup.WithContext(ctx)
		g.SetLimit(s.config.Parallelism)
		for _, batch := range byHost(round) {
			batch := batch
			g.Go(func() error {
				for _, q := range batch {
					if err := roundCtx.Err(); err != nil {
						return err
					}
					if err := q.event.Execute(s); err != nil {
						return fmt.Errorf("host %d at %v: %w", q.host, q.time, err)
					}
					s.executed.Add(1)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
}

// Stats reports progress so far.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	pending := s.events.Len()
	s.mu.Unlock()
	return Stats{
		Rounds:   s.rounds.Load(),
		Executed: s.executed.Load(),
		Pending:  pending,
	}
}

// popRound removes every event at the earliest pending time, provided that
// time is before StopTime.
func (s *Scheduler) popRound() []queued {
	s.mu.Lock()
	defer s.mu.Unlock()

	first, ok := s.events.peek()
	if !ok || !first.time.Before(s.config.StopTime) {
		return nil
	}
	var round []queued
	for {
		next, ok := s.events.peek()
		if !ok || next.time != first.time {
			return round
		}
		q, _ := s.events.popNext()
		round = append(round, q)
	}
}

// byHost splits a round, already in heap order, into per-host batches.
func byHost(round []queued) [][]queued {
	var batches [][]queued
	for i, q := range round {
		if i == 0 || q.host != round[i-1].host {
			batches = append(batches, nil)
		}
		batches[len(batches)-1] = append(batches[len(batches)-1], q)
	}
	return batches
}
