package pipeline

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// progress counts classified edges and logs at a fixed interval.
type progress struct {
	logger   zerolog.Logger
	total    int64
	enabled  bool
	interval time.Duration
	done     atomic.Int64
}

func newProgress(logger zerolog.Logger, total int64, enabled bool, intervalMS int) *progress {
	return &progress{
		logger:   logger,
		total:    total,
		enabled:  enabled && intervalMS > 0,
		interval: time.Duration(intervalMS) * time.Millisecond,
	}
}

func (p *progress) add() { p.done.Add(1) }

// start begins periodic logging and returns a function that stops it.
func (p *progress) start() func() {
	if !p.enabled {
		return func() {}
	}

	ticker := time.NewTicker(p.interval)
	stop := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for {
			select {
			case <-ticker.C:
				done := p.done.Load()
				percent := 0.0
				if p.total > 0 {
					percent = 100 * float64(done) / float64(p.total)
				}
				p.logger.Info().
					Int64("classified", done).
					Int64("total", p.total).
					Float64("percent", percent).
					Msg("Classification progress")
			case <-stop:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stop)
		<-finished
	}
}
