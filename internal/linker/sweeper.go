package linker

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Sweeper runs the dangling-reference sweep on a cron schedule.
type Sweeper struct {
	linker   *Linker
	schedule string
	cron     *cron.Cron
}

// NewSweeper creates a sweeper with a cron schedule like "0 * * * *".
func NewSweeper(l *Linker, schedule string) *Sweeper {
	return &Sweeper{
		linker:   l,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.runOnce)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Link sweeper scheduled: %s", s.schedule)
	return nil
}

// Stop stops the scheduler, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) runOnce() {
	removed, err := s.linker.SweepDanglingRefs()
	if err != nil {
		log.Printf("Link sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Link sweep removed %d dangling references", removed)
	}
}
