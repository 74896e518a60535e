// Package watch keeps a rendered schedule in sync with its plan file. It
// rebuilds and re-renders on every published plan change, with an optional
// periodic refresh for unattended setups.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"batchplan/internal/cadence"
	"batchplan/internal/catalog"
	"batchplan/internal/history"
	"batchplan/internal/render/svg"
	"batchplan/internal/schedule"
	logx "batchplan/pkg/logx"
)

type Config struct {
	Out   string // SVG output path
	Title string

	// Cycles pins the cycle count. If 0, Window derives it per plan (the
	// shortest step can change between edits, so it is re-derived on every
	// rebuild).
	Cycles int
	Window cadence.Window

	// Refresh optionally re-renders on a schedule ("@every 1h" or a cron
	// expression), useful when the output lands somewhere that expects
	// periodic freshness even without plan edits.
	Refresh string

	// MinInterval floors the time between rebuilds so editor save storms
	// do not thrash the output file. Defaults to 2s.
	MinInterval time.Duration
}

type Service struct {
	cfg   Config
	log   logx.Logger
	mgr   *catalog.Manager
	store history.Store
	theme svg.Theme

	parser  cron.Parser
	limiter *rate.Limiter

	mu     sync.Mutex
	c      *cron.Cron
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config, mgr *catalog.Manager, store history.Store, log logx.Logger) *Service {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 2 * time.Second
	}
	return &Service{
		cfg:     cfg,
		log:     log,
		mgr:     mgr,
		store:   store,
		theme:   svg.DefaultTheme(),
		parser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
	}
}

func (s *Service) SetTheme(th svg.Theme) { s.theme = th }

// Start performs an initial build, then follows plan-file changes until Stop
// or context cancellation. It returns an error only for startup problems
// (bad refresh spec, initial build failure).
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return errors.New("watch already started")
	}

	var sched cron.Schedule
	if s.cfg.Refresh != "" {
		var err error
		sched, err = s.parser.Parse(s.cfg.Refresh)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("invalid refresh spec %q: %w", s.cfg.Refresh, err)
		}
	}

	run, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	plan := s.mgr.Get()
	if plan == nil {
		var err error
		plan, err = s.mgr.Load()
		if err != nil {
			return err
		}
	}
	if err := s.rebuild(run, plan); err != nil {
		return err
	}

	sub := s.mgr.Subscribe(1)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.mgr.Watch(run)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.mgr.Unsubscribe(sub)
		for {
			select {
			case <-run.Done():
				return
			case p, ok := <-sub:
				if !ok {
					return
				}
				if err := s.limiter.Wait(run); err != nil {
					return
				}
				if err := s.rebuild(run, p); err != nil {
					s.log.Error("rebuild failed", logx.Err(err))
				}
			}
		}
	}()

	if sched != nil {
		s.mu.Lock()
		s.c = cron.New(cron.WithParser(s.parser))
		s.c.Schedule(sched, cron.FuncJob(func() {
			p := s.mgr.Get()
			if p == nil {
				return
			}
			if err := s.rebuild(run, p); err != nil {
				s.log.Error("refresh rebuild failed", logx.Err(err))
			}
		}))
		s.c.Start()
		s.mu.Unlock()
		s.log.Info("periodic refresh enabled", logx.String("spec", s.cfg.Refresh))
	}

	s.log.Info("watching plan",
		logx.String("path", s.mgr.Path()),
		logx.String("out", s.cfg.Out),
	)
	return nil
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	c := s.c
	s.c = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	s.log.Info("watch stopped")
}

// cyclesFor resolves the cycle count for one rebuild.
func (s *Service) cyclesFor(plan *catalog.Plan) (int, error) {
	if s.cfg.Cycles > 0 {
		return s.cfg.Cycles, nil
	}
	return cadence.Cycles(s.cfg.Window, plan)
}

func (s *Service) rebuild(ctx context.Context, plan *catalog.Plan) error {
	started := time.Now()

	cycles, err := s.cyclesFor(plan)
	if err != nil {
		return err
	}

	intervals, err := schedule.Build(plan, cycles)
	if err != nil {
		return err
	}

	out := svg.Render(plan, intervals, s.cfg.Title, s.theme)
	if err := writeFileAtomic(s.cfg.Out, out); err != nil {
		return err
	}

	makespan := schedule.Makespan(intervals)
	s.log.Info("schedule rendered",
		logx.Int("cycles", cycles),
		logx.Int("intervals", len(intervals)),
		logx.Duration("makespan", makespan),
		logx.String("out", s.cfg.Out),
	)

	if s.store != nil {
		e := history.RunEntry{
			At:        started,
			Source:    s.mgr.Path(),
			PlanHash:  plan.Hash(),
			Steps:     len(plan.Steps),
			Resources: len(plan.Resources),
			Cycles:    cycles,
			Intervals: len(intervals),
			Makespan:  makespan,
			TookMS:    time.Since(started).Milliseconds(),
		}
		if err := s.store.AppendRun(ctx, e); err != nil {
			// History is best-effort; a dead store must not break rendering.
			s.log.Warn("history append failed", logx.Err(err))
		}
	}
	return nil
}

// writeFileAtomic writes via a temp file + rename so a reader of the output
// never observes a half-written chart.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
