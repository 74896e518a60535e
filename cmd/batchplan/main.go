package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"batchplan/internal/cadence"
	"batchplan/internal/catalog"
	"batchplan/internal/history"
	"batchplan/internal/render/svg"
	"batchplan/internal/schedule"
	"batchplan/internal/watch"
	logx "batchplan/pkg/logx"
)

func main() {
	var (
		cfgPath = flag.String("config", "./plan.yaml", "path to plan file (yaml or json)")
		cycles  = flag.Int("cycles", 0, "number of cycles to schedule (takes precedence over -days/-lines)")
		days    = flag.Int("days", 0, "scheduling window in days, used with -lines to derive a cycle count")
		lines   = flag.Int("lines", 0, "number of parallel lines sharing the window")
		out     = flag.String("out", "./schedule.svg", "output SVG path")
		title   = flag.String("title", "", "chart title (default derived from cycle count)")

		watchMode = flag.Bool("watch", false, "keep running: rebuild and re-render on plan file changes")
		refresh   = flag.String("refresh", "", "optional periodic re-render spec in watch mode (cron or @every)")

		histDriver = flag.String("history-driver", "none", "run history backend: none, file, or sqlite")
		histPath   = flag.String("history-path", "./batchplan-history.jsonl", "run history file/database path")
		runs       = flag.Int("runs", 0, "print the N most recent history runs and exit")

		logLevel = flag.String("log-level", "info", "log level: trace, debug, info, warn, error")
	)
	flag.Parse()

	log := logx.NewConsole(*logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := history.Open(history.Config{Driver: *histDriver, Path: *histPath}, log)
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	if *runs > 0 {
		if err := printRuns(ctx, store, *runs); err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		return
	}

	mgr := catalog.NewManager(*cfgPath)
	mgr.SetLogger(log)

	if *watchMode {
		svc := watch.New(watch.Config{
			Out:     *out,
			Title:   *title,
			Cycles:  *cycles,
			Window:  cadence.Window{Days: *days, Lines: *lines},
			Refresh: *refresh,
		}, mgr, store, log)

		if err := svc.Start(ctx); err != nil {
			fmt.Println("fatal start:", err)
			os.Exit(1)
		}
		<-ctx.Done()
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		svc.Stop(stopCtx)
		stopCancel()
		return
	}

	if err := buildOnce(ctx, mgr, store, *cycles, *days, *lines, *out, *title, log); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
}

func buildOnce(ctx context.Context, mgr *catalog.Manager, store history.Store, cycles, days, lines int, out, title string, log logx.Logger) error {
	started := time.Now()

	plan, err := mgr.Load()
	if err != nil {
		return err
	}

	if cycles == 0 {
		if days == 0 && lines == 0 {
			return fmt.Errorf("cycle count required: pass -cycles, or -days and -lines to derive one")
		}
		cycles, err = cadence.Cycles(cadence.Window{Days: days, Lines: lines}, plan)
		if err != nil {
			return err
		}
		log.Info("derived cycle count",
			logx.Int("days", days),
			logx.Int("lines", lines),
			logx.Duration("shortest_step", cadence.ShortestStep(plan)),
			logx.Int("cycles", cycles),
		)
	}

	intervals, err := schedule.Build(plan, cycles)
	if err != nil {
		return err
	}

	if title == "" {
		title = fmt.Sprintf("Schedule for %d Cycles", cycles)
	}
	doc := svg.Render(plan, intervals, title, svg.DefaultTheme())
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		return err
	}

	makespan := schedule.Makespan(intervals)
	log.Info("schedule rendered",
		logx.Int("cycles", cycles),
		logx.Int("intervals", len(intervals)),
		logx.Duration("makespan", makespan),
		logx.String("out", out),
	)

	if store != nil {
		e := history.RunEntry{
			At:        started,
			Source:    mgr.Path(),
			PlanHash:  plan.Hash(),
			Steps:     len(plan.Steps),
			Resources: len(plan.Resources),
			Cycles:    cycles,
			Intervals: len(intervals),
			Makespan:  makespan,
			TookMS:    time.Since(started).Milliseconds(),
		}
		if err := store.AppendRun(ctx, e); err != nil {
			log.Warn("history append failed", logx.Err(err))
		}
	}
	return nil
}

func printRuns(ctx context.Context, store history.Store, n int) error {
	if store == nil {
		return fmt.Errorf("history disabled: pass -history-driver file or sqlite")
	}
	entries, err := store.RecentRuns(ctx, n)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-30s cycles=%-4d intervals=%-5d makespan=%-10s took=%dms\n",
			e.At.Format(time.RFC3339), e.Source, e.Cycles, e.Intervals, e.Makespan, e.TookMS)
	}
	return nil
}
