package cmd

import (
	"bufio"
	"context"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ftahirops/connstat/engine"
	"github.com/ftahirops/connstat/ui"
)

// watchConfig drives the poll loop.
type watchConfig struct {
	Interval   time.Duration // 0 runs a single iteration
	Count      int           // 0 repeats until interrupted
	Timestamp  string
	TimeLayout string
	Renderer   ui.Renderer
}

// after is the inter-iteration wait; tests replace it.
var after = time.After

// runWatch prints one block per iteration and flushes it. The first
// iteration always runs; the wait between iterations ends early, and
// cleanly, when ctx is cancelled.
func runWatch(ctx context.Context, ticker engine.Ticker, out io.Writer, cfg watchConfig) error {
	w := bufio.NewWriter(out)
	remaining := cfg.Count
	iteration := 0

	for {
		iteration++
		res, err := ticker.Tick()
		if err != nil {
			return err
		}

		if _, err := w.WriteString(ui.TimestampLine(res.Timestamp, cfg.Timestamp, cfg.TimeLayout, cfg.Renderer.Parsable)); err != nil {
			return err
		}
		if _, err := w.WriteString(cfg.Renderer.Render(res.Rows)); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if cfg.Interval <= 0 {
			return nil
		}
		if cfg.Count > 0 {
			remaining--
			if remaining == 0 {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			log.WithField("iterations", iteration).Debug("interrupted, stopping")
			return nil
		case <-after(cfg.Interval):
		}
	}
}
