package cmd

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/ftahirops/connstat/engine"
	"github.com/ftahirops/connstat/ui"
)

// Options holds the raw command-line values.
type Options struct {
	Count       int
	Established bool
	Filter      string
	Interval    int
	NoLoopback  bool
	Output      string
	Parsable    bool
	Timestamp   string

	Live       bool
	ListFields bool
	Verbose    bool
	ConfigPath string

	countSet    bool
	intervalSet bool
	outputSet   bool
}

// plan is the validated form of Options.
type plan struct {
	engine    engine.Config
	interval  time.Duration
	count     int
	parsable  bool
	timestamp string
	live      bool
}

// markChanged records which flags were given explicitly.
func (o *Options) markChanged(flags *pflag.FlagSet) {
	o.countSet = flags.Changed("count")
	o.intervalSet = flags.Changed("interval")
	o.outputSet = flags.Changed("output")
}

// validate checks flag values and combinations. It needs no data source,
// so every error it returns happens before any output.
func (o *Options) validate() (plan, error) {
	var p plan

	if o.intervalSet && o.Interval <= 0 {
		return p, engine.Configf("-i", "interval must be a positive integer, got %d", o.Interval)
	}
	if o.countSet {
		if o.Count <= 0 {
			return p, engine.Configf("-c", "count must be a positive integer, got %d", o.Count)
		}
		if !o.intervalSet {
			return p, engine.Configf("-c", "count requires an interval (-i)")
		}
	}
	switch o.Timestamp {
	case ui.TimestampNone, ui.TimestampUnix, ui.TimestampDate:
	default:
		return p, engine.Configf("-T", "timestamp format must be u or d, got %q", o.Timestamp)
	}
	req, err := engine.ParseOutputRequest(o.Output)
	if err != nil {
		return p, err
	}
	if o.outputSet && req.Mode == engine.OutputDefault {
		return p, engine.Configf("-o", "requires \"all\" or a field list")
	}
	if o.Parsable {
		if !o.outputSet {
			return p, engine.Configf("-P", "parsable output requires -o")
		}
		if req.Mode == engine.OutputAll {
			return p, engine.Configf("-P", "parsable output cannot be combined with -o all")
		}
	}
	if o.Live {
		switch {
		case o.Parsable:
			return p, engine.Configf("--live", "cannot be combined with -P")
		case o.countSet:
			return p, engine.Configf("--live", "cannot be combined with -c")
		case o.Timestamp != ui.TimestampNone:
			return p, engine.Configf("--live", "cannot be combined with -T")
		}
	}

	terms, err := engine.ParseFilterTerms(o.Filter)
	if err != nil {
		return p, err
	}

	p.engine = engine.Config{
		Output:     req,
		Filters:    engine.NewFilterSpec(o.Established, terms),
		NoLoopback: o.NoLoopback,
	}
	if o.intervalSet {
		p.interval = time.Duration(o.Interval) * time.Second
	}
	if o.countSet {
		p.count = o.Count
	}
	p.parsable = o.Parsable
	p.timestamp = o.Timestamp
	p.live = o.Live
	return p, nil
}
