package cmd

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ftahirops/connstat/collector"
	"github.com/ftahirops/connstat/config"
	"github.com/ftahirops/connstat/engine"
	"github.com/ftahirops/connstat/ui"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

// liveInterval is the --live refresh period when -i is not given.
const liveInterval = time.Second

const longHelp = `connstat reports per-connection TCP statistics exported by the tcpstat
kernel module. The column set is discovered from the source header at
startup, so fields the running kernel does not emit are simply unavailable.

Fields (-o):
  laddr lport raddr rport state inbytes insegs outbytes outsegs
  retransbytes retranssegs suna unsent swnd cwnd rwnd mss rtt rxqueue`

const examples = `  connstat                          Default fields, one snapshot
  connstat -e -L                    Established, non-loopback connections
  connstat -o all -i 5              All supported fields every 5 seconds
  connstat -F rport=443 -T d -i 1 -c 10
  connstat -P -o laddr,lport,rtt -i 1 -T u
  connstat --live -o laddr,raddr,cwnd,rtt
  connstat --list-fields`

// Run parses the process arguments and runs the command.
func Run() error {
	return Execute(os.Args[1:], os.Stdout, os.Stderr)
}

// Execute runs the command with explicit arguments and streams.
func Execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(viper.New())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:           "connstat [flags]",
		Short:         "Report TCP connection statistics",
		Long:          longHelp,
		Example:       examples,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.markChanged(cmd.Flags())
			return run(cmd, v, &opts)
		},
	}

	flags := root.Flags()
	flags.SortFlags = false

	flags.IntVarP(&opts.Count, "count", "c", 0, "Number of reports to print (requires -i)")
	flags.BoolVarP(&opts.Established, "established", "e", false, "Only connections in ESTABLISHED state")
	flags.StringVarP(&opts.Filter, "filter", "F", "", "Only rows matching field=value[,field=value...]")
	flags.IntVarP(&opts.Interval, "interval", "i", 0, "Seconds between reports")
	flags.BoolVarP(&opts.NoLoopback, "no-loopback", "L", false, "Exclude connections with a 127.x local address")
	flags.StringVarP(&opts.Output, "output", "o", "", "Fields to print: all or field[,field...]")
	flags.BoolVarP(&opts.Parsable, "parsable", "P", false, "Comma-delimited output without header (requires -o)")
	flags.StringVarP(&opts.Timestamp, "timestamp", "T", "", "Print a timestamp before each report: u (unix) or d (date)")

	flags.BoolVar(&opts.Live, "live", false, "Full-screen view refreshed every interval")
	flags.BoolVar(&opts.ListFields, "list-fields", false, "List known fields and whether the source emits them")
	flags.String("source", collector.DefaultPath, "Path of the connection table")
	flags.String("color", ui.ColorAuto, "Style the header: auto, always or never")
	flags.StringVar(&opts.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/connstat/config.yaml)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log diagnostics to stderr")

	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	_ = v.BindPFlag(config.KeySource, flags.Lookup("source"))
	_ = v.BindPFlag(config.KeyColor, flags.Lookup("color"))

	return root
}

func run(cmd *cobra.Command, v *viper.Viper, opts *Options) error {
	stdout := cmd.OutOrStdout()

	p, err := opts.validate()
	if err != nil {
		return err
	}

	cfg, err := config.Load(v, opts.ConfigPath)
	if err != nil {
		return engine.NewConfigError("--config", err)
	}
	setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, opts.Verbose)

	src := collector.NewFileSource(cfg.Source)

	if opts.ListFields {
		return listFields(stdout, src)
	}

	eng, err := engine.NewEngine(src, p.engine)
	if err != nil {
		return err
	}

	if p.live {
		interval := p.interval
		if interval == 0 {
			interval = liveInterval
		}
		return ui.RunLive(eng, src.Name(), interval)
	}

	color := false
	if !p.parsable {
		if cfg.Color == ui.ColorAlways {
			ui.ForceColor()
		}
		f, _ := stdout.(*os.File)
		color = ui.ColorEnabled(cfg.Color, f)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runWatch(ctx, eng, stdout, watchConfig{
		Interval:   p.interval,
		Count:      p.count,
		Timestamp:  p.timestamp,
		TimeLayout: cfg.TimestampFormat,
		Renderer: ui.Renderer{
			Fields:   eng.Output(),
			Parsable: p.parsable,
			Color:    color,
		},
	})
}

// setupLogging sends logrus output to w. -v forces debug.
func setupLogging(w io.Writer, level string, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	log.SetLevel(lvl)
}

func listFields(w io.Writer, src collector.Source) error {
	snap, err := src.Read()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, ui.RenderFieldList(engine.Discover(snap.Header)))
	return err
}
