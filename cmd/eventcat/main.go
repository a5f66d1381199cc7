// eventcat converts a stream of events between wire formats.
//
// Events are read from stdin and written to stdout:
//
//	eventcat --from plain --to json < events.txt
//	eventcat --from json --to msgpack+zstd --stamp < events.jsonl > events.bin
//
// The plain and json formats are self-delimiting. Every other codec is
// written and read as length-prefixed frames.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	event "github.com/rbaliyan/switchevent"
	"github.com/rbaliyan/switchevent/config"
	"github.com/rbaliyan/switchevent/pool"
	"github.com/rbaliyan/switchevent/transport/codec"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type reader interface {
	Read() (*event.Event, error)
}

type writer interface {
	Write(*event.Event) error
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		configPath string
		from       string
		to         string
		stamp      bool
	)

	flagSet := pflag.NewFlagSet("eventcat", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flagSet.StringVarP(&from, "from", "f", "plain", "input format: plain, json or a framed codec name")
	flagSet.StringVarP(&to, "to", "t", "", "output codec (default from config)")
	flagSet.Bool("escape", true, "percent-encode plain header values (default from config)")
	flagSet.Bool("unique-headers", false, "replace headers instead of duplicating them (default from config)")
	flagSet.BoolVar(&stamp, "stamp", false, "add delivery headers (Core-UUID, Event-Date-*, Event-Sequence) to each event")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("escape") {
		cfg.Escape, _ = flagSet.GetBool("escape")
	}
	if flagSet.Changed("unique-headers") {
		cfg.UniqueHeaders, _ = flagSet.GetBool("unique-headers")
	}
	if to == "" {
		to = cfg.Codec
	}

	logger := cfg.Log.Logger(stderr)
	codec.SetLogger(logger)

	var opts []event.Option
	if cfg.UniqueHeaders {
		opts = append(opts, event.WithUniqueHeaders())
	}
	if cfg.Pool.Enabled {
		opts = append(opts, event.WithPools(pool.NewPools(cfg.Pool.Headers, cfg.Pool.Events,
			pool.WithName("eventcat"), pool.WithLogger(logger))))
	}

	in, err := newReader(bufio.NewReader(stdin), from, cfg.Escape, opts)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(stdout)
	out, err := newWriter(bw, to, cfg.Escape)
	if err != nil {
		return err
	}

	var core *event.Core
	if stamp {
		core = event.NewCore()
	}

	n, err := copyEvents(out, in, core)
	logger.Debug("converted events", "from", from, "to", to, "count", n)
	if flushErr := bw.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return fmt.Errorf("event %d: %w", n+1, err)
	}
	return nil
}

func copyEvents(out writer, in reader, core *event.Core) (int, error) {
	n := 0
	for {
		ev, err := in.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if core != nil {
			core.Prepare(ev)
		}
		err = out.Write(ev)
		ev.Destroy()
		if err != nil {
			return n, err
		}
		n++
	}
}

func newReader(r *bufio.Reader, format string, unescape bool, opts []event.Option) (reader, error) {
	switch format {
	case "plain":
		return codec.NewPlainReader(r, unescape, opts...), nil
	case "json":
		return codec.NewJSONReader(r, opts...), nil
	}
	c, err := codec.Lookup(format)
	if err != nil {
		return nil, err
	}
	return codec.NewFrameReader(r, c, opts...), nil
}

func newWriter(w io.Writer, name string, escape bool) (writer, error) {
	switch name {
	case "plain":
		return codec.NewPlainWriter(w, escape), nil
	case "json":
		return &lineWriter{w: w, codec: codec.JSON{}}, nil
	}
	c, err := codec.Lookup(name)
	if err != nil {
		return nil, err
	}
	return codec.NewFrameWriter(w, c), nil
}

// lineWriter writes one encoded event per line.
type lineWriter struct {
	w     io.Writer
	codec codec.Codec
}

func (l *lineWriter) Write(ev *event.Event) error {
	data, err := l.codec.Encode(ev)
	if err != nil {
		return err
	}
	_, err = l.w.Write(append(data, '\n'))
	return err
}
