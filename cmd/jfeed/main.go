// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jfeed reads JSON text from files or standard input, feeds it to an
// incremental parser in fixed-size chunks, and prints the parser events.
//
// Usage:
//
//	jfeed [flags] [file ...]
//
// With no file arguments, or with "-", jfeed reads standard input.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/creachadair/jfeed"
	"github.com/creachadair/jfeed/ast"
	"github.com/creachadair/jfeed/ast/cursor"
)

const defaultChunkSize = 4096

func main() {
	var (
		chunkSize  = flag.Int("chunk", defaultChunkSize, "Size in bytes of the chunks fed to the parser")
		maxDepth   = flag.Int("max-depth", 0, "Maximum nesting depth of objects and arrays (0 means no limit)")
		quiet      = flag.Bool("quiet", false, "Do not print parser events")
		selectPath = flag.String("select", "", "Dotted path to report from each top-level value (e.g., items.0.name)")
		logLevel   = flag.String("log.level", "info", "Only log messages with the given severity or above (debug, info, warn, error)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file ...]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *chunkSize <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -chunk must be positive\n")
		flag.Usage()
		os.Exit(1)
	}
	allow, err := levelOption(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, allow)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	out := bufio.NewWriter(os.Stdout)
	r := &runner{
		chunk:    *chunkSize,
		maxDepth: *maxDepth,
		quiet:    *quiet,
		path:     cursor.ParsePath(*selectPath),
		out:      out,
		logger:   logger,
	}

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	var failed int
	for _, name := range files {
		sum, err := r.parseFile(name)
		if err != nil {
			level.Error(logger).Log("msg", "Parse failed", "file", name, "values", sum.values, "err", err)
			failed++
			continue
		}
		level.Info(logger).Log("msg", "Parsed input", "file", name, "bytes", sum.bytes,
			"chunks", sum.chunks, "values", sum.values, "duration", sum.elapsed)
	}
	if err := out.Flush(); err != nil {
		level.Error(logger).Log("msg", "Writing output failed", "err", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func levelOption(s string) (level.Option, error) {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, fmt.Errorf("invalid log level %q", s)
}

type runner struct {
	chunk    int
	maxDepth int
	quiet    bool
	path     []any
	out      io.Writer
	logger   log.Logger
}

type summary struct {
	bytes   int64
	chunks  int
	values  int
	elapsed time.Duration
}

// parseFile parses the contents of the named file, or standard input if name
// is "-".
func (r *runner) parseFile(name string) (summary, error) {
	if name == "-" {
		return r.parse(name, os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return summary{}, errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()
	return r.parse(name, f)
}

// parse feeds the contents of in to a new parser in chunks of r.chunk bytes
// and reports the values it completes.
func (r *runner) parse(name string, in io.Reader) (summary, error) {
	p := ast.NewParser()
	p.SetMaxDepth(r.maxDepth)
	if !r.quiet {
		p.Handle(&eventPrinter{w: r.out})
	}

	var sum summary
	start := time.Now()
	buf := make([]byte, r.chunk)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			level.Debug(r.logger).Log("msg", "Feeding chunk", "file", name, "offset", sum.bytes, "size", n)
			sum.bytes += int64(n)
			sum.chunks++
			if ferr := p.Feed(buf[:n]); ferr != nil {
				return sum, errors.Wrapf(ferr, "parse %s", name)
			}
			r.report(name, p.Values(), &sum)
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return sum, errors.Wrapf(err, "read %s", name)
		}
	}
	if err := p.Finalize(); err != nil {
		return sum, errors.Wrapf(err, "parse %s", name)
	}
	r.report(name, p.Values(), &sum)
	sum.elapsed = time.Since(start)
	return sum, nil
}

// report records completed values, and prints the selected part of each if a
// path was given.
func (r *runner) report(name string, vs []ast.Value, sum *summary) {
	for _, v := range vs {
		sum.values++
		if r.path == nil {
			continue
		}
		c := cursor.New(v).Down(r.path...)
		if err := c.Err(); err != nil {
			level.Warn(r.logger).Log("msg", "Path not found", "file", name, "value", sum.values, "err", err)
			continue
		}
		fmt.Fprintf(r.out, "select %d: %s\n", sum.values, describe(c.Value()))
	}
}

// describe renders a short summary of v.
func describe(v ast.Value) string {
	switch t := v.(type) {
	case ast.Array:
		return fmt.Sprintf("array len=%d", len(t))
	case ast.Object:
		return fmt.Sprintf("object keys=[%s]", strings.Join(t.Keys(), " "))
	case ast.String:
		return fmt.Sprintf("string %q", string(t))
	}
	if v == ast.Null {
		return "null"
	}
	return fmt.Sprintf("%v %v", v.Type(), v)
}

// eventPrinter is a jfeed.Handler that prints one line per parser event,
// indented by nesting depth.
type eventPrinter struct {
	w     io.Writer
	depth int
}

func (e *eventPrinter) pr(tok jfeed.Token, event string, args ...any) error {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", e.depth))
	sb.WriteString(event)
	for _, arg := range args {
		fmt.Fprintf(&sb, " %v", arg)
	}
	_, err := fmt.Fprintf(e.w, "%s @%v\n", sb.String(), tok.Pos)
	return err
}

func (e *eventPrinter) BeginObject(tok jfeed.Token) error {
	err := e.pr(tok, "object-open")
	e.depth++
	return err
}

func (e *eventPrinter) ObjectKey(tok jfeed.Token) error {
	return e.pr(tok, "object-key", fmt.Sprintf("%q", tok.Value))
}

func (e *eventPrinter) EndObject(tok jfeed.Token) error {
	e.depth--
	return e.pr(tok, "object-close")
}

func (e *eventPrinter) BeginArray(tok jfeed.Token) error {
	err := e.pr(tok, "array-open")
	e.depth++
	return err
}

func (e *eventPrinter) EndArray(tok jfeed.Token) error {
	e.depth--
	return e.pr(tok, "array-close")
}

func (e *eventPrinter) Value(tok jfeed.Token) error { return e.pr(tok, "value", tok) }

// SyntaxError satisfies jfeed.ErrorHandler. The parser has been reset, so the
// indentation starts over.
func (e *eventPrinter) SyntaxError(error) { e.depth = 0 }
