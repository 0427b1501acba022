// csvsplit splits a CSV file into fixed size row chunks on disk
//
//	csvsplit --in data.csv --chunk-size 500 --archive --out ./parts
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"csvsplit/internal/core/splitter"
	"csvsplit/internal/core/version"
	perr "csvsplit/internal/platform/errors"
	"csvsplit/internal/platform/logger"

	"github.com/spf13/pflag"
)

// exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	// logs go to stderr so stdout stays a clean list of written files
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	lo.Service = "csvsplit"
	if os.Getenv("LOG_LEVEL") == "" {
		lo.Level = "warn"
	}
	logger.Init(lo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliFlags struct {
	in           string
	prefix       string
	chunkSize    int
	archive      bool
	out          string
	stage        string
	tempDir      string
	count        string
	archiveMTime string
	showVersion  bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var f cliFlags
	fs := pflag.NewFlagSet("csvsplit", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&f.in, "in", "i", "", `input CSV file, "-" reads stdin`)
	fs.StringVarP(&f.prefix, "prefix", "p", "chunked_data", "output file name prefix")
	fs.IntVarP(&f.chunkSize, "chunk-size", "n", 200, "rows per chunk")
	fs.BoolVarP(&f.archive, "archive", "a", false, "write one zip instead of separate chunk files")
	fs.StringVarP(&f.out, "out", "o", ".", "output directory")
	fs.StringVar(&f.stage, "stage", "memory", "staging: memory or disk")
	fs.StringVar(&f.tempDir, "temp-dir", "", "parent dir for disk staging (default os temp)")
	fs.StringVar(&f.count, "count", "legacy", "chunk count policy: legacy or ceil")
	fs.StringVar(&f.archiveMTime, "archive-mtime", "", "RFC3339 timestamp stamped on archive entries")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage:\n  csvsplit --in FILE [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if f.showVersion {
		bi := version.Info("csvsplit")
		_, _ = fmt.Fprintf(stdout, "%s %s (%s, %s)\n", bi.Service, bi.Version, bi.Commit, bi.Date)
		return exitOK
	}
	if rest := fs.Args(); len(rest) > 0 {
		_, _ = fmt.Fprintf(stderr, "error: unexpected argument: %s\n", rest[0])
		return exitUsage
	}

	opt, err := f.options()
	if err != nil {
		return report(stderr, err)
	}

	var src io.Reader = stdin
	if f.in != "-" {
		fh, err := os.Open(f.in)
		if err != nil {
			return report(stderr, perr.Wrapf(err, perr.ErrorCodeIO, "open %s", f.in))
		}
		defer func() { _ = fh.Close() }()
		src = fh
	}

	log := logger.Named("cli")
	start := time.Now()
	res, err := splitter.Split(ctx, src, f.prefix, f.chunkSize, opt)
	if err != nil {
		return report(stderr, err)
	}

	paths, err := splitter.WriteAll(f.out, res.Artifacts)
	if err != nil {
		return report(stderr, err)
	}
	for _, p := range paths {
		_, _ = fmt.Fprintln(stdout, p)
	}
	log.Debug().
		Int("rows", res.Rows).
		Int("chunks", res.Chunks).
		Bool("archive", f.archive).
		Str("stager", opt.Stager.Name()).
		Dur("elapsed", time.Since(start)).
		Msg("split written")
	return exitOK
}

// options validates the flag values that do not depend on the input
func (f cliFlags) options() (splitter.Options, error) {
	if strings.TrimSpace(f.in) == "" {
		return splitter.Options{}, perr.WithField(perr.InvalidArgf("--in is required"), "in")
	}
	st, err := splitter.ParseStager(f.stage, f.tempDir)
	if err != nil {
		return splitter.Options{}, perr.WithField(err, "stage")
	}
	cp, err := splitter.ParseCountPolicy(f.count)
	if err != nil {
		return splitter.Options{}, perr.WithField(err, "count")
	}
	opt := splitter.Options{Archive: f.archive, Count: cp, Stager: st}
	if f.archiveMTime != "" {
		mt, err := time.Parse(time.RFC3339, f.archiveMTime)
		if err != nil {
			return splitter.Options{}, perr.WithField(perr.InvalidArgf("--archive-mtime must be RFC3339: %v", err), "archive-mtime")
		}
		opt.ModTime = mt
	}
	return opt, nil
}

// report prints err and maps it to an exit code
func report(w io.Writer, err error) int {
	_, _ = fmt.Fprintf(w, "error: %v\n", err)
	if perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		return exitUsage
	}
	return exitFailure
}
