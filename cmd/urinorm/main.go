// Command urinorm prints the canonical form of HTTP URIs.
//
// URIs are taken from the arguments or, when there are none, from stdin one per line.
// With --env the URI of the current CGI request is built from the process environment.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"braces.dev/errtrace"
	"github.com/urfave/cli/v3"

	"github.com/ghettovoice/httpuri/internal/errorutil"
	"github.com/ghettovoice/httpuri/log"
	"github.com/ghettovoice/httpuri/uri"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newCommand(nil).Run(ctx, os.Args); err != nil {
		log.Def.Error("urinorm failed", "error", err)
		stop()
		os.Exit(1)
	}
}

type output struct {
	URI       string `json:"uri"`
	Scheme    string `json:"scheme,omitempty"`
	Authority string `json:"authority,omitempty"`
	Host      string `json:"host,omitempty"`
	Port      uint16 `json:"port,omitempty"`
	Path      string `json:"path,omitempty"`
	Query     string `json:"query,omitempty"`
	Fragment  string `json:"fragment,omitempty"`
	Valid     bool   `json:"valid"`
}

func newOutput(u *uri.URI) output {
	port, _ := u.Port()
	return output{
		URI:       u.String(),
		Scheme:    u.Scheme(),
		Authority: u.Authority(),
		Host:      u.Host(),
		Port:      port,
		Path:      u.Path(),
		Query:     u.Query(),
		Fragment:  u.Fragment(),
		Valid:     u.IsValid(),
	}
}

// newCommand builds the root command.
// If logger is nil, the logger is selected by the --dev flag.
func newCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "urinorm",
		Usage:     "print the canonical form of HTTP URIs",
		ArgsUsage: "[URI...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "env",
				Usage: "build the URI from the CGI environment variables",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print every URI as a JSON object with its components",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "enable verbose developer logging",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if logger == nil {
				logger = log.Def
				if cmd.Bool("dev") {
					logger = log.Dev
				}
			}
			r := &runner{
				out:   cmd.Root().Writer,
				json:  cmd.Bool("json"),
				cache: uri.NewCache(&uri.CacheOptions{Logger: logger}),
				log:   logger,
			}

			if cmd.Bool("env") {
				u, err := uri.FromEnvironment(uri.OSEnv{}, &uri.EnvOptions{Logger: logger})
				if err != nil {
					return errtrace.Wrap(err)
				}
				return errtrace.Wrap(r.print(u))
			}

			if args := cmd.Args().Slice(); len(args) > 0 {
				return errtrace.Wrap(r.normalizeAll(ctx, args))
			}
			return errtrace.Wrap(r.normalizeLines(ctx, cmd.Root().Reader))
		},
	}
}

type runner struct {
	out   io.Writer
	json  bool
	cache *uri.Cache
	log   *slog.Logger
}

func (r *runner) normalizeAll(ctx context.Context, inputs []string) error {
	var errs []error
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return errtrace.Wrap(err)
		}
		if err := r.normalize(in); err != nil {
			errs = append(errs, err)
		}
	}
	return errtrace.Wrap(errorutil.JoinPrefix("failed to normalize URIs:", errs...))
}

func (r *runner) normalizeLines(ctx context.Context, in io.Reader) error {
	var errs []error
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return errtrace.Wrap(err)
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := r.normalize(line); err != nil {
			errs = append(errs, err)
		}
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("read input: %w", err))
	}
	return errtrace.Wrap(errorutil.JoinPrefix("failed to normalize URIs:", errs...))
}

func (r *runner) normalize(in string) error {
	u, err := r.cache.Parse(in)
	if err != nil {
		r.log.Error("failed to parse URI", "input", in, "malformed", errorutil.IsGrammarErr(err), "error", err)
		return errtrace.Wrap(fmt.Errorf("%q: %w", in, err))
	}
	r.log.Debug("URI normalized", "input", in, "components", log.FmtValue(newOutput(u), false))
	return errtrace.Wrap(r.print(u))
}

func (r *runner) print(u *uri.URI) error {
	if r.json {
		return errtrace.Wrap(json.NewEncoder(r.out).Encode(newOutput(u)))
	}
	_, err := fmt.Fprintln(r.out, u)
	return errtrace.Wrap(err)
}
