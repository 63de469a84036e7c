package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"

	"github.com/zeusync/ecsquery/internal/config"
	"github.com/zeusync/ecsquery/internal/core/query"
	"github.com/zeusync/ecsquery/internal/injector"
	"github.com/zeusync/ecsquery/internal/server"
)

const usage = `usage:
  ecsquery serve [-config file] [-profile cpu|mem]
  ecsquery eval  [-config file] [-profile cpu|mem] -request file|-`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "eval":
		err = runEval(os.Args[2:], os.Stdin, os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "ecsquery:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 1 for rejected input and 3 for every other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, query.ErrInput):
		return 1
	default:
		return 3
	}
}

type commonFlags struct {
	configPath string
	profile    string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&c.profile, "profile", "", "write a cpu or mem profile to the working directory")
}

func (c *commonFlags) load() (config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(c.configPath)
}

func (c *commonFlags) startProfile() (interface{ Stop() }, error) {
	switch c.profile {
	case "":
		return noopProfile{}, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet), nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q", c.profile)
	}
}

type noopProfile struct{}

func (noopProfile) Stop() {}

func runServe(args []string) error {
	var flags commonFlags
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}
	prof, err := flags.startProfile()
	if err != nil {
		return err
	}
	defer prof.Stop()

	srv, cleanup, err := injector.InitializeServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = srv.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func runEval(args []string, stdin io.Reader, stdout io.Writer) error {
	var flags commonFlags
	var requestPath string
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	flags.register(fs)
	fs.StringVar(&requestPath, "request", "-", "JSON request file, or - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}
	prof, err := flags.startProfile()
	if err != nil {
		return err
	}
	defer prof.Stop()

	in := stdin
	if requestPath != "-" {
		f, err := os.Open(requestPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	req, err := server.ReadRequest(in)
	if err != nil {
		return err
	}

	srv, cleanup, err := injector.InitializeServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	resp, evalErr := srv.Evaluate(context.Background(), req)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err = enc.Encode(resp); err != nil {
		return err
	}
	return evalErr
}
