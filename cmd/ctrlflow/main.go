// Package main is the command-line entry point for ctrlflow: it loads a
// JSON method-body snapshot, runs the goto-removal and dead-code-sweeping
// core over it, and writes the result back out, either once or continuously
// in watch mode.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/strobel-go/ctrlflow/internal/ast"
	"github.com/strobel-go/ctrlflow/internal/cli"
	"github.com/strobel-go/ctrlflow/internal/snapshot"
	"github.com/strobel-go/ctrlflow/internal/snapshotfs"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	var err error

	switch sub {
	case "help", "-h", "--help":
		usage()
	case "version", "-v", "--version":
		jsonOutput := hasFlag(args, "--json", "-j")
		cli.PrintVersion("ctrlflow", jsonOutput)
	case "run":
		err = runOnce(args)
	case "watch":
		err = runWatch(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", sub)
		usage()
		os.Exit(2)
	}

	if err != nil {
		cli.ExitWithError("%v", err)
	}
}

func usage() {
	cli.PrintUsage("ctrlflow", []cli.CommandInfo{
		{Name: "run", Description: "Rewrite one snapshot's gotos and sweep dead code"},
		{Name: "watch", Description: "Watch a directory of snapshots and rewrite each as it changes"},
		{Name: "version", Description: "Show version information"},
	})
}

func hasFlag(args []string, names ...string) bool {
	for _, a := range args {
		for _, n := range names {
			if a == n {
				return true
			}
		}
	}

	return false
}

func runOnce(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	in := fs.String("in", "", "input snapshot path (defaults to the first positional argument)")
	out := fs.String("out", "", "output snapshot path (defaults to overwriting --in)")
	verbose := fs.Bool("verbose", false, "log each rewrite stage")

	if err := fs.Parse(args); err != nil {
		return err
	}

	inPath := *in
	if inPath == "" {
		if rest := fs.Args(); len(rest) > 0 {
			inPath = rest[0]
		}
	}

	if inPath == "" {
		return errors.New("usage: ctrlflow run [--out path] <snapshot.json>")
	}

	outPath := *out
	if outPath == "" {
		outPath = inPath
	}

	logger := cli.NewLogger(*verbose, false)
	fsys := snapshotfs.NewOS()

	return rewriteSnapshot(fsys, inPath, outPath, logger)
}

func rewriteSnapshot(fsys snapshotfs.FileSystem, inPath, outPath string, logger *cli.Logger) error {
	r, err := fsys.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}

	root, err := snapshot.Load(r)
	closeErr := r.Close()

	if err != nil {
		return fmt.Errorf("load %s: %w", inPath, err)
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", inPath, closeErr)
	}

	logger.Debug("loaded %s", inPath)

	if err := ast.RemoveGotos(root); err != nil {
		return fmt.Errorf("rewrite %s: %w", inPath, err)
	}

	logger.Info("rewrote %s -> %s", inPath, outPath)

	w, err := fsys.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}

	if err := snapshot.Save(w, root); err != nil {
		_ = w.Close()

		return fmt.Errorf("save %s: %w", outPath, err)
	}

	return w.Close()
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	dir := fs.String("dir", ".", "directory of snapshot files to watch")
	suffix := fs.String("suffix", ".json", "only rewrite files with this suffix")
	verbose := fs.Bool("verbose", false, "log each rewrite")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := cli.NewLogger(*verbose, false)
	fsys := snapshotfs.NewOS()

	watcher, err := snapshotfs.NewFSWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(*dir); err != nil {
		return fmt.Errorf("watch %s: %w", *dir, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case ev, ok := <-watcher.Events():
				if !ok {
					return nil
				}

				if ev.Op&(snapshotfs.OpCreate|snapshotfs.OpWrite) == 0 {
					continue
				}

				if !strings.HasSuffix(ev.Path, *suffix) {
					continue
				}

				path := filepath.Clean(ev.Path)
				if err := rewriteSnapshot(fsys, path, path, logger); err != nil {
					logger.Error("%v", err)
				}
			}
		}
	})

	group.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case err, ok := <-watcher.Errors():
				if !ok {
					return nil
				}

				logger.Error("watch: %v", err)
			}
		}
	})

	logger.Info("watching %s for *%s", *dir, *suffix)

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
