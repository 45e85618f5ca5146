package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roverscript/roverscript/internal/config"
	"github.com/roverscript/roverscript/internal/pipeline"
	"github.com/roverscript/roverscript/internal/rlog"
	"github.com/roverscript/roverscript/internal/watch"
	"github.com/roverscript/roverscript/internal/world"
)

var (
	configPath string

	roverName     string
	mapPath       string
	commandFile   string
	logLevel      string
	watchDebounce time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured rovers until interrupted",
	Long: `Start one goroutine per configured rover. Each rover loads its map,
spawns at a random open tile, and watches its command file for a
RoverScript program to run whenever one is written.

Rovers can be configured via --config (a YAML file listing one or more
rovers), or as a single ad-hoc rover via --name/--map/--command-file.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML file listing rovers to run")
	runCmd.Flags().StringVar(&roverName, "name", "", "ad-hoc rover name (used when --config is omitted)")
	runCmd.Flags().StringVar(&mapPath, "map", "", "ad-hoc rover map file")
	runCmd.Flags().StringVar(&commandFile, "command-file", "", "ad-hoc rover command file")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "ad-hoc rover log level")
	runCmd.Flags().DurationVar(&watchDebounce, "watch-debounce", 250*time.Millisecond, "ad-hoc rover command-file debounce")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, r := range cfg.Rovers {
		wg.Add(1)
		go func(r config.Rover) {
			defer wg.Done()
			runRover(ctx, r)
		}(r)
	}
	wg.Wait()
	return nil
}

// resolveConfig builds a Config either from --config's YAML (the ad-hoc
// flags are then ignored) or, when absent, from the ad-hoc single-rover
// flags directly.
func resolveConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath, nil)
	}
	if roverName == "" || mapPath == "" || commandFile == "" {
		return nil, fmt.Errorf("either --config or --name/--map/--command-file is required")
	}
	return &config.Config{Rovers: []config.Rover{{
		Name:          roverName,
		MapPath:       mapPath,
		CommandFile:   commandFile,
		LogLevel:      logLevel,
		WatchDebounce: watchDebounce,
	}}}, nil
}

func runRover(ctx context.Context, r config.Rover) {
	log := rlog.New(r.Name, rlog.ParseLevel(r.LogLevel), os.Stdout)

	w, err := world.New(r.Name, r.MapPath, log)
	if err != nil {
		log.WithError(err).Error("failed to start rover")
		return
	}

	watcher, err := watch.New(r.CommandFile, r.WatchDebounce, log)
	if err != nil {
		log.WithError(err).Error("failed to watch command file")
		return
	}
	defer watcher.Close()

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go watcher.Run(watchCtx)

	out := log.Writer()
	defer out.Close()

	log.Info("rover ready, waiting for commands")
	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return

		case src, ok := <-watcher.Commands():
			if !ok {
				return
			}
			log.Info("received a command")
			if err := pipeline.Run(src, w, out); err != nil {
				logCommandError(log, err)
			} else {
				log.Info("finished running command")
			}

		case err, ok := <-watcher.Errs():
			if !ok {
				return
			}
			log.WithError(err).Warn("watch error")
		}
	}
}

type formatter interface{ Format() string }

// logCommandError reports a failed command, expanding a *pipeline.CompileError
// into one caret diagnostic per underlying error.
func logCommandError(log *logrus.Entry, err error) {
	compileErr, ok := err.(*pipeline.CompileError)
	if !ok {
		log.WithError(err).Warn("command failed")
		return
	}
	for _, e := range compileErr.Errors {
		if f, ok := e.(formatter); ok {
			log.Warn(f.Format())
		} else {
			log.Warn(e.Error())
		}
	}
}
