package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-drift/observe/cmd/observe/internal/config"
	"github.com/go-drift/observe/pkg/collection"
	observeerrors "github.com/go-drift/observe/pkg/errors"
	observetest "github.com/go-drift/observe/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay a mutation script and print its notifications",
		Long: `Replay a mutation script against a collection of strings.

The script seeds a collection and lists mutations (append, insert, remove,
set, move, clear). Each mutation is applied to the collection, and every
notification delivered to a read-only view of it is printed as a journal.

Script format (YAML):

  name: todo
  seed: [write, test]
  steps:
    - op: append
      value: ship
    - op: move
      index: 2
      to: 0

Flags:
  --format json|yaml   Journal encoding (default from observe.yaml, else json)`,
		Usage: "observe replay <script.yaml> [--format json|yaml]",
		Run:   runReplay,
	})
}

func runReplay(env *Env, args []string) error {
	var scriptPath, format string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--format":
			if i+1 >= len(args) {
				return fmt.Errorf("--format requires json or yaml")
			}
			format = args[i+1]
			i++
		case strings.HasPrefix(arg, "--format="):
			format = strings.TrimPrefix(arg, "--format=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag: %s", arg)
		case scriptPath == "":
			scriptPath = arg
		default:
			return fmt.Errorf("unexpected argument: %s", arg)
		}
	}
	if scriptPath == "" {
		return fmt.Errorf("replay requires a script path")
	}

	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root, env.ConfigPath)
	if err != nil {
		return observeerrors.Config("cmd.replay", err)
	}
	if format == "" {
		format = cfg.OutputFormat
	}

	logger := cfg.NewLogger(env.Stderr)
	observeerrors.SetHandler(&observeerrors.LogHandler{Logger: logger})

	script, err := config.LoadScript(scriptPath)
	if err != nil {
		cerr := observeerrors.Config("cmd.replay", err)
		observeerrors.Report(cerr)
		return cerr
	}

	journal, err := replay(script, logger)
	if err != nil {
		return err
	}
	if journal.Name == "" {
		journal.Name = cfg.ProjectName
	}
	return journal.Encode(env.Stdout, format)
}

// replay applies script to a fresh collection and returns the journal of
// notifications observed through a read-only view.
func replay(script *config.Script, logger *slog.Logger) (_ *observetest.Journal, err error) {
	defer observeerrors.RecoverAsError("cmd.replay", &err)

	f := collection.NewFactory[string](collection.WithLogger(logger))

	list, err := f.From(append([]string{}, script.Seed...))
	if err != nil {
		return nil, err
	}
	view, err := f.ReadOnly(list)
	if err != nil {
		return nil, err
	}
	rec, err := observetest.NewRecorder(view)
	if err != nil {
		return nil, err
	}
	defer rec.Close()

	logger.Info("replay started",
		slog.String("script", script.Name),
		slog.String("collection", list.ID().String()),
		slog.Int("seed", list.Len()),
		slog.Int("steps", len(script.Steps)),
	)

	for i, step := range script.Steps {
		if err := apply(list, step); err != nil {
			var oe *observeerrors.ObserveError
			if errors.As(err, &oe) {
				observeerrors.Report(oe)
			}
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
	}

	var final []string
	for _, v := range view.All() {
		final = append(final, v)
	}
	logger.Info("replay finished",
		slog.String("script", script.Name),
		slog.Int("entries", len(rec.Entries())),
		slog.Any("items", final),
	)

	journal := rec.Journal()
	journal.Name = script.Name
	return journal, nil
}

func apply(list collection.Observable[string], step config.Step) error {
	switch step.Op {
	case config.OpAppend:
		return list.Append(step.Value)
	case config.OpInsert:
		return list.Insert(step.Index, step.Value)
	case config.OpRemove:
		_, err := list.RemoveAt(step.Index)
		return err
	case config.OpSet:
		_, err := list.Set(step.Index, step.Value)
		return err
	case config.OpMove:
		return list.Move(step.Index, step.To)
	case config.OpClear:
		return list.Clear()
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}
