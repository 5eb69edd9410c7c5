// Package runcmder provides the run command for executing memory command
// scripts.
package runcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/engram/pkg/cliui"
	"github.com/papercomputeco/engram/pkg/config"
	"github.com/papercomputeco/engram/pkg/eventstream"
	eskafka "github.com/papercomputeco/engram/pkg/eventstream/kafka"
	"github.com/papercomputeco/engram/pkg/eventstream/nop"
	"github.com/papercomputeco/engram/pkg/logger"
	"github.com/papercomputeco/engram/pkg/memory"
	"github.com/papercomputeco/engram/pkg/script"
)

type RunCommander struct {
	summary bool
	debug   bool

	eventstreamProvider string
	eventstreamBrokers  string
	eventstreamTopic    string

	viper  *viper.Viper
	logger *slog.Logger
}

const runLongDesc string = `Run a memory command script.

Reads commands (one per line) from the given file, or from stdin when no
file is provided, and applies them to a fresh memory registry starting with
a single empty clone. Check outputs are written to stdout, one per line.

The command language:
  learn <clone> <value>    Learn a fact into a clone
  rollback <clone>         Undo the most recently learned fact
  relearn <clone>          Redo the most recently rolled-back fact
  clone <clone>            Duplicate a clone (new clone gets the next number)
  check <clone>            Print the latest fact, or "basic" if none

Examples:
  engram run script.txt
  cat script.txt | engram run`

const runShortDesc string = "Run a memory command script"

func NewRunCmd() *cobra.Command {
	cmder := &RunCommander{}

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: runShortDesc,
		Long:  runLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagEventStreamProv,
				config.FlagEventStreamBrokers,
				config.FlagEventStreamTopic,
			})

			cmder.viper = v
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			file := ""
			if len(args) == 1 {
				file = args[0]
			}

			return cmder.run(file)
		},
	}

	cmd.Flags().BoolVar(&cmder.summary, "summary", false, "Print a run summary to stderr")

	config.AddStringFlag(cmd, config.Flags, config.FlagEventStreamProv, &cmder.eventstreamProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventStreamBrokers, &cmder.eventstreamBrokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventStreamTopic, &cmder.eventstreamTopic)

	return cmd
}

func (c *RunCommander) run(file string) error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	input := io.Reader(os.Stdin)
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		input = f
	}

	publisher, err := c.newPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	ctx := context.Background()
	outputs := 0

	runner := script.NewRunner(
		memory.NewRegistry[int](),
		os.Stdout,
		script.WithObserver(func(cmd script.Command, res script.Result) {
			if cmd.Verb == script.VerbCheck {
				outputs++
			}
			c.publish(ctx, publisher, cmd, res)
		}),
	)

	start := time.Now()
	if err := runner.Run(input); err != nil {
		return err
	}

	if c.summary {
		fmt.Fprintln(os.Stderr, cliui.Summary(runner.Applied(), outputs, time.Since(start)))
	}

	return nil
}

// newPublisher builds an operation event publisher from the resolved config.
func (c *RunCommander) newPublisher() (eventstream.Publisher, error) {
	provider := c.viper.GetString("eventstream.provider")

	switch provider {
	case "", "none":
		return nop.NewPublisher(), nil

	case "kafka":
		brokers := c.viper.GetStringSlice("eventstream.brokers")
		if len(brokers) == 1 {
			brokers = config.SplitBrokers(brokers[0])
		}

		publisher, err := eskafka.NewPublisher(eskafka.Config{
			Brokers: brokers,
			Topic:   c.viper.GetString("eventstream.topic"),
		})
		if err != nil {
			return nil, fmt.Errorf("creating kafka publisher: %w", err)
		}

		c.logger.Debug("publishing operation events to kafka",
			slog.String("topic", c.viper.GetString("eventstream.topic")),
		)
		return publisher, nil

	default:
		return nil, fmt.Errorf("unknown eventstream provider: %q (available: none, kafka)", provider)
	}
}

// publish emits one operation event; failures are logged and dropped so a
// flaky stream backend never breaks a script run.
func (c *RunCommander) publish(ctx context.Context, publisher eventstream.Publisher, cmd script.Command, res script.Result) {
	event := eventstream.NewOperationEvent(string(cmd.Verb), cmd.Clone)
	if cmd.HasValue {
		value := cmd.Value
		event.Value = &value
	}
	if res.NewClone != 0 {
		newClone := res.NewClone
		event.NewClone = &newClone
	}
	event.Output = res.Output

	if err := publisher.PublishOperation(ctx, event); err != nil {
		c.logger.Warn("failed to publish operation event",
			slog.String("op", event.Op),
			slog.Any("error", err),
		)
	}
}
