// Package servecmder provides the serve command for running the API server.
package servecmder

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/engram/api"
	"github.com/papercomputeco/engram/api/mcp"
	"github.com/papercomputeco/engram/pkg/config"
	"github.com/papercomputeco/engram/pkg/eventstream"
	eskafka "github.com/papercomputeco/engram/pkg/eventstream/kafka"
	"github.com/papercomputeco/engram/pkg/eventstream/nop"
	"github.com/papercomputeco/engram/pkg/logger"
	"github.com/papercomputeco/engram/pkg/memory"
)

type ServeCommander struct {
	debug   bool
	logFile string

	listen              string
	eventstreamProvider string
	eventstreamBrokers  string
	eventstreamTopic    string

	viper  *viper.Viper
	logger *slog.Logger
}

const serveLongDesc string = `Run the Engram API server.

Serves the memory registry over HTTP and mounts an MCP (Model Context
Protocol) endpoint at /mcp, so both REST clients and MCP clients drive the
same registry.

Routes:
  GET  /ping
  GET  /clones
  GET  /clones/:number/check
  POST /clones/:number/learn
  POST /clones/:number/rollback
  POST /clones/:number/relearn
  POST /clones/:number/clone`

const serveShortDesc string = "Run the Engram API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagListen,
				config.FlagEventStreamProv,
				config.FlagEventStreamBrokers,
				config.FlagEventStreamTopic,
			})

			cmder.viper = v
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventStreamProv, &cmder.eventstreamProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventStreamBrokers, &cmder.eventstreamBrokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventStreamTopic, &cmder.eventstreamTopic)

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()

		c.logger = logger.Multi(
			c.logger,
			logger.New(
				logger.WithDebug(c.debug),
				logger.WithJSON(true),
				logger.WithWriter(f),
			),
		)
	}

	publisher, err := c.newPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	apiConfig := api.Config{
		ListenAddr: c.viper.GetString("api.listen"),
	}
	server := api.NewServer(apiConfig, memory.NewRegistry[int](), publisher, c.logger)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Registry: server.Registry(),
		Logger:   c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}
	server.MountMCP(mcpServer.Handler())

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down",
			slog.String("signal", sig.String()),
		)
		return server.Shutdown()
	}
}

// newPublisher builds an operation event publisher from the resolved config.
func (c *ServeCommander) newPublisher() (eventstream.Publisher, error) {
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

		c.logger.Info("publishing operation events to kafka",
			slog.String("topic", c.viper.GetString("eventstream.topic")),
		)
		return publisher, nil

	default:
		return nil, fmt.Errorf("unknown eventstream provider: %q (available: none, kafka)", provider)
	}
}
