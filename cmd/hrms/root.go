package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/hrms-lite/modules"
	"github.com/iota-uz/hrms-lite/pkg/apiclient"
	"github.com/iota-uz/hrms-lite/pkg/application"
	"github.com/iota-uz/hrms-lite/pkg/composables"
	"github.com/iota-uz/hrms-lite/pkg/configuration"
	"github.com/iota-uz/hrms-lite/pkg/eventbus"
	"github.com/iota-uz/hrms-lite/pkg/intl"
	"github.com/iota-uz/hrms-lite/pkg/logging"
	"github.com/iota-uz/hrms-lite/pkg/metrics"
	"github.com/iota-uz/hrms-lite/pkg/notifications"
)

// cli is the state shared by every command of one invocation.
type cli struct {
	output   string
	baseURL  string
	logLevel string
	noColor  bool

	loadConfig func() (*configuration.Configuration, error)
	now        func() time.Time

	conf    *configuration.Configuration
	app     application.Application
	printer *printer
	cleanup []func()
}

type cliOption func(*cli)

func newRootCmd(opts ...cliOption) *cobra.Command {
	c := &cli{
		loadConfig: func() (*configuration.Configuration, error) { return configuration.Use(), nil },
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	cmd := &cobra.Command{
		Use:           "hrms",
		Short:         "HRMS Lite client: employees, attendance and dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.teardown(cmd.Context())
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.output, "output", "o", "table", "Output format: table, json or yaml")
	flags.StringVar(&c.baseURL, "base-url", "", "API base URL (overrides HRMS_API_BASE_URL)")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: silent, error, warn, info or debug (overrides LOG_LEVEL)")
	flags.BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		newDashboardCmd(c),
		newEmployeesCmd(c),
		newAttendanceCmd(c),
		newDevCmd(c),
	)
	return cmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	p, err := newPrinter(c.output, cmd.OutOrStdout())
	if err != nil {
		return withCode(exitUsage, err)
	}
	c.printer = p
	if c.noColor {
		color.NoColor = true
	}

	conf, err := c.loadConfig()
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		conf.SetLogLevel(c.logLevel)
	}
	if c.baseURL != "" {
		conf.API.BaseURL = strings.TrimRight(c.baseURL, "/")
	}
	c.conf = conf
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		c.cleanup = append(c.cleanup, logging.SetupTracing(cmd.Context(), logger, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL))
	}

	client := apiclient.New(apiclient.Options{
		BaseURL:         conf.API.BaseURL,
		Timeout:         conf.API.Timeout,
		RequestIDHeader: conf.API.RequestIDHeader,
		Logger:          logger,
	})
	bus := eventbus.NewEventPublisher(logger)
	c.app = application.New(&application.ApplicationOptions{
		EventBus: bus,
		Logger:   logger,
	})
	if err := modules.Load(c.app, modules.BuiltInModules(client)...); err != nil {
		return err
	}
	bus.Subscribe(func(n *notifications.Notification) {
		renderNotification(cmd.ErrOrStderr(), n)
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	ctx = composables.WithRequestID(ctx, runID)
	ctx = composables.WithLogger(ctx, logger.WithFields(logrus.Fields{"cmd": cmd.CommandPath(), "run_id": runID}))
	ctx = intl.WithLocalizer(ctx, c.app.Localizer())
	cmd.SetContext(ctx)
	return nil
}

func (c *cli) teardown(ctx context.Context) error {
	defer func() {
		for i := len(c.cleanup) - 1; i >= 0; i-- {
			c.cleanup[i]()
		}
	}()
	if c.conf == nil || !c.conf.Prometheus.Enabled {
		return nil
	}
	if err := metrics.Push(ctx, metrics.PushOptions{Addr: c.conf.Prometheus.PushAddr, Job: c.conf.Prometheus.Job}); err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("metrics push failed")
	}
	return nil
}

// renderNotification prints success and info messages. Errors are reported
// once, by the exit path.
func renderNotification(w io.Writer, n *notifications.Notification) {
	switch n.Level {
	case notifications.LevelSuccess:
		fmt.Fprintln(w, color.GreenString("✓ %s", n.Message))
	case notifications.LevelInfo:
		fmt.Fprintln(w, color.CyanString("• %s", n.Message))
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(newRootCmd(), os.Args[1:], os.Stderr)
}

func run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(stderr, color.RedString("Error: %s", describe(err)))
	return exitCode(err)
}

func (c *cli) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// exactArgs is cobra.ExactArgs with the usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withCode(exitUsage, cobra.ExactArgs(n)(cmd, args))
	}
}
