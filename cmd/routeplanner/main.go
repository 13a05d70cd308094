package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/transit-planner/formatter"
	"github.com/theoremus-urban-solutions/transit-planner/graph"
	"github.com/theoremus-urban-solutions/transit-planner/internal"
	"github.com/theoremus-urban-solutions/transit-planner/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "routeplanner",
		Short:         "Transit route planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yml (default: ./config.yml or ./config/config.yml)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newRouteCmd(&configPath))
	root.AddCommand(newStopsCmd(&configPath))
	root.AddCommand(newSnapshotCmd(&configPath))
	return root
}

// setup loads configuration, initialises logging and builds the app.
// Logs go to stderr for commands whose stdout is the result.
func setup(configPath string, logToStderr bool) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logToStderr {
		internal.InitLoggingTo(os.Stderr, cfg.Log.Level)
	} else {
		internal.InitLogging(cfg.Log.Level)
	}
	return newApp(cfg)
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(*configPath, false)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// a failed initial load still serves, on an empty graph
			_ = a.refresh(ctx)

			srv := server.New(a.cfg.Server, a.finder(), a.store, a.loader)
			if a.cache != nil {
				srv.OnRefresh = a.cache.Purge
			}
			return srv.Run(ctx)
		},
	}
}

func newRouteCmd(configPath *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "route <from> <to>",
		Short: "Plan a trip between two stops",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath, true)
			if err != nil {
				return err
			}
			if err := a.refresh(cmd.Context()); err != nil {
				return err
			}
			res, findErr := a.finder().FindBestRoute(args[0], args[1])
			if findErr != nil {
				res = formatter.WrapErrorResponse(args[0], args[1], findErr)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := formatter.NewResponseBuilder(true).BuildJSON(res)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, string(data))
			} else {
				_, _ = fmt.Fprint(out, formatter.RenderText(res))
			}
			return findErr
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the response as JSON")
	return cmd
}

func newStopsCmd(configPath *string) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "stops",
		Short: "List stop names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(*configPath, true)
			if err != nil {
				return err
			}
			if err := a.refresh(cmd.Context()); err != nil {
				return err
			}
			names := formatter.StopNames(a.store.Load(), filter)
			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no stops")
				return nil
			}
			for _, n := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only list names containing this text")
	return cmd
}

func newSnapshotCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <out>",
		Short: "Load the configured network and write it as a gob snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath, true)
			if err != nil {
				return err
			}
			desc, err := a.loader.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := graph.WriteSnapshot(args[0], desc); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d stops, %d links\n", args[0], len(desc.Stops), len(desc.Links))
			return nil
		},
	}
}
