package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/server"
	"github.com/abhisek/aalp/internal/simulation"
	"github.com/abhisek/aalp/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long:  "Expose the assertion catalog, classification engine, progress and ledger balances over a JSON API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// A local .env is optional; flags and env vars still apply.
		_ = godotenv.Load()

		addr, _ := cmd.Flags().GetString("addr")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		events := st.EventRepo()
		srv := server.New(
			events,
			simulation.New(events),
			narrative.NewGenerator(uint64(time.Now().UnixNano())),
		)

		fmt.Printf("Listening on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
