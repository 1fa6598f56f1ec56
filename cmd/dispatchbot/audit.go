package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonny/dispatchbot/internal/adapter/outbound/persistence/sqlite"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

func auditCmd() *cobra.Command {
	var (
		filter outbound.AuditFilter
		since  time.Duration
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Print recent audit entries as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if !cfg.Database.Enabled {
				return errors.New("database is disabled; nothing was recorded")
			}

			store, err := sqlite.NewStore(cmd.Context(), sqliteConfig(cfg.Database.SQLite))
			if err != nil {
				return fmt.Errorf("opening sqlite store: %w", err)
			}
			defer store.Close()

			if since > 0 {
				from := time.Now().Add(-since)
				filter.Since = &from
			}

			res, err := sqlite.NewAuditRepo(store).List(cmd.Context(), filter, outbound.PageRequest{Size: limit, Desc: true})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, entry := range res.Items {
				if err := enc.Encode(entry); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.EventType, "event", "", "filter by event type (e.g. download.denied)")
	cmd.Flags().StringVar(&filter.Command, "command", "", "filter by command name")
	cmd.Flags().StringVar(&filter.Actor, "actor", "", "filter by user id")
	cmd.Flags().StringVar(&filter.InteractionID, "interaction", "", "filter by interaction id")
	cmd.Flags().DurationVar(&since, "since", 0, "only entries newer than this duration")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of entries")
	return cmd
}
