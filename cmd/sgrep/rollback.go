package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/sgrep/internal/apply"
	"github.com/oxhq/sgrep/internal/config"
	"github.com/oxhq/sgrep/store"
)

func newRollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback <run-id>",
		Short: "Undo every applied stage recorded under a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := args[0]

			cfg := config.LoadConfig()
			st, err := store.Open(cfg, false)
			if err != nil {
				return fmt.Errorf("sgrep: %w", err)
			}
			defer st.Close()

			run, err := st.Run(runID)
			if err != nil {
				return err
			}

			writer := apply.NewWriter(apply.DefaultWriteConfig())
			reverted := 0
			for i := len(run.Stages) - 1; i >= 0; i-- {
				stage := run.Stages[i]
				if stage.Applied == nil || stage.Applied.Reverted {
					continue
				}
				if err := writer.Restore(stage.Path, stage.Applied.BackupPath); err != nil {
					return fmt.Errorf("sgrep: restore %s: %w", stage.Path, err)
				}
				if err := st.RevertApplied(stage.ID); err != nil {
					return fmt.Errorf("sgrep: %w", err)
				}
				reverted++
			}

			fmt.Printf("run %s: reverted %d stages\n", runID, reverted)
			return nil
		},
	}
	return cmd
}
