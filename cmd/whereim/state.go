package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whereim/internal/storage"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "List saved screens",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		states, err := store.States()
		if err != nil {
			return err
		}
		if len(states) == 0 {
			fmt.Println("No saved screens.")
			return nil
		}

		fmt.Printf("%-20s  %-6s  %s\n", "OWNER", "SCREEN", "UPDATED")
		for _, st := range states {
			updated := "-"
			if !st.UpdatedAt.IsZero() {
				updated = st.UpdatedAt.Format("2006-01-02 15:04")
			}
			fmt.Printf("%-20s  %-6s  %s\n", st.Owner, st.Screen, updated)
		}
		return nil
	},
}
