/*
Copyright © 2025 Jaya Prakash

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the translation history",
	Long:  `List or clear the persistent translation history.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openHistoryStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()

		items, err := store.Load(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No history entries.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tFROM\tTO\tSOURCE\tTRANSLATION")
		for _, it := range items {
			src := it.SourceText
			if len(src) > 40 {
				src = src[:37] + "..."
			}
			dst := it.TranslatedText
			if len(dst) > 40 {
				dst = dst[:37] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				it.Timestamp.Format("2006-01-02 15:04"), it.SourceLang, it.TargetLang, src, dst)
		}
		return w.Flush()
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openHistoryStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()

		if err := store.Clear(context.Background()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}
