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
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JayaPrakash0264/translator/internal/catalog"
	"github.com/JayaPrakash0264/translator/internal/gateway"
	"github.com/JayaPrakash0264/translator/internal/history"
)

var (
	sourceLang string
	targetLang string
	noHistory  bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text once and print the result",
	Long: `Translate the given text (or stdin when no argument is passed) and print
the translation. The detected source language and any alternatives the
provider offers are printed to stderr.

Examples:
  translator translate --target es "Hello, world"
  echo "Hello" | translator translate -t fr`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("nothing to translate")
		}

		if catalog.IsAuto(targetLang) {
			return fmt.Errorf("target language cannot be %q", targetLang)
		}
		if _, ok := catalog.Lookup(targetLang); !ok {
			return fmt.Errorf("unknown target language: %s", targetLang)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := buildService(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := svc.Translate(ctx, gateway.Request{
			Text:       text,
			SourceLang: sourceLang,
			TargetLang: targetLang,
		})
		if err != nil {
			return fmt.Errorf("translation unavailable: %w", err)
		}

		fmt.Println(result.TranslatedText)
		if result.DetectedLanguage != "" {
			fmt.Fprintf(os.Stderr, "Detected source language: %s\n", result.DetectedLanguage)
		}
		if result.Pronunciation != "" {
			fmt.Fprintf(os.Stderr, "Pronunciation: %s\n", result.Pronunciation)
		}
		for _, alt := range result.Alternatives {
			fmt.Fprintf(os.Stderr, "Alternative: %s\n", alt)
		}

		if !noHistory {
			store, err := openHistoryStore(cfg)
			if err != nil {
				return nil // history is best-effort for one-shot use
			}
			defer store.Close()

			items, _ := store.Load(ctx)
			log := history.NewLog(items)

			itemLang := sourceLang
			if catalog.IsAuto(itemLang) && result.DetectedLanguage != "" {
				itemLang = result.DetectedLanguage
			}
			log.Add(history.NewItem(text, result.TranslatedText, itemLang, targetLang))
			_ = store.Save(ctx, log.Items())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this translation in the history")

	translateCmd.MarkFlagRequired("target")
}
