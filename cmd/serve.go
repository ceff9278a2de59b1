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
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/JayaPrakash0264/translator/internal/server"
	"github.com/JayaPrakash0264/translator/internal/session"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser translation UI",
	Long: `Serve the translation UI and its JSON API over HTTP.

The session state (text, languages, history) lives in the server process;
translation history is persisted across restarts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}

		svc, err := buildService(cfg)
		if err != nil {
			return err
		}

		store, err := openHistoryStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()

		controller := session.New(svc,
			session.WithDebounce(cfg.Debounce),
			session.WithStore(store),
		)
		defer controller.Close()

		srv := server.New(controller, svc)

		fmt.Fprintf(os.Stderr, "Serving on http://%s (service: %s)\n", cfg.ListenAddr, svc.Name())
		return http.ListenAndServe(cfg.ListenAddr, srv)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address (overrides config)")
}
