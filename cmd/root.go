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
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "translator",
	Short: "AI Text Translator",
	Long: `Translate text between languages using a hosted generative-AI provider,
with optional spoken audio and a persistent translation history.

Run "translator serve" to start the browser UI, or "translator translate"
for one-shot translations from the command line.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/translator/config.yaml)")
}
