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
	"strings"

	"github.com/spf13/cobra"

	"github.com/JayaPrakash0264/translator/internal/audio"
	"github.com/JayaPrakash0264/translator/internal/catalog"
)

var (
	speakLang   string
	speakOutput string
)

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Synthesize spoken audio for text",
	Long: `Request synthesized speech from the provider and play it on the default
output device, or write it to a WAV file with --output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := args[0]
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("nothing to speak")
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
		pcm, err := svc.Synthesize(ctx, text, catalog.DisplayName(speakLang))
		if err != nil {
			return fmt.Errorf("speech synthesis failed: %w", err)
		}
		if len(pcm) == 0 {
			return fmt.Errorf("provider returned no audio")
		}

		if speakOutput != "" {
			f, err := os.Create(speakOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			if err := audio.WriteWAV(f, pcm, audio.DefaultSampleRate, audio.DefaultChannels); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", speakOutput)
			return nil
		}

		buf, err := audio.Decode(pcm, audio.DefaultSampleRate, audio.DefaultChannels)
		if err != nil {
			return fmt.Errorf("failed to decode audio: %w", err)
		}
		return audio.NewPortAudioPlayer().Play(ctx, buf)
	},
}

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().StringVarP(&speakLang, "lang", "l", "en", "Language code of the text")
	speakCmd.Flags().StringVarP(&speakOutput, "output", "o", "", "Write a WAV file instead of playing")
}
