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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JayaPrakash0264/translator/internal/catalog"
	"github.com/JayaPrakash0264/translator/internal/picker"
)

var (
	langFilter     string
	langSelectable bool
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Long: `List the language catalog. --filter narrows the list the same way the
UI's language picker does (substring match on name, native name, or code);
--selectable hides the auto-detect entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []picker.Option
		if langSelectable {
			opts = append(opts, picker.WithoutCode(catalog.AutoCode))
		}
		pk := picker.New(catalog.Languages(), nil, opts...)
		pk.UpdateQuery(langFilter)

		langs := pk.Filtered()
		if len(langs) == 0 {
			fmt.Println("No matching languages.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tNATIVE NAME")
		for _, l := range langs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.Code, l.Name, l.NativeName)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)

	languagesCmd.Flags().StringVarP(&langFilter, "filter", "f", "", "Filter languages by name or code")
	languagesCmd.Flags().BoolVar(&langSelectable, "selectable", false, "Hide the auto-detect entry")
}
