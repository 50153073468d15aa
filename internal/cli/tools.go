package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := newToolRegistry()
			out := cmd.OutOrStdout()

			for _, name := range registry.Names() {
				t, err := registry.Get(name)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s\t%s\n", t.Name(), t.Description())

				params := make([]string, 0, len(t.Schema()))
				for param, typ := range t.Schema() {
					label := string(typ)
					if isRequired(t.Required(), param) {
						label += ", required"
					}
					params = append(params, fmt.Sprintf("%s (%s)", param, label))
				}
				sort.Strings(params)

				if len(params) > 0 {
					fmt.Fprintf(out, "\tparams: %s\n", strings.Join(params, ", "))
				}
			}

			return nil
		},
	}
}

func isRequired(required []string, param string) bool {
	for _, r := range required {
		if r == param {
			return true
		}
	}
	return false
}
