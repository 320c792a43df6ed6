// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/katalvlaran/cellnet/template"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "templates [NAME...]",
		Short: "List the template library",
		Long: `Lists the builtin templates plus those of the configured library file.
With --yaml the library is written in the format accepted by the library
setting, ready to be edited.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := template.LoadLibraryFile(a.cfg.Library)
			if err != nil {
				return err
			}
			if asYAML {
				_, err = lib.WriteTo(cmd.OutOrStdout())
				return err
			}

			names := args
			if len(names) == 0 {
				names = lib.Names()
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("NAME", "A", "B", "D", "Z", "BOUNDARY", "DT", "T_END")
			for _, n := range names {
				tpl, err := lib.Get(n)
				if err != nil {
					return err
				}
				t.Row(tpl.Name(), kernel(tpl.A()), kernel(tpl.B()), kernel(tpl.D()),
					num(tpl.Z()), tpl.Boundary().String(), num(tpl.TimeStep()), num(tpl.Duration()))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the library as YAML")

	return cmd
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// kernel renders the three rows of k separated by slashes; zero kernels
// print as "-".
func kernel(k template.Kernel) string {
	if k.IsZero() {
		return "-"
	}
	rows := make([]string, 0, 3)
	for r := 0; r < 3; r++ {
		rows = append(rows, num(k[3*r])+" "+num(k[3*r+1])+" "+num(k[3*r+2]))
	}

	return strings.Join(rows, " / ")
}
