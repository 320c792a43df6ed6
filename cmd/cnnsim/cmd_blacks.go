// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/cellnet/imageio"
	"github.com/katalvlaran/cellnet/matrix"
	"github.com/katalvlaran/cellnet/regions"
	"github.com/spf13/cobra"
)

func newBlacksCmd(_ *app) *cobra.Command {
	var (
		region string
		conn8  bool
		bridge []int
	)
	cmd := &cobra.Command{
		Use:   "blacks IMAGE",
		Short: "Count black pixels and connected black regions",
		Long: `Decodes IMAGE and counts cells at or above the black threshold, over the
whole image or along one border (--region left|right|top|bottom). Connected
black regions are labelled as well; --bridge I,J reports the cheapest white
crossing joining regions I and J.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := matrix.ParseRegion(region)
			if err != nil {
				return err
			}
			m, err := imageio.Load(args[0])
			if err != nil {
				return err
			}
			opts := regions.DefaultOptions()
			if conn8 {
				opts.Conn = regions.Conn8
			}

			n, err := m.Blacks(r)
			if err != nil {
				return err
			}
			sum, err := regions.Summarize(m, opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %d\n", r, n)
			fmt.Fprintf(w, "regions: %d, largest: %d\n", sum.Regions, sum.Largest)

			if len(bridge) == 0 {
				return nil
			}
			if len(bridge) != 2 {
				return fmt.Errorf("cnnsim: --bridge wants two region indices, got %d", len(bridge))
			}
			path, cost, err := regions.Bridge(m, opts, bridge[0], bridge[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "bridge %d-%d: %d white cells over a path of %d\n", bridge[0], bridge[1], cost, len(path))

			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&region, "region", "r", "all", "all, left, right, top or bottom")
	fl.BoolVar(&conn8, "conn8", false, "label regions with 8-connectivity")
	fl.IntSliceVar(&bridge, "bridge", nil, "two region indices to connect")

	return cmd
}
