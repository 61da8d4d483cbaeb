package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) srsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "srs",
		Short: "List the spatial reference ids available for GML reprojection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, log, err := a.service("")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			reg := svc.Registry()
			for _, id := range reg.SRIDs() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, reg.ProjParams(id)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
