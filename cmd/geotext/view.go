package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"geotext/internal/tui"
)

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [path]",
		Short: "Open the terminal viewer, optionally preloading a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// stderr belongs to the alt screen while the viewer runs
			svc, log, err := a.service("geotext.log")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			opts := []tui.Option{tui.WithFs(a.fs), tui.WithLogger(log)}
			var m tea.Model
			if len(args) == 1 {
				m = tui.NewWithPath(svc, args[0], opts...)
			} else {
				m = tui.New(svc, opts...)
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
}
