package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zenibako/autocue/config"
	"github.com/zenibako/autocue/rekordbox"
)

func newPlaylistsCommand(ctx *commandContext) *cobra.Command {
	var xmlPath string

	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List the playlists in a rekordbox XML export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			path, err := resolveXMLPath(xmlPath, cfg)
			if err != nil {
				return err
			}

			lib, err := rekordbox.Load(path)
			if err != nil {
				return err
			}

			playlists := lib.Playlists()
			if len(playlists) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No playlists found")
				return nil
			}

			rows := make([][]string, 0, len(playlists))
			for _, p := range playlists {
				rows = append(rows, []string{p.Path, strconv.Itoa(len(p.TrackIDs))})
			}
			writeTable(cmd.OutOrStdout(), []column{
				{title: "Playlist"},
				{title: "Tracks", numeric: true},
			}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&xmlPath, "xml", "", "rekordbox XML export (defaults to library.xml_path)")
	return cmd
}

func resolveXMLPath(flag string, cfg *config.Config) (string, error) {
	if flag != "" {
		return config.ExpandPath(flag)
	}
	if cfg.Library.XMLPath != "" {
		return cfg.Library.XMLPath, nil
	}
	return "", errors.New("no rekordbox XML given: pass --xml or set library.xml_path")
}
