package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zenibako/autocue/config"
	"github.com/zenibako/autocue/export"
	"github.com/zenibako/autocue/history"
	"github.com/zenibako/autocue/logging"
	"github.com/zenibako/autocue/notify"
	"github.com/zenibako/autocue/picker"
	"github.com/zenibako/autocue/rekordbox"
	"github.com/zenibako/autocue/session"
)

const watchDebounce = 500 * time.Millisecond

type runOptions struct {
	xmlPath   string
	playlist  string
	dropsFile string
	outputDir string
	dryRun    bool
	jsonOut   bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Mark the drop of every track in a playlist and export cues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runBatch(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.xmlPath, "xml", "", "rekordbox XML export (defaults to library.xml_path)")
	cmd.Flags().StringVarP(&opts.playlist, "playlist", "p", "", "Playlist name or folder path (Folder/Playlist)")
	cmd.Flags().StringVar(&opts.dropsFile, "drops", "", "TOML file of drop times; skips the interactive picker")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Directory for the exported XML (defaults to library.output_dir)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Generate and report cues without writing a file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the export report as JSON")
	_ = cmd.MarkFlagRequired("playlist")
	return cmd
}

func runBatch(cmd *cobra.Command, cfg *config.Config, opts runOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	xmlPath, err := resolveXMLPath(opts.xmlPath, cfg)
	if err != nil {
		return err
	}
	lib, err := rekordbox.Load(xmlPath)
	if err != nil {
		return err
	}

	entries, err := lib.PlaylistTracks(opts.playlist)
	if err != nil {
		return err
	}
	s, err := session.New(sessionTracks(entries))
	if err != nil {
		return err
	}
	if s.Len() == 0 {
		return fmt.Errorf("playlist %q has no tracks in the collection", opts.playlist)
	}
	log.Info("Starting session", "id", s.ID(), "playlist", opts.playlist, "tracks", s.Len())

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			log.Warn("History disabled for this run", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	pick, err := choosePicker(cfg, opts, store)
	if err != nil {
		return err
	}

	var notifier notify.Notifier = notify.Nop{}
	if host, port, ok := cfg.OSCTarget(); ok {
		notifier = notify.NewOSCNotifier(host, port)
		log.Info("Sending OSC notifications", "host", host, "port", port)
	}
	notifier.SessionStarted(s.ID(), s.Len())

	watcher, err := rekordbox.Watch(xmlPath, watchDebounce, func() {
		log.Warn("Library file changed on disk; cues are still written from the copy loaded at start", "path", xmlPath)
	})
	if err != nil {
		log.Debug("Not watching library file", "error", err)
	} else {
		defer watcher.Close()
	}

	if err := session.Run(ctx, s, pick, notifier); err != nil {
		return err
	}

	report := export.Assemble(s.Snapshot(), time.Now(), export.Options{
		SnapToGrid: cfg.Cues.SnapToGrid,
		TieBreak:   cfg.TieBreak(),
	})

	artifact := ""
	if opts.dryRun {
		log.Info("Dry run: no file written")
	} else if report.Summary().Exported > 0 {
		report = export.Apply(report, lib.Writer(rekordbox.WriteOptions{
			RemoveMemory: cfg.Cues.RemoveExistingMemory,
			RemoveHot:    cfg.Cues.RemoveExistingHot,
		}))

		outputDir := opts.outputDir
		if outputDir == "" {
			outputDir = cfg.Library.OutputDir
		} else if outputDir, err = config.ExpandPath(outputDir); err != nil {
			return err
		}

		saveCtx, cancel := context.WithTimeout(ctx, cfg.LockWait())
		artifact, err = lib.Export(saveCtx, outputDir, report.CreatedAt)
		cancel()
		if err != nil {
			return fmt.Errorf("export library: %w", err)
		}
	} else {
		log.Warn("No track was exported; nothing to write")
	}

	notifier.ExportDone(report, artifact)

	if store != nil {
		if err := store.Record(ctx, report, artifact); err != nil {
			log.Warn("Failed to record run in history", "error", err)
		}
	}

	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	printReport(cmd, report, artifact)
	return nil
}

func choosePicker(cfg *config.Config, opts runOptions, store *history.Store) (session.Picker, error) {
	if opts.dropsFile != "" {
		path, err := config.ExpandPath(opts.dropsFile)
		if err != nil {
			return nil, err
		}
		return picker.LoadDropsFile(path)
	}
	if !logging.IsInteractive() {
		return nil, errors.New("no terminal for the interactive picker: pass --drops with a drops file")
	}

	p := &picker.FormPicker{Preview: trackPreview(cfg, store)}
	if cfg.Cues.SnapDropToBeat {
		p.SnapResolution = cfg.Cues.BeatResolution
	}
	return p, nil
}
