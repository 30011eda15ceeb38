package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/dreamster/internal/app"
	"github.com/llehouerou/dreamster/internal/auth"
	"github.com/llehouerou/dreamster/internal/catalog"
	"github.com/llehouerou/dreamster/internal/config"
	"github.com/llehouerou/dreamster/internal/errmsg"
	"github.com/llehouerou/dreamster/internal/logging"
	"github.com/llehouerou/dreamster/internal/mpris"
	"github.com/llehouerou/dreamster/internal/notify"
	"github.com/llehouerou/dreamster/internal/player"
	"github.com/llehouerou/dreamster/internal/share"
	"github.com/llehouerou/dreamster/internal/state"
	"github.com/llehouerou/dreamster/internal/stderr"
	"github.com/llehouerou/dreamster/internal/ui/render"
	"github.com/llehouerou/dreamster/internal/ui/styles"
)

const retryDelay = 500 * time.Millisecond

func main() {
	cmd := &cli.Command{
		Name:  "dreamster",
		Usage: "Listen to Dreamster tracks from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "API token, overrides api.token",
				Sources: cli.EnvVars("DREAMSTER_TOKEN"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Log file path",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     "Open a track, the last opened one when no id is given",
				ArgsUsage: "[track-id]",
				Action:    runPlay,
			},
			{
				Name:   "recent",
				Usage:  "List recently opened tracks",
				Action: runRecent,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		stderr.WriteOriginal(err.Error() + "\n")
		os.Exit(1)
	}
}

func runPlay(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, closeLog, err := openLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Capture C library output before the audio backend starts.
	if err := stderr.Start(logger); err != nil {
		logger.Warn("stderr capture unavailable", "err", err)
	}
	defer stderr.Stop()

	stateMgr, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
	}
	defer stateMgr.Close()

	trackID := cmd.Args().First()
	if trackID == "" {
		if trackID, err = stateMgr.LastTrackID(); err != nil {
			return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
		}
		if trackID == "" {
			return errors.New("no track id given and no track opened before")
		}
	}

	token := cfg.API.Token
	if cmd.IsSet("token") {
		token = cmd.String("token")
	}
	store := auth.NewStore(token)

	api := cfg.GetAPIConfig()
	client := catalog.NewClient(api.BaseURL,
		catalog.WithHTTPClient(&http.Client{Timeout: api.Timeout()}),
		catalog.WithTokenSource(store),
		catalog.WithRateLimit(api.RatePerSecond),
		catalog.WithRetries(api.Retries, retryDelay),
		catalog.WithLogger(logger.With("component", "catalog")),
	)

	var recorder *share.Recorder
	if cfg.ShareEnabled() {
		recorder = share.NewRecorder(client, logger.With("component", "share"))
		defer recorder.Wait()
	}

	media := player.New(nil)
	defer media.Close()

	playCfg := cfg.GetPlaybackConfig()
	deps := app.Deps{
		Catalog:    client,
		Media:      media,
		Auth:       store,
		State:      stateMgr,
		Logger:     logger,
		Token:      token,
		SeekStep:   playCfg.SeekStep(),
		VolumeStep: playCfg.VolumeStep,
	}
	if recorder != nil {
		deps.Share = recorder
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New()
		if err != nil {
			logger.Warn("media keys unavailable", "err", err)
		} else {
			defer adapter.Close()
			deps.MediaKeys = adapter
		}
	}

	if cfg.NotificationsEnabled() {
		if n, err := notify.New(); err != nil {
			logger.Warn("desktop notifications unavailable", "err", err)
		} else {
			deps.Notifier = n
		}
	}

	logger.Info("opening track", "track", trackID, "authenticated", store.Authenticated())

	m := app.New(deps, trackID)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	}
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return nil
}

func runRecent(_ context.Context, cmd *cli.Command) error {
	stateMgr, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateOpen, err))
	}
	defer stateMgr.Close()

	tracks, err := stateMgr.RecentTracks(20)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		fmt.Fprintln(cmd.Root().Writer, "No tracks opened yet.")
		return nil
	}

	st := styles.T().S()
	for _, t := range tracks {
		title := render.Sanitize(t.Title)
		if t.Artist != "" {
			title += st.Muted.Render(" · " + render.Sanitize(t.Artist))
		}
		fmt.Fprintf(cmd.Root().Writer, "%s  %s  %s\n",
			st.Subtle.Render(t.TrackID), title, st.Subtle.Render(humanize.Time(t.OpenedAt)))
	}
	return nil
}

// openLogger opens the log file. The TUI owns the terminal, so nothing is
// logged to stderr while it runs.
func openLogger(cmd *cli.Command, cfg *config.Config) (*log.Logger, func(), error) {
	level := cfg.LogLevel()
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}

	path := cfg.Log.File
	if cmd.IsSet("log-file") {
		path = cmd.String("log-file")
	}
	if path == "" {
		var err error
		if path, err = logging.DefaultFile(); err != nil {
			return logging.New(io.Discard, log.InfoLevel), func() {}, nil
		}
	}

	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, logging.ParseLevel(level)), func() { f.Close() }, nil
}
