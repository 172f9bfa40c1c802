package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tunelyf/internal/filter"
	"github.com/desertthunder/tunelyf/internal/formatter"
	"github.com/desertthunder/tunelyf/internal/models"
	"github.com/desertthunder/tunelyf/internal/shared"
	"github.com/urfave/cli/v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
	formatText  = "text"
)

// Search queries the catalog and prints the tracks that pass the chosen policy.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	policy, err := r.policies.Get(cmd.String("policy"))
	if err != nil {
		return err
	}
	if policy.Name == filter.PolicyTrending {
		return fmt.Errorf("%w: use the trending command for the trending policy", shared.ErrInvalidArgument)
	}

	window := r.window(cmd, policy)
	fetch := filter.FetchSize(window, r.config.Filter.FetchMultiplier, r.config.Filter.MaxFetch)

	r.logger.Debug("searching catalog", "query", query, "policy", policy.Name, "fetch", fetch)

	tracks, err := r.catalog.Search(ctx, query, fetch)
	if err != nil {
		return err
	}

	kept := filter.New(policy).Apply(tracks, query, window)
	r.logger.Debug("filtered results", "fetched", len(tracks), "kept", len(kept))

	return r.writeTracks(cmd.String("format"), fmt.Sprintf("%s: %q", policy.Name, query), kept, window.Offset)
}

// Trending prints streamable trending tracks.
func (r *Runner) Trending(ctx context.Context, cmd *cli.Command) error {
	policy, err := r.policies.Get(filter.PolicyTrending)
	if err != nil {
		return err
	}

	window := r.window(cmd, policy)
	tracks, err := r.catalog.Trending(ctx, filter.FetchSize(window, r.config.Filter.FetchMultiplier, r.config.Filter.MaxFetch))
	if err != nil {
		return err
	}

	return r.writeTracks(cmd.String("format"), "Trending", filter.New(policy).Apply(tracks, "", window), window.Offset)
}

// Stream prints the resolved stream URL of a track.
func (r *Runner) Stream(ctx context.Context, cmd *cli.Command) error {
	trackID := strings.TrimSpace(cmd.StringArg("trackId"))
	if trackID == "" {
		return fmt.Errorf("%w: trackId", shared.ErrMissingArgument)
	}

	streamURL, err := r.catalog.ResolveStream(ctx, trackID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]string{"streamUrl": streamURL}, false)
	}
	return r.writePlain("%s\n", streamURL)
}

// window reads --offset and --limit, falling back to the policy's page size when --limit is unset.
func (r *Runner) window(cmd *cli.Command, policy filter.Policy) filter.Window {
	w := filter.Window{Offset: cmd.Int("offset"), Limit: policy.DefaultLimit}
	if cmd.IsSet("limit") {
		w.Limit = cmd.Int("limit")
	}
	if w.Offset < 0 {
		w.Offset = 0
	}
	if w.Limit < 0 {
		w.Limit = policy.DefaultLimit
	}
	return w
}

func (r *Runner) writeTracks(format, title string, tracks []models.Track, offset int) error {
	switch format {
	case formatJSON:
		return r.writeJSON(map[string][]models.Track{"data": tracks}, true)
	case formatCSV:
		data, err := formatter.ExportToCSV(tracks)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case formatText:
		data, err := formatter.ExportToText(tracks, offset)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case formatTable, "":
		if len(tracks) == 0 {
			return r.writePlain("%s\n", formatter.Warning("No tracks matched."))
		}
		if err := r.writePlain("%s\n", formatter.Title(title)); err != nil {
			return err
		}
		return r.writePlain("%s\n", formatter.RenderTable(tracks, offset))
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}
