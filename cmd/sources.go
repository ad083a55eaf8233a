package main

import (
	"context"
	"strings"

	"feedsync/internal/ui"

	"github.com/urfave/cli/v3"
)

// Sources lists the configured feed sources.
func (r *Runner) Sources(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(config.Sources, true)
	}

	if len(config.Sources) == 0 {
		r.writePlain("%s\n", ui.Warn("No sources configured"))
		return nil
	}

	r.writePlain("%s\n", ui.Title("Configured Sources"))
	for _, src := range config.Sources {
		r.writePlain("%s (%s)\n", ui.OK(src.Name), src.Kind)
		r.writePlain("  id: %s  project: %s\n", src.ID, src.ProjectID)
		if len(src.Labels) > 0 {
			r.writePlain("  labels: %s\n", strings.Join(src.Labels, ", "))
		}
		if len(src.Keywords) > 0 {
			r.writePlain("  keywords: %s\n", strings.Join(src.Keywords, ", "))
		}
	}

	return nil
}
