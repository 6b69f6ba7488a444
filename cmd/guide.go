package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/summitlab/trailguide/internal/model"
)

var guideCmd = &cobra.Command{
	Use:   "guide <trail name>",
	Short: "Look up or generate a trail guide and print it as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		rec, err := env.Orchestrator.Search(ctx, query, func(partial model.TrailRecord) {
			zap.L().Info("guide updated",
				zap.String("name", partial.Name),
				zap.Bool("has_story", partial.Story != ""),
				zap.Int("route_segments", len(partial.RouteSegments)),
			)
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
