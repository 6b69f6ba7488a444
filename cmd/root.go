package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/summitlab/trailguide/internal/config"
	"github.com/summitlab/trailguide/internal/gen"
	"github.com/summitlab/trailguide/internal/guide"
	"github.com/summitlab/trailguide/internal/plans"
	"github.com/summitlab/trailguide/internal/repo"
	"github.com/summitlab/trailguide/internal/store"
	"github.com/summitlab/trailguide/pkg/gemini"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "trailguide",
	Short: "AI-assisted hiking trail guide service",
	Long:  "Answers trail queries cache-first, then generates guide content in stages: basic stats immediately, narrative and route timelines merging in as they resolve.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// env bundles the wired application services.
type env struct {
	Store        store.KVStore
	Orchestrator *guide.Orchestrator
	Plans        *plans.Ledger
}

func (e *env) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("closing store", zap.Error(err))
	}
}

func initEnv(ctx context.Context) (*env, error) {
	var kv store.KVStore
	switch cfg.Store.Driver {
	case "memory":
		kv = store.NewMem()
	default:
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, err
		}
		kv = st
	}

	client, err := gemini.NewClient(ctx, cfg.Gemini.Key, cfg.Gemini.Model, cfg.Gemini.QPS)
	if err != nil {
		kv.Close()
		return nil, err
	}

	r := repo.New(kv)
	return &env{
		Store:        kv,
		Orchestrator: guide.New(r, gen.New(client)),
		Plans:        plans.New(kv),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
