package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genba-tools/photoflow/internal/ai"
	"github.com/genba-tools/photoflow/internal/cache"
	"github.com/genba-tools/photoflow/internal/config"
	"github.com/genba-tools/photoflow/internal/engine"
	"github.com/genba-tools/photoflow/internal/store"
	"github.com/genba-tools/photoflow/pkg/logger"
)

// commonFlags are the run options shared by scan, group, and watch.
type commonFlags struct {
	configPath  string
	gapMinutes  int
	concurrency int
	dryRun      bool
	force       bool
	overwrite   bool
	autoName    bool
	blockNames  bool
	noCache     bool
	debug       bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "photoflow.yaml", "config file path")
	cmd.Flags().IntVar(&f.gapMinutes, "gap", 0, "continuity gap threshold in minutes (default 10)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "parallel analyzer calls (default 1)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "report only, do not move files")
	cmd.Flags().BoolVar(&f.force, "force-reclassify", false, "ignore existing output and redo everything")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "overwrite colliding files when moving")
	cmd.Flags().BoolVar(&f.autoName, "auto-name", false, "name activities from top keywords instead of the rule table")
	cmd.Flags().BoolVar(&f.blockNames, "block-names", false, "label new segments by timestamp instead of the unclassified sentinel")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "skip the analyzer reply cache")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "verbose logging")
}

// runtime bundles everything a command needs for one folder.
type runtime struct {
	cfg   config.Config
	log   *zap.SugaredLogger
	store *store.Store
	cache *cache.Cache
	eng   *engine.Engine
}

func (r *runtime) close() {
	if r.cache != nil {
		r.cache.Close()
	}
	r.log.Sync()
}

// buildRuntime loads configuration, applies flag overrides, and wires the
// engine. needAnalyzer is false for commands that never call the backend.
func buildRuntime(folder string, flags commonFlags, needAnalyzer bool) (*runtime, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.gapMinutes > 0 {
		cfg.GapMinutes = flags.gapMinutes
	}
	if flags.concurrency > 0 {
		cfg.Concurrency = flags.concurrency
	}
	cfg.DryRun = cfg.DryRun || flags.dryRun
	cfg.ForceReclassify = cfg.ForceReclassify || flags.force
	cfg.Overwrite = cfg.Overwrite || flags.overwrite
	cfg.AutoName = cfg.AutoName || flags.autoName
	cfg.BlockNames = cfg.BlockNames || flags.blockNames
	cfg.Debug = cfg.Debug || flags.debug

	log, err := logger.NewSugared(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log, store: store.Open(folder)}

	var analyzer ai.Analyzer
	if needAnalyzer {
		aiCfg := ai.NewConfig()
		aiCfg.APIKey = cfg.AI.APIKey
		if cfg.AI.Model != "" {
			aiCfg.Model = cfg.AI.Model
		}
		if cfg.AI.BaseURL != "" {
			aiCfg.BaseURL = cfg.AI.BaseURL
		}
		aiCfg.Timeout = cfg.AITimeout()

		client, err := ai.NewClient(aiCfg)
		if err != nil {
			return nil, err
		}
		analyzer = client

		if !flags.noCache && cfg.CachePath != "" {
			c, err := cache.Open(cfg.CachePath)
			if err != nil {
				log.Warnw("cache unavailable, calling backend directly", "error", err)
			} else {
				rt.cache = c
			}
		}
	}

	rt.eng = engine.New(engine.Options{
		Folder:          folder,
		GapMinutes:      cfg.GapMinutes,
		Concurrency:     cfg.Concurrency,
		DryRun:          cfg.DryRun,
		ForceReclassify: cfg.ForceReclassify,
		Overwrite:       cfg.Overwrite,
		BlockNames:      cfg.BlockNames,
		AutoName:        cfg.AutoName,
	}, analyzer, rt.store, rt.cache, log)

	return rt, nil
}
