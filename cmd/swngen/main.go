// Package main provides the swngen CLI for generating characters.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NaughtyFishies/swn-character-generator/internal/config"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/character"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
	"github.com/NaughtyFishies/swn-character-generator/internal/observability"
	"github.com/NaughtyFishies/swn-character-generator/internal/storage/postgres"
)

type options struct {
	configPath string

	name       string
	class      string
	background string
	level      int
	method     string
	power      string
	maxTech    int
	quick      bool

	seed    int64
	count   int
	compact bool
	save    bool
}

func main() {
	opts := &options{}

	root := &cobra.Command{
		Use:   "swngen",
		Short: "Generate Stars Without Number style characters",
		Long: "swngen assembles complete character sheets from the YAML rule tables:\n" +
			"attributes, background skills, class powers, foci, and equipment.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.configPath, "config", "configs/dev.yaml", "path to configuration file")
	flags.StringVar(&opts.name, "name", "", "character name (random when empty)")
	flags.StringVar(&opts.class, "class", "", "class name (random when empty)")
	flags.StringVar(&opts.background, "background", "", "background name (random when empty)")
	flags.IntVar(&opts.level, "level", 1, "character level, 1-10")
	flags.StringVar(&opts.method, "method", "", "attribute method: roll or array (config default when empty)")
	flags.StringVar(&opts.power, "power", "", "power constraint: normal, magic, or psionic")
	flags.IntVar(&opts.maxTech, "tech", -1, "max equipment tech level, 0-5 (config default when -1)")
	flags.BoolVar(&opts.quick, "quick-skills", false, "draw the background quick skill randomly")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed for replayable output (0 = crypto randomness)")
	flags.IntVar(&opts.count, "count", 1, "number of characters to generate")
	flags.BoolVar(&opts.compact, "json", false, "emit compact single-line JSON")
	flags.BoolVar(&opts.save, "save", false, "archive generated sheets to the configured database")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if opts.count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", rules.ErrInvalidConfiguration, opts.count)
	}

	store, err := rules.LoadStore(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("loading rule tables: %w", err)
	}
	logger.Info("rule tables loaded",
		zap.String("dir", cfg.Content.Dir),
		zap.Int("classes", len(store.ClassNames())),
		zap.Int("backgrounds", len(store.BackgroundNames())),
	)

	var src dice.Source
	if opts.seed != 0 {
		src = dice.NewSeededSource(opts.seed)
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewLoggedRoller(src, logger)
	synth := character.NewSynthesizer(store, roller, logger)

	var archive *postgres.ArchiveRepository
	if opts.save {
		pool, err := postgres.NewPool(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()
		archive = postgres.NewArchiveRepository(pool.DB())
	}

	req := requestFrom(opts, cfg.Generator)
	for i := 0; i < opts.count; i++ {
		c, err := synth.Synthesize(req)
		if err != nil {
			return err
		}
		if err := emit(cmd, c, opts.compact); err != nil {
			return err
		}
		if archive != nil {
			if err := save(cmd.Context(), archive, c, logger); err != nil {
				return err
			}
		}
	}
	return nil
}

// requestFrom merges the CLI flags with the configured generator
// defaults. Flags win when set.
func requestFrom(opts *options, defaults config.GeneratorConfig) character.Request {
	req := character.Request{
		Name:           opts.name,
		Class:          opts.class,
		Background:     opts.background,
		Level:          opts.level,
		Method:         opts.method,
		Power:          opts.power,
		MaxTech:        opts.maxTech,
		UseQuickSkills: opts.quick || defaults.UseQuickSkills,
	}
	if req.Method == "" {
		req.Method = defaults.Method
	}
	if req.MaxTech < 0 {
		req.MaxTech = defaults.MaxTech
	}
	return req
}

func emit(cmd *cobra.Command, c *character.Character, compact bool) error {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshalling character: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func save(ctx context.Context, archive *postgres.ArchiveRepository, c *character.Character, logger *zap.Logger) error {
	id, err := archive.Save(ctx, c)
	if err != nil {
		return fmt.Errorf("archiving character: %w", err)
	}
	logger.Info("character archived",
		zap.String("id", id.String()),
		zap.String("name", c.Name),
	)
	return nil
}
