package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
	"github.com/kelseymakesthings/auto-outfit/internal/config"
	"github.com/kelseymakesthings/auto-outfit/internal/generator"
	"github.com/kelseymakesthings/auto-outfit/internal/history"
	"github.com/kelseymakesthings/auto-outfit/internal/policy"
	"github.com/kelseymakesthings/auto-outfit/internal/render"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Closet    string
	Images    string
	Rules     string
	Database  string
	Warmth    int
	Comfort   int
	Fancy     bool
	Include   string
	Seed      int64
	AvoidWorn int
	ImageOut  string
	Show      bool

	// Now allows overriding the timestamp/seed source (for testing).
	// If nil, defaults to time.Now.
	Now func() time.Time
}

// GenerateResult is the success payload of the generate command.
type GenerateResult struct {
	Seed   int64         `json:"seed"`
	Pieces []ChosenPiece `json:"pieces"`
	Image  string        `json:"image,omitempty"`
}

// ChosenPiece is one selected piece in a generated outfit.
type ChosenPiece struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random outfit",
		Long: `Generate a random outfit from the closet file, subject to style rules.

Every run prints the seed it used; pass the same seed back with --seed
to reproduce the outfit. With --db, each outfit is recorded so
--avoid-worn N can skip pieces worn in the last N outfits.

Example:
  outfit generate
  outfit generate -w 3 -c 2 --fancy
  outfit generate -i "green cardigan" --seed 42
  outfit generate --db ~/.outfit.db --avoid-worn 3 --show`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Closet, "closet", "", "path to closet file (default $OUTFIT_CLOSET or closet.json)")
	cmd.Flags().StringVar(&opts.Images, "images", "", "path to images directory (default $OUTFIT_IMAGES or images)")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "path to rules file (default $OUTFIT_RULES)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to history database (default $OUTFIT_HISTORY_DB)")
	cmd.Flags().IntVarP(&opts.Warmth, "warmth", "w", 0, "required warmth level for bottom and jacket (1-3)")
	cmd.Flags().IntVarP(&opts.Comfort, "comfort", "c", 0, "minimum comfort level for all pieces (1-3)")
	cmd.Flags().BoolVarP(&opts.Fancy, "fancy", "f", false, "require all pieces to be fancy")
	cmd.Flags().StringVarP(&opts.Include, "include", "i", "", "required piece name to include")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (default time-derived)")
	cmd.Flags().IntVar(&opts.AvoidWorn, "avoid-worn", 0, "avoid pieces worn in the last N recorded outfits (requires --db)")
	cmd.Flags().StringVar(&opts.ImageOut, "image-out", "", "write a composite image of the outfit to this path")
	cmd.Flags().BoolVar(&opts.Show, "show", false, "open the composite image with the default viewer")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	configureLogging(opts.Verbose)

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cfg, err := resolveConfig(opts.Closet, opts.Images, opts.Database, opts.Rules)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve configuration", err)
	}

	if cmd.Flags().Changed("warmth") && (opts.Warmth < 1 || opts.Warmth > 3) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid warmth level %d: must be 1-3", opts.Warmth))
	}
	if cmd.Flags().Changed("comfort") && (opts.Comfort < 1 || opts.Comfort > 3) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid comfort level %d: must be 1-3", opts.Comfort))
	}
	if opts.AvoidWorn > 0 && cfg.HistoryDB == "" {
		return NewExitError(ExitCommandError, "--avoid-worn requires --db or $OUTFIT_HISTORY_DB")
	}

	// Load optional rules file
	var rules config.Rules
	if cfg.RulesPath != "" {
		loaded, err := config.LoadRules(cfg.RulesPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load rules file", err)
		}
		rules = *loaded
	}
	order, err := rules.Order()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid rules file", err)
	}

	// Load closet
	slog.Debug("loading closet", "path", cfg.ClosetPath)
	c, err := closet.Load(cfg.ClosetPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	// Open history if configured
	var store *history.Store
	if cfg.HistoryDB != "" {
		store, err = history.Open(cfg.HistoryDB)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open history database", err)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Error("error closing history database", "error", closeErr)
			}
		}()
	}

	var exclude []string
	if opts.AvoidWorn > 0 {
		exclude, err = store.RecentPieceNames(cmd.Context(), opts.AvoidWorn)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read recent outfits", err)
		}
		slog.Debug("excluding recently worn pieces", "count", len(exclude))
	}

	// Compile policy
	pol, err := policy.New(c, policy.Options{
		Warmth:        opts.Warmth,
		Comfort:       opts.Comfort,
		Fancy:         opts.Fancy,
		RequiredPiece: opts.Include,
		NeutralColors: rules.NeutralColors,
		ExcludeNames:  exclude,
	})
	if err != nil {
		var unknownErr *policy.UnknownPieceError
		if errors.As(err, &unknownErr) {
			_ = formatter.Error("UNKNOWN_PIECE", unknownErr.Error(), nil)
			return NewExitError(ExitCommandError, unknownErr.Error())
		}
		return WrapExitError(ExitCommandError, "failed to build policy", err)
	}

	if cat := pol.RequiredCategory(); cat != "" && !slices.Contains(order, cat) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("required piece %q needs category %q, which the rules file's category order omits", opts.Include, cat))
	}

	seed := opts.Seed
	if !cmd.Flags().Changed("seed") {
		seed = now().UnixNano()
	}
	slog.Debug("generating outfit", "seed", seed)

	outfit, err := generator.New(c, pol, generator.Options{Seed: seed, Order: order}).Generate()
	if err != nil {
		return outputGenerateError(formatter, err)
	}

	// Record to history
	if store != nil {
		entry := history.Entry{
			ID:            uuid.NewString(),
			CreatedAt:     now(),
			Seed:          seed,
			Warmth:        opts.Warmth,
			Comfort:       opts.Comfort,
			Fancy:         opts.Fancy,
			RequiredPiece: opts.Include,
		}
		for _, cat := range outfit.Order {
			piece := outfit.Pieces[cat]
			entry.Pieces = append(entry.Pieces, history.WornPiece{
				Category: string(cat),
				Name:     piece.Name,
				Filename: piece.Filename,
			})
		}
		if err := store.Record(cmd.Context(), entry); err != nil {
			return WrapExitError(ExitCommandError, "failed to record outfit", err)
		}
		slog.Debug("outfit recorded", "id", entry.ID)
	}

	// Composite image
	imagePath := opts.ImageOut
	if opts.Show && imagePath == "" {
		imagePath = filepath.Join(os.TempDir(), fmt.Sprintf("outfit-%d.png", seed))
	}
	if imagePath != "" {
		if err := render.WriteComposite(cfg.ImagesDir, outfit.Filenames(), imagePath); err != nil {
			var missingErr *render.MissingImageError
			if errors.As(err, &missingErr) {
				_ = formatter.Error("MISSING_IMAGE", missingErr.Error(), nil)
				return NewExitError(ExitCommandError, missingErr.Error())
			}
			return WrapExitError(ExitCommandError, "failed to write composite image", err)
		}
		if opts.Show {
			if err := render.Show(imagePath); err != nil {
				return WrapExitError(ExitCommandError, "failed to open image viewer", err)
			}
		}
	}

	return outputOutfit(formatter, outfit, imagePath)
}

// outputOutfit renders the chosen outfit in the configured format.
func outputOutfit(formatter *OutputFormatter, outfit *generator.Outfit, imagePath string) error {
	if formatter.Format == "json" {
		result := GenerateResult{Seed: outfit.Seed, Image: imagePath}
		for _, cat := range outfit.Order {
			piece := outfit.Pieces[cat]
			result.Pieces = append(result.Pieces, ChosenPiece{
				Category: string(cat),
				Name:     piece.Name,
				Filename: piece.Filename,
			})
		}
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, render.Text(outfit))
	formatter.VerboseLog("seed: %d", outfit.Seed)
	return nil
}

// outputGenerateError maps generator errors to formatted output and
// exit codes. Generation failures are exit code 1.
func outputGenerateError(formatter *OutputFormatter, err error) error {
	var genErr *generator.GenerateError
	if errors.As(err, &genErr) {
		_ = formatter.Error(string(genErr.Code), genErr.Message, genErr.Details)
		return NewExitError(ExitFailure, genErr.Error())
	}
	return WrapExitError(ExitFailure, "generation failed", err)
}

// outputLoadError maps closet load errors to formatted output.
// Load failures are command errors (exit code 2).
func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *closet.LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return NewExitError(ExitCommandError, loadErr.Error())
	}
	return WrapExitError(ExitCommandError, "failed to load closet", err)
}

// resolveConfig merges env configuration with flag overrides.
func resolveConfig(closetPath, imagesDir, db, rulesPath string) (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if closetPath != "" {
		cfg.ClosetPath = closetPath
	}
	if imagesDir != "" {
		cfg.ImagesDir = imagesDir
	}
	if db != "" {
		cfg.HistoryDB = db
	}
	if rulesPath != "" {
		cfg.RulesPath = rulesPath
	}
	return cfg, nil
}

// configureLogging sets the default slog handler based on verbosity.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
