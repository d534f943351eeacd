package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/kelseymakesthings/auto-outfit/internal/closet"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Closet   string
	Category string
	Query    string
}

// ListResult is the success payload of the list command.
type ListResult struct {
	Categories map[string][]closet.Piece `json:"categories"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List closet contents",
		Long: `List the pieces in the closet file.

Pieces can be filtered by category or by an arbitrary JSONPath query
over the closet document.

Example:
  outfit list
  outfit list --category tops
  outfit list --query '$.tops[?(@.attributes.fancy == true)].name'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Closet, "closet", "", "path to closet file (default $OUTFIT_CLOSET or closet.json)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "only list this category (tops|bottoms|jackets|shoes)")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "JSONPath query over the closet document")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := resolveConfig(opts.Closet, "", "", "")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve configuration", err)
	}

	if opts.Query != "" {
		return runListQuery(formatter, cfg.ClosetPath, opts.Query)
	}

	c, err := closet.Load(cfg.ClosetPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	categories := closet.DefaultOrder
	if opts.Category != "" {
		cat, ok := categoryFromKey(opts.Category)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown category %q", opts.Category))
		}
		categories = []closet.Category{cat}
	}

	if formatter.Format == "json" {
		result := ListResult{Categories: make(map[string][]closet.Piece)}
		for _, cat := range categories {
			result.Categories[cat.Key()] = c.Pieces(cat)
		}
		return formatter.Success(result)
	}

	for _, cat := range categories {
		fmt.Fprintf(formatter.Writer, "%s:\n", cat.Key())
		for _, p := range c.Pieces(cat) {
			fmt.Fprintf(formatter.Writer, "  %s  (%s)\n", p.Name, describeAttributes(p.Attributes))
		}
	}
	return nil
}

// runListQuery evaluates a JSONPath expression against the raw closet
// document and prints the matches.
func runListQuery(formatter *OutputFormatter, closetPath, query string) error {
	root, _, err := closet.LoadRaw(closetPath)
	if err != nil {
		var loadErr *closet.LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
		return WrapExitError(ExitCommandError, "failed to load closet", err)
	}

	expr, err := jp.ParseString(query)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid jsonpath %q", query), err)
	}

	matches := expr.Get(root)

	if formatter.Format == "json" {
		return formatter.Success(matches)
	}

	for _, m := range matches {
		fmt.Fprintln(formatter.Writer, oj.JSON(m))
	}
	return nil
}

// describeAttributes renders piece attributes as a short summary.
func describeAttributes(a closet.Attributes) string {
	parts := []string{a.Color, fmt.Sprintf("warmth %d", a.Warmth), fmt.Sprintf("comfort %d", a.Comfort)}
	if a.Fancy {
		parts = append(parts, "fancy")
	}
	if a.Loose {
		parts = append(parts, "loose")
	}
	return strings.Join(parts, ", ")
}

// categoryFromKey maps a closet file key ("tops") to its category.
func categoryFromKey(key string) (closet.Category, bool) {
	for _, cat := range closet.DefaultOrder {
		if cat.Key() == key {
			return cat, true
		}
	}
	return "", false
}
