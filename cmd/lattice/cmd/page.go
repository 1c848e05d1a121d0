package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/lattice/internal/layout"
	"github.com/MeKo-Tech/lattice/internal/pipeline"
)

// pageCmd represents the page command.
var pageCmd = &cobra.Command{
	Use:   "page <results.json>",
	Short: "Serialize a recognized page into table-aware markup",
	Long: `Serialize a recognized page into hierarchical markup.

The input file holds the recognizer's page result: page metadata plus
the word stream in reading order. When the page image is available,
ruled tables are detected on it and words falling inside them are
emitted as table rows and cells; everything else becomes flow markup.

Examples:
  lattice page results.json
  lattice page results.json --image scan.png --output page.html
  lattice page results.json --standalone --title "Invoice 42"`,
	Args: cobra.ExactArgs(1),
	RunE: runPage,
}

func init() {
	rootCmd.AddCommand(pageCmd)

	pageCmd.Flags().String("image", "", "page image path (overrides the path in the results file)")
	pageCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	pageCmd.Flags().Bool("standalone", false, "wrap the page in a full XHTML document")
	pageCmd.Flags().String("title", "", "document title for --standalone output")
	pageCmd.Flags().Bool("font-info", false, "include font name and size on word spans")
	pageCmd.Flags().Bool("debug", false, "trace row and column assignment")
}

func runPage(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	res, err := pipeline.LoadPageResult(args[0])
	if err != nil {
		return err
	}
	if img, _ := cmd.Flags().GetString("image"); img != "" {
		res.Page.ImagePath = img
	}

	plCfg := cfg.PipelineConfig()
	if v, _ := cmd.Flags().GetBool("font-info"); v {
		plCfg.Serializer.FontInfo = true
	}
	if v, _ := cmd.Flags().GetBool("debug"); v {
		plCfg.Serializer.Debug = true
	}

	pl, err := pipeline.New(plCfg)
	if err != nil {
		return err
	}
	markup, err := pl.ProcessPage(cmd.Context(), res.Page, res.Words)
	if err != nil {
		return fmt.Errorf("processing page %d: %w", res.Page.Number, err)
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path) //nolint:gosec // G304: user-chosen output path
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	standalone, _ := cmd.Flags().GetBool("standalone")
	if !standalone {
		_, err = fmt.Fprint(out, markup)
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = cfg.Output.Title
	}
	doc, err := layout.NewDocument(out, title, plCfg.Serializer)
	if err != nil {
		return err
	}
	if err := doc.AddPage(markup); err != nil {
		return err
	}
	return doc.Close()
}
