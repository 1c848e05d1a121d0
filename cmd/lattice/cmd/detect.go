package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/lattice/internal/lattice"
	"github.com/MeKo-Tech/lattice/internal/utils"
)

// detectCmd represents the detect command.
var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Detect ruled tables in a page image",
	Long: `Detect full-ruled tables in a page image and print the regions and
reconstructed grids as JSON, without serializing any words.

Examples:
  lattice detect scan.png
  lattice detect scan.png --overlay grid.png`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().String("overlay", "", "write a copy of the image with grid lines drawn onto it")
}

type detectedTable struct {
	Box    utils.Box `json:"box"`
	Joints int       `json:"joints"`
	Cols   []int     `json:"cols"`
	Rows   []int     `json:"rows"`
	Cells  int       `json:"cells"`
}

type detectReport struct {
	Image  string          `json:"image"`
	Tables []detectedTable `json:"tables"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	img, err := utils.LoadImage(args[0])
	if err != nil {
		return err
	}
	det, err := lattice.NewDetector(cfg.Detector)
	if err != nil {
		return err
	}
	regions := det.DetectTables(img)
	loc := lattice.NewLocator(regions, cfg.Detector.MergeTolerance)

	report := detectReport{Image: args[0], Tables: []detectedTable{}}
	for i := 0; i < loc.TableCount(); i++ {
		r := loc.Region(i)
		g := loc.Grid(i)
		rows, cols := g.CellCount()
		report.Tables = append(report.Tables, detectedTable{
			Box:    r.Box,
			Joints: r.JointCount(),
			Cols:   g.Cols,
			Rows:   g.Rows,
			Cells:  rows * cols,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("overlay"); path != "" {
		overlay := lattice.OverlayGrid(img, loc)
		if err := imaging.Save(overlay, path); err != nil {
			return fmt.Errorf("saving overlay: %w", err)
		}
	}
	return nil
}
