package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gonewx/spawncycler/pkg/analyzer"
	"github.com/gonewx/spawncycler/pkg/chart"
	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/gonewx/spawncycler/pkg/cycle"
	"github.com/gonewx/spawncycler/pkg/report"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Estimate the difficulty of each wave in a spawn cycle",
		Long: `Expands every wave into its spawn sequence, prints zed histograms and
samples the difficulty curve. Parameters not given on the command line come
from the saved defaults (see "spawncycle defaults").`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wave, _ := cmd.Flags().GetInt("wave")
			chartPath, _ := cmd.Flags().GetString("chart")
			thumbWidth, _ := cmd.Flags().GetInt("thumbnail")

			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			sc, err := cycle.LoadCycle(args[0])
			if err != nil {
				return err
			}
			a.remember(args[0])

			idx, ok := analyzer.GameLengthIndex(sc.Len())
			if !ok {
				return fmt.Errorf("%s: wave count must be 4, 7 or 10, got %d", args[0], sc.Len())
			}
			cfg, err := analyzerConfigFromFlags(cmd, a.settings.GetSettings().AnalyzerConfig())
			if err != nil {
				return err
			}
			params, err := analyzer.ParamsFromConfig(cfg, idx)
			if err != nil {
				return err
			}

			var r *analyzer.CycleReport
			if wave == 0 {
				r, err = analyzer.SampleCycle(sc, params)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report.Summary(r))
			} else {
				wr, err := analyzer.ReportWave(sc, wave-1, params)
				if err != nil {
					return err
				}
				r = &analyzer.CycleReport{Params: params, Waves: []analyzer.WaveReport{wr}, Peak: wr.Peak, Average: wr.Average}
				fmt.Fprint(cmd.OutOrStdout(), report.Wave(wr))
			}

			if chartPath == "" {
				if thumbWidth > 0 {
					return fmt.Errorf("--thumbnail requires --chart")
				}
				return nil
			}
			opts := chart.DefaultOptions()
			opts.Title = fmt.Sprintf("%s (%s, WSF %d)", args[0], config.DifficultyName(params.Difficulty), params.WaveSizeFakes)
			img, err := chart.RenderCycle(r, opts)
			if err != nil {
				return err
			}
			if err := chart.Save(chartPath, img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", chartPath)

			if thumbWidth <= 0 {
				return nil
			}
			ext := filepath.Ext(chartPath)
			thumbPath := strings.TrimSuffix(chartPath, ext) + "_thumb" + ext
			if err := chart.Save(thumbPath, chart.Thumbnail(img, thumbWidth)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Thumbnail written to %s\n", thumbPath)
			return nil
		},
	}

	cmd.Flags().Int("wave", 0, "Analyze a single wave (1-based, 0 for all)")
	addAnalyzerFlags(cmd)
	cmd.Flags().String("chart", "", "Write the difficulty curve to a PNG file")
	cmd.Flags().Int("thumbnail", 0, "Also write a thumbnail of the chart with this width (<chart>_thumb.png)")
	return cmd
}

// addAnalyzerFlags 注册分析参数选项
func addAnalyzerFlags(cmd *cobra.Command) {
	cmd.Flags().String("difficulty", "", "normal, hard, suicidal or hoe")
	cmd.Flags().Int("wsf", 0, "Wave size fakes (0-128)")
	cmd.Flags().Int("max-monsters", 0, "Maximum zeds alive at once")
	cmd.Flags().Bool("scale-by-wsf", true, "Scale scores by the wave size fakes modifier")
}

// analyzerConfigFromFlags 将显式指定的选项叠加在 base 上并校验
func analyzerConfigFromFlags(cmd *cobra.Command, base *config.AnalyzerConfig) (*config.AnalyzerConfig, error) {
	cfg := *base
	if cmd.Flags().Changed("difficulty") {
		cfg.Difficulty, _ = cmd.Flags().GetString("difficulty")
	}
	if cmd.Flags().Changed("wsf") {
		cfg.WaveSizeFakes, _ = cmd.Flags().GetInt("wsf")
	}
	if cmd.Flags().Changed("max-monsters") {
		cfg.MaxMonsters, _ = cmd.Flags().GetInt("max-monsters")
	}
	if cmd.Flags().Changed("scale-by-wsf") {
		scale, _ := cmd.Flags().GetBool("scale-by-wsf")
		cfg.ScaleByWSF = &scale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
