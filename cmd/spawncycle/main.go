// spawncycle 是 KF2 SpawnCycle 的命令行工具：校验、格式化、生成、打包与难度分析
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand 创建根命令并注册全部子命令
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spawncycle",
		Short: "Validate, generate and analyze Killing Floor 2 spawn cycles",
		Long: `spawncycle works with Killing Floor 2 custom spawn cycles written as
"SpawnCycleDefs=" lines. It validates and normalizes cycle files, generates
random cycles from YAML presets, packs cycles into JSON bundles and estimates
per-wave difficulty.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if !verbose {
				log.SetOutput(io.Discard)
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print diagnostic logs to stderr")
	rootCmd.PersistentFlags().Bool("no-store", false, "Do not read or write user settings and presets")

	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newBundleCommand())
	rootCmd.AddCommand(newPresetCommand())
	rootCmd.AddCommand(newDefaultsCommand())
	rootCmd.AddCommand(newRecentCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
