package main

import (
	"fmt"
	"log"
	"os"

	spawncycler "github.com/gonewx/spawncycler"
	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/gonewx/spawncycler/pkg/cycle"
	"github.com/gonewx/spawncycler/pkg/embedded"
	"github.com/gonewx/spawncycler/pkg/settings"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"
)

// app 命令共享的运行环境
type app struct {
	settings *settings.SettingsManager
	presets  *settings.PresetStore
	defaults *config.AnalyzerConfig
	persist  bool
}

// openApp 初始化内置数据与用户存储
// --no-store 或存储不可用时以降级模式运行，设置只保存在内存中
func openApp(cmd *cobra.Command) (*app, error) {
	if !embedded.IsInitialized() {
		embedded.Init(spawncycler.DataFS)
	}

	defaults, err := config.LoadEmbeddedAnalyzerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer defaults: %w", err)
	}

	var manager *gdata.Manager
	if noStore, _ := cmd.Flags().GetBool("no-store"); !noStore {
		manager = settings.Open()
	}

	return &app{
		settings: settings.NewSettingsManager(manager, defaults),
		presets:  settings.NewPresetStore(manager),
		defaults: defaults,
		persist:  manager != nil,
	}, nil
}

// remember 记录最近使用的文件并保存设置
func (a *app) remember(paths ...string) {
	for _, p := range paths {
		a.settings.AddRecentFile(p)
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[CLI] Warning: %v", err)
	}
}

// writeCycleLines 将行写入 out 指定的文件，out 为空时写到标准输出
func writeCycleLines(cmd *cobra.Command, out string, lines []string) error {
	if out == "" {
		return cycle.WriteLines(cmd.OutOrStdout(), lines)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := cycle.WriteLines(f, lines); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return f.Close()
}
