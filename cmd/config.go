package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pomo/internal/config"
	"github.com/zjrosen/pomo/internal/ui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the pomo config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented default config file",
	Long: `Write the default config with comments to path. Without a path the
--config flag is used, then ~/.config/pomo/config.yaml. An existing file is
never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one config value, keeping comments",
	Long: `Set a single value in the config file using dotted keys, for example:

  pomo config set mode countup
  pomo config set keys.stop p
  pomo config set theme.preset nord
  pomo config set theme.colors.clock.running "#FF0000"

The file is checked before it is written; an invalid value leaves it untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in theme presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range styles.PresetNames() {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", name, styles.Presets[name].Description)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pomo version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pomo %s\n", rootCmd.Version)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configSetCmd, configPresetsCmd)
	rootCmd.AddCommand(configCmd, versionCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		return fmt.Errorf("no config path given and no home directory found")
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := config.Locate(cfgFile)
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		return fmt.Errorf("no config file found and no home directory found")
	}

	if err := config.SetValue(path, args[0], args[1]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
	return nil
}
