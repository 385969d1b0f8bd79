package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/promptline/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	},
}

var configSetCmd = &cobra.Command{
	Use:     "set KEY VALUE",
	Short:   "Set a value in the config file, keeping comments",
	Example: `  promptline config set history.limit 5000
  promptline config set ui.markdown false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if err := config.SaveValue(path, args[0], args[1]); err != nil {
			return err
		}

		// Re-read so an invalid value is reported now rather than at startup.
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config back: %w", err)
		}
		updated := config.Defaults()
		if err := v.Unmarshal(&updated); err != nil {
			return fmt.Errorf("decoding config: %w", err)
		}
		if err := config.Validate(updated); err != nil {
			return fmt.Errorf("%s written, but the result is invalid: %w", path, err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configSetCmd)
}

func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(config.DefaultDir(), "config.yaml")
}
