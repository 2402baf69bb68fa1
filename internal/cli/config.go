package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/ariel-frischer/whatsnew/internal/config"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage whatsnew configuration",
	Long: `Manage whatsnew configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (WHATSNEW_*)
  2. Project config (.whatsnew/config.yml, or .whatsnew/config.json)
  3. User config (~/.config/whatsnew/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  whatsnew config show

  # Keep read state in SQLite
  whatsnew config set state_backend sqlite

  # Write a commented config template
  whatsnew config init --user`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		_, err = cfg.WriteTo(cmd.OutOrStdout())
		return err
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTYPE\tDESCRIPTION")
		for _, key := range config.SortedKeys() {
			schema := config.KnownKeys[key]
			typ := schema.Type.String()
			if len(schema.AllowedValues) > 0 {
				typ = strings.Join(schema.AllowedValues, "|")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", key, typ, schema.Description)
		}
		return tw.Flush()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config, or in the user config
with --user. The value is validated against the key's type first.`,
	Example: `  whatsnew config set profile work
  whatsnew config set remote_timeout 2s --user`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configTargetPath(cmd)
		if err != nil {
			return err
		}

		if err := config.SetValue(path, args[0], args[1]); err != nil {
			var unknown config.ErrUnknownKey
			if errors.As(err, &unknown) {
				return clierrors.UnknownConfigKey(unknown.Key)
			}
			return clierrors.ArgumentError(err.Error(), "whatsnew config set <key> <value>",
				"List valid keys and values with: whatsnew config keys")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := configTargetPath(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return clierrors.ArgumentError(
				fmt.Sprintf("config already exists: %s", path), "",
				"Use --force to overwrite it",
			)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.GroupID = GroupSettings
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configKeysCmd, configSetCmd, configInitCmd)

	configSetCmd.Flags().Bool("user", false, "Write to the user config instead of the project config")
	configInitCmd.Flags().Bool("user", false, "Write to the user config instead of the project config")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config")
}

// configTargetPath resolves the file written by 'config set' and 'config init'.
func configTargetPath(cmd *cobra.Command) (string, error) {
	if user, _ := cmd.Flags().GetBool("user"); user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.Wrap(err, clierrors.Configuration, "cannot resolve user config directory")
		}
		return path, nil
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.ProjectConfigPath(), nil
}
