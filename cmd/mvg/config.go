package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/mvg/internal/config"
	"github.com/muurk/mvg/internal/ui"
)

var forceInit bool

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configCmd groups the config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Long: `Write a configuration file with the default values to the --config path
or the platform config directory. An existing file is only replaced after
confirmation, or with --force.`,
	// A broken file must not stop it from being replaced
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())

	if _, err := os.Stat(path); err == nil && !forceInit {
		ok := p.Confirm(cmd.InOrStdin(), "Config file exists",
			[]string{path, "Every setting will be reset to its default"},
			"Overwrite it?")
		if !ok {
			p.Println("Left unchanged.")
			return nil
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot access config file: %w", err)
	}

	fresh := config.NewConfig()
	if err := fresh.Save(path); err != nil {
		return err
	}

	p.PrintSuccess("Config written",
		ui.Param{Key: "Path", Value: path},
		ui.Param{Key: "API", Value: fresh.API.BaseURL},
		ui.Param{Key: "Version", Value: strconv.Itoa(fresh.Version)},
	)
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, the config file and flags have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where the configuration file is read from",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
