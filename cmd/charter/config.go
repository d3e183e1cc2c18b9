// Config command prints workspace configuration.
package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/charter/internal/index"
	"github.com/mesh-intelligence/charter/internal/paths"
	"github.com/mesh-intelligence/charter/internal/workspace"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyProjectName = "project_name"
	cfgKeyPrefix      = "prefix"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print workspace configuration",
	Long: `Config prints the workspace's config.yaml settings together with the
stored configuration rows of the index (short code prefix, workspace id,
per-type counters).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}

		cfg, err := loadWorkspaceConfig(svc)
		if err != nil {
			return err
		}

		stored, err := storedConfig(svc)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]any{
				"workspace":    svc.Root,
				"project_name": cfg.GetString(cfgKeyProjectName),
				"prefix":       cfg.GetString(cfgKeyPrefix),
				"stored":       stored,
			})
		}

		fmt.Println("workspace:   ", svc.Root)
		fmt.Println("project_name:", cfg.GetString(cfgKeyProjectName))
		fmt.Println("prefix:      ", cfg.GetString(cfgKeyPrefix))
		keys := make([]string, 0, len(stored))
		for k := range stored {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-13s %s\n", k+":", stored[k])
		}
		return nil
	},
}

// loadWorkspaceConfig reads config.yaml from the workspace root using Viper.
// A missing file is not an error.
func loadWorkspaceConfig(svc *workspace.Service) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(svc.Root)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// storedConfig reads the configuration table of the workspace's index.
func storedConfig(svc *workspace.Service) (map[string]string, error) {
	store, err := index.Open(filepath.Join(svc.Root, paths.DBFileName))
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.AllConfig()
}
