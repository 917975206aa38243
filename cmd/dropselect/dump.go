package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dropselect/internal/config"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the saved value of every field",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.NewConfigService(configPath).Load()
		if err != nil {
			return err
		}
		for _, f := range cfg.Fields {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: [%s]\n", f.Name, strings.Join(f.Value, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
