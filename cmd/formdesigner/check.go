package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdesigner"
)

var checkCmd = &cobra.Command{
	Use:   "check [definitions.yaml]",
	Short: "Validate a form definitions file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadSettings()
			if err != nil {
				return err
			}
			path = cfg.DefinitionsPath
		}

		defs, err := formdesigner.LoadDefinitionsFile(path)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range defs.Names() {
			def, _ := defs.Get(name)
			fmt.Fprintf(out, "%s\t%d fields\n", name, len(def.Fields))
		}
		fmt.Fprintf(out, "%s: %d form definitions OK\n", path, defs.Len())
		return nil
	},
}
