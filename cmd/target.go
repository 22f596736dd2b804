package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Target domain utilities",
}

var targetValidateCmd = &cobra.Command{
	Use:   "validate <domain>",
	Short: "Check whether a domain is a valid, allowed scan target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := app.Validator.Validate(args[0])
		if !res.Valid {
			fmt.Printf("%s %s\n", colorError("✗"), res.Reason)
			return &TargetBlockedError{Domain: args[0], Reason: res.Reason}
		}

		fmt.Printf("%s %s is a valid scan target\n", colorSuccess("✓"), res.Normalized)
		for _, warning := range res.Warnings {
			fmt.Printf("%s %s\n", colorWarn("!"), warning)
		}
		return nil
	},
}

func init() {
	targetCmd.AddCommand(targetValidateCmd)
}
