package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sysdep/internal/app"
)

func newKeysCommand() *cobra.Command {
	opts := commonOptions{}
	cmd := &cobra.Command{
		Use:   "keys <package>...",
		Short: "List the dependency keys declared by packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd.Context(), cmd, opts, args)
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

func runKeys(ctx context.Context, cmd *cobra.Command, opts commonOptions, packages []string) error {
	common, err := opts.toRequest(cmd)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Keys(ctx, app.KeysRequest{CommonRequest: common, Packages: packages})
	if err != nil {
		return err
	}
	for _, key := range result.Keys {
		fmt.Println(key)
	}
	return nil
}
