package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sysdep/internal/app"
)

func newWhereDefinedCommand() *cobra.Command {
	opts := commonOptions{}
	cmd := &cobra.Command{
		Use:     "where-defined <key>",
		Aliases: []string{"where_defined"},
		Short:   "Print the source document that defines a key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhereDefined(cmd.Context(), cmd, opts, args[0])
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

func runWhereDefined(ctx context.Context, cmd *cobra.Command, opts commonOptions, key string) error {
	service := app.NewService()
	result, err := service.WhereDefined(ctx, app.WhereDefinedRequest{
		CacheDir: resolveString(cmd, opts.CacheDir, "cache_dir", "cache-dir"),
		Key:      key,
	})
	if err != nil {
		return err
	}
	fmt.Println(result.Origin)
	return nil
}
