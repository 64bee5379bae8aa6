package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sysdep/internal/app"
)

func newWhatNeedsCommand() *cobra.Command {
	opts := commonOptions{}
	cmd := &cobra.Command{
		Use:     "what-needs <key>",
		Aliases: []string{"what_needs"},
		Short:   "List the workspace packages that depend on a key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhatNeeds(cmd.Context(), cmd, opts, args[0])
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

func runWhatNeeds(ctx context.Context, cmd *cobra.Command, opts commonOptions, key string) error {
	common, err := opts.toRequest(cmd)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.WhatNeeds(ctx, app.WhatNeedsRequest{CommonRequest: common, Key: key})
	if err != nil {
		return err
	}
	for _, name := range result.Packages {
		fmt.Println(name)
	}
	return nil
}
