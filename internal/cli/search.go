package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sysdep/internal/app"
)

func newSearchCommand() *cobra.Command {
	opts := commonOptions{}
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find keys or packages close to a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, opts, args[0])
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, opts commonOptions, query string) error {
	common, err := opts.toRequest(cmd)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Search(ctx, app.SearchRequest{CommonRequest: common, Query: query})
	if err != nil {
		return err
	}
	if len(result.Keys) > 0 {
		fmt.Println("Closest keys:")
		for _, key := range result.Keys {
			fmt.Printf("  %s\n", key)
		}
	}
	if len(result.Packages) > 0 {
		fmt.Println("Closest packages:")
		for _, match := range result.Packages {
			fmt.Printf("  %s: %s\n", match.Key, strings.Join(match.Tokens, " "))
		}
	}
	return nil
}
