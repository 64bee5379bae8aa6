package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"sysdep/internal/app"
	"sysdep/internal/types"
)

func newCheckCommand() *cobra.Command {
	opts := commonOptions{}
	cmd := &cobra.Command{
		Use:   "check <package>...",
		Short: "Check whether the system dependencies of packages are satisfied",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd, opts, args)
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts commonOptions, packages []string) error {
	common, err := opts.toRequest(cmd)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Check(ctx, app.CheckRequest{CommonRequest: common, Packages: packages})
	if err != nil {
		return err
	}
	if result.Satisfied() {
		fmt.Println("All system dependencies have been satisfied")
		return nil
	}

	fmt.Println("System dependencies have not been satisfied:")
	names := make([]types.InstallerName, 0, len(result.Missing))
	for name := range result.Missing {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, name := range names {
		for _, token := range result.Missing[name] {
			fmt.Printf("%s\t%s\n", name, token)
		}
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("unsatisfied system dependencies")
}
