package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sysdep/internal/app"
)

type installOptions struct {
	common    commonOptions
	Simulate  bool
	Reinstall bool
	Quiet     bool
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install <package>...",
		Short: "Install the missing system dependencies of packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), cmd, opts, args)
		},
	}
	addCommonFlags(cmd, &opts.common)
	cmd.Flags().BoolVarP(&opts.Simulate, "simulate", "s", false, "Print install commands without executing them")
	cmd.Flags().BoolVarP(&opts.Reinstall, "reinstall", "r", false, "Install every dependency, present or not")
	cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "Render non-interactive install commands")
	_ = viper.BindPFlag("simulate", cmd.Flags().Lookup("simulate"))
	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions, packages []string) error {
	common, err := opts.common.toRequest(cmd)
	if err != nil {
		return err
	}
	service := app.NewService()
	result, err := service.Install(ctx, app.InstallRequest{
		CommonRequest: common,
		Packages:      packages,
		Simulate:      opts.Simulate,
		Reinstall:     opts.Reinstall,
		Quiet:         opts.Quiet,
	})
	if err != nil {
		return err
	}

	if opts.Simulate {
		for _, group := range result.Groups {
			fmt.Printf("#[%s] Installation commands:\n", group.Installer)
			for _, command := range group.Commands {
				fmt.Printf("  %s\n", command.String())
			}
		}
		return nil
	}
	fmt.Println("All required system dependencies installed")
	return nil
}
