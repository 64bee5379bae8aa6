package cli

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sysdep/internal/app"
	"sysdep/internal/types"
)

// commonOptions holds the flags shared by the workspace-facing
// subcommands.
type commonOptions struct {
	CacheDir    string
	Os          string
	Workspace   []string
	DepTypes    []string
	IncludeDeps bool
}

func addCommonFlags(cmd *cobra.Command, opts *commonOptions) {
	cmd.Flags().StringVarP(&opts.CacheDir, "cache-dir", "c", "", "Dependency database cache directory")
	cmd.Flags().StringVar(&opts.Os, "os", "", "Override OS detection as name:version")
	cmd.Flags().StringSliceVarP(&opts.Workspace, "workspace", "w", []string{"."}, "Workspace root(s) scanned for package manifests")
	cmd.Flags().StringArrayVarP(&opts.DepTypes, "dependency-types", "t", nil, "Dependency types in scope (repeatable)")
	cmd.Flags().BoolVarP(&opts.IncludeDeps, "include-deps", "i", false, "Also process packages the requested ones depend on")

	_ = viper.BindPFlag("cache_dir", cmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("os_override", cmd.Flags().Lookup("os"))
	_ = viper.BindPFlag("workspace", cmd.Flags().Lookup("workspace"))
}

// toRequest validates the flag values and builds the shared request.
func (o commonOptions) toRequest(cmd *cobra.Command) (app.CommonRequest, error) {
	depTypes, err := parseDependencyTypes(o.DepTypes)
	if err != nil {
		return app.CommonRequest{}, err
	}
	return app.CommonRequest{
		CacheDir:        resolveString(cmd, o.CacheDir, "cache_dir", "cache-dir"),
		Workspace:       resolveStrings(cmd, o.Workspace, "workspace", "workspace"),
		OsOverride:      resolveString(cmd, o.Os, "os_override", "os"),
		DependencyTypes: depTypes,
		IncludeDeps:     o.IncludeDeps,
	}, nil
}

func parseDependencyTypes(values []string) ([]types.DependencyType, error) {
	var parsed []types.DependencyType
	for _, value := range values {
		depType := types.DependencyType(value)
		known := false
		for _, candidate := range types.AllDependencyTypes {
			if depType == candidate {
				known = true
				break
			}
		}
		if !known {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown dependency type '%s'", value))
		}
		parsed = append(parsed, depType)
	}
	return parsed, nil
}

// resolveString prefers an explicitly set flag, then the viper value
// (env or config file), then the flag's default.
func resolveString(cmd *cobra.Command, value string, viperKey string, flagName string) string {
	if cmd != nil && cmd.Flags().Changed(flagName) {
		return value
	}
	if v := viper.GetString(viperKey); v != "" {
		return v
	}
	return value
}

func resolveStrings(cmd *cobra.Command, value []string, viperKey string, flagName string) []string {
	if cmd != nil && cmd.Flags().Changed(flagName) {
		return value
	}
	if v := viper.GetStringSlice(viperKey); len(v) > 0 {
		return v
	}
	return value
}
