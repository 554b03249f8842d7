// Package cli wires the envoke operations into a cobra command tree. All
// dependencies are injected so tests can run commands against scripted
// prompts and buffered output.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/envoke/internal/envoke"
)

// NewRootCommand constructs the root cobra command for envoke.
func NewRootCommand(svc *envoke.Service, prompter Prompter, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "envoke",
		Short:         "Manage environment profiles",
		Long:          "envoke manages named environment profiles and keeps one active through a .env symlink.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.AddCommand(newInitCommand(svc, stdout))
	cmd.AddCommand(newCreateCommand(svc, stdout))
	cmd.AddCommand(newSwitchCommand(svc, prompter, stdout))
	cmd.AddCommand(newRemoveCommand(svc, prompter, stdout))
	cmd.AddCommand(newListCommand(svc, stdout))
	cmd.AddCommand(newCurrentCommand(svc, stdout))

	return cmd
}

func newInitCommand(svc *envoke.Service, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the profile directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Init(); err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Successfully initialized!")
			return nil
		},
	}
}

func newCreateCommand(svc *envoke.Service, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "create <profile>",
		Short: "Create a new profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			path, err := svc.Create(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Profile %s created at %s\n", name, path)
			return nil
		},
	}
}

func newSwitchCommand(svc *envoke.Service, prompter Prompter, stdout io.Writer) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "switch [profile]",
		Short: "Switch to a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := resolveProfileArg(svc, prompter, args, "Select profile to activate")
			if err != nil {
				return err
			}
			if err := svc.Switch(name, force); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Profile `%s` linked to .env\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Override the existing env without checks.")
	return cmd
}

func newRemoveCommand(svc *envoke.Service, prompter Prompter, stdout io.Writer) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove [profile]",
		Short: "Delete a profile - cannot be undone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := resolveProfileArg(svc, prompter, args, "Select profile to remove")
			if err != nil {
				return err
			}

			if !yes {
				confirmed, err := prompter.Confirm(fmt.Sprintf("Remove profile %s? This cannot be undone", name), false)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(stdout, "Remove cancelled.")
					return nil
				}
			}

			unlinked, err := svc.Remove(name)
			if unlinked {
				fmt.Fprintln(stdout, "Unlinking .env")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Profile %s removed.\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt.")
	return cmd
}

func newListCommand(svc *envoke.Service, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := svc.List()
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(stdout, "No profiles found. Run `envoke create <profile>` to get started!")
				return nil
			}
			for _, profile := range profiles {
				fmt.Fprintln(stdout, profile)
			}
			return nil
		},
	}
}

func newCurrentCommand(svc *envoke.Service, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Display the current active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := svc.Current()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, name)
			return nil
		},
	}
}

// resolveProfileArg returns the profile named on the command line, or prompts
// for one when the argument was omitted.
func resolveProfileArg(svc *envoke.Service, prompter Prompter, args []string, label string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	profiles, err := svc.List()
	if err != nil {
		return "", err
	}
	if len(profiles) == 0 {
		return "", errors.New("No profiles found. Run `envoke create <profile>` to get started!")
	}

	_, selected, err := prompter.Select(label, profiles)
	if err != nil {
		return "", err
	}
	return selected, nil
}
