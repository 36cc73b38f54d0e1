package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func usersCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and edit users",
	}
	cmd.AddCommand(usersListCmd(g), usersAddCmd(g), usersEditCmd(g), usersDeleteCmd(g), usersOptionsCmd(g))
	return cmd
}

func usersListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ctx, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			users, err := dir.Users.ListAll(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, status(u.Active))
			}
			return tw.Flush()
		},
	}
}

// userFlags are the user form fields; only flags given on the command line
// are applied.
type userFlags struct {
	name, email, role string
	active            bool
}

func (f *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "User name")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address (not validated)")
	cmd.Flags().StringVar(&f.role, "role", "", "Role name; see 'users options'")
	cmd.Flags().BoolVar(&f.active, "active", false, "Mark the user active")
}

type userSetter interface {
	SetName(string)
	SetEmail(string)
	SelectRole(string)
	SetActive(bool)
}

func (f *userFlags) apply(cmd *cobra.Command, form userSetter) {
	if cmd.Flags().Changed("name") {
		form.SetName(f.name)
	}
	if cmd.Flags().Changed("email") {
		form.SetEmail(f.email)
	}
	if cmd.Flags().Changed("role") {
		form.SelectRole(f.role)
	}
	if cmd.Flags().Changed("active") {
		form.SetActive(f.active)
	}
}

func usersAddCmd(g *globals) *cobra.Command {
	flags := &userFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ctx, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			form := dir.Users.OpenForm()
			flags.apply(cmd, form)

			u, err := form.Save(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func usersEditCmd(g *globals) *cobra.Command {
	flags := &userFlags{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a user's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ctx, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			form, err := dir.Users.EditForm(args[0])
			if err != nil {
				return err
			}
			flags.apply(cmd, form)

			u, err := form.Save(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, status(u.Active))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func usersDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user; unknown ids are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ctx, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			return dir.Users.DeleteUser(ctx, args[0])
		},
	}
}

func usersOptionsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the role names offered by the user form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			for _, name := range dir.Users.OpenForm().RoleOptions() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func status(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}
