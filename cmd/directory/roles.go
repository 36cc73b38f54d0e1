package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/spf13/cobra"
)

func rolesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List and edit roles",
	}
	cmd.AddCommand(rolesListCmd(g), rolesAddCmd(g), rolesEditCmd(g), rolesDeleteCmd(g))
	return cmd
}

func rolesListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roles in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ctx, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			roles, err := dir.Roles.ListAll(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPERMISSIONS")
			for _, r := range roles {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Name, strings.Join(r.PermissionNames(), ", "))
			}
			return tw.Flush()
		},
	}
}

func rolesAddCmd(g *globals) *cobra.Command {
	var (
		name  string
		perms []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := domain.ParsePermissions(perms)
			if err != nil {
				return err
			}

			dir, ctx, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			form := dir.Roles.OpenForm()
			form.SetName(name)
			for _, p := range parsed {
				form.TogglePermission(p)
			}

			role, err := form.Save(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), role.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Role name")
	cmd.Flags().StringSliceVarP(&perms, "permission", "p", nil, "Permission to grant (Read, Write, Delete); repeatable")
	return cmd
}

func rolesEditCmd(g *globals) *cobra.Command {
	var (
		name    string
		toggles []string
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename a role or toggle its permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flipped := make([]domain.Permission, 0, len(toggles))
			for _, s := range toggles {
				p, err := domain.ParsePermission(s)
				if err != nil {
					return fmt.Errorf("%w: %q", err, s)
				}
				flipped = append(flipped, p)
			}

			dir, ctx, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			form, err := dir.Roles.EditForm(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				form.SetName(name)
			}
			for _, p := range flipped {
				form.TogglePermission(p)
			}

			role, err := form.Save(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", role.ID, role.Name, strings.Join(role.PermissionNames(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New role name")
	cmd.Flags().StringArrayVar(&toggles, "toggle", nil, "Permission to flip on or off; repeatable")
	return cmd
}

func rolesDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a role; unknown ids are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ctx, err := openDirectory(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer dir.Close()

			return dir.Roles.DeleteRole(ctx, args[0])
		},
	}
}
