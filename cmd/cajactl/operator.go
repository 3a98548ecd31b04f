package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/cambio/internal/operator"
)

var (
	operatorName     string
	operatorEmail    string
	operatorPassword string
	operatorRole     string
)

var operatorCmd = &cobra.Command{
	Use:   "operator",
	Short: "Manage operators",
}

var operatorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an operator",
	Long: `Create an operator that can sign in to the API.

Examples:
  # First administrator
  cajactl operator create --name Ana --email ana@example.com --password s3cret --role admin`,
	RunE: runOperatorCreate,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	// Hashing needs no configuration.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := operator.HashPassword(args[0], 0)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), hash)

		return nil
	},
}

func init() {
	flags := operatorCreateCmd.Flags()
	flags.StringVar(&operatorName, "name", "", "Display name")
	flags.StringVar(&operatorEmail, "email", "", "Login email")
	flags.StringVar(&operatorPassword, "password", "", "Initial password")
	flags.StringVar(&operatorRole, "role", string(operator.RoleOperator), "admin, operator or cashier")

	for _, name := range []string{"name", "email", "password"} {
		_ = operatorCreateCmd.MarkFlagRequired(name)
	}

	operatorCmd.AddCommand(operatorCreateCmd)
	rootCmd.AddCommand(operatorCmd, hashPasswordCmd)
}

func runOperatorCreate(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	op, err := a.Services.Operators.Create(cmd.Context(), operator.CreateParams{
		Name:     operatorName,
		Email:    operatorEmail,
		Password: operatorPassword,
		Role:     operator.Role(operatorRole),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created operator %s (%s, %s)\n", op.ID, op.Email, op.Role)

	return nil
}
