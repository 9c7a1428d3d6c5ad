package command

import (
	"errors"
	"fmt"
	"strings"

	"mathspring/database"
	"mathspring/internal/http-api/dto"
	"mathspring/internal/http-api/repository"
	"mathspring/internal/http-api/service"
	"mathspring/internal/middleware/auth"

	"github.com/spf13/cobra"
)

// createSuperuserCmd bootstraps the first account; the site itself only
// lets existing staff create users
var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create a superuser account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		db, err := connect()
		if err != nil {
			return err
		}
		defer database.Close(db)

		userService := service.NewUserService(repository.NewUserRepository(db))
		user, err := userService.Register(cmd.Context(), nil, dto.RegisterForm{
			Username:        username,
			Email:           email,
			IsSuperuser:     "1",
			IsStaff:         "1",
			Password:        password,
			PasswordConfirm: password,
		})
		var fieldErrs service.FieldErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("superuser not created: %s", describe(fieldErrs))
		}
		if err != nil {
			return fmt.Errorf("failed to create superuser: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Superuser %s created (id %d)\n", user.Username, user.ID)
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hashpassword [password]",
	Short: "Print the stored digest for a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hashed, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hashed)
		return nil
	},
}

var flagMessages = map[string]string{
	service.FlagInvalidUser:      "username already taken",
	service.FlagInvalidEmail:     "email already registered",
	service.FlagInvalidPassword:  "password needs at least 10 letters or digits and nothing else",
	service.FlagPasswordNotMatch: "passwords do not match",
}

func describe(fieldErrs service.FieldErrors) string {
	var msgs []string
	for _, flag := range []string{service.FlagInvalidUser, service.FlagInvalidEmail, service.FlagInvalidPassword, service.FlagPasswordNotMatch} {
		if fieldErrs[flag] {
			msgs = append(msgs, flagMessages[flag])
		}
	}
	return strings.Join(msgs, "; ")
}

func init() {
	createSuperuserCmd.Flags().String("username", "", "Username")
	createSuperuserCmd.Flags().String("email", "", "Email")
	createSuperuserCmd.Flags().String("password", "", "Password")
	createSuperuserCmd.MarkFlagRequired("username")
	createSuperuserCmd.MarkFlagRequired("email")
	createSuperuserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createSuperuserCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}
