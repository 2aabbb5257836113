package cmd

import (
	"context"
	"fmt"

	"skillswap-cli/internal/domain/user"
	interfaces "skillswap-cli/internal/interfaces/api"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	loginRole     string

	regEmail     string
	regUsername  string
	regFirstName string
	regLastName  string
	regPassword  string
	regConfirm   string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Account and session management",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the marketplace",
	Run:   runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Run:   runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Run:   runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	Run:   runWhoami,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.Flags().StringVar(&loginRole, "role", user.RoleUser, "role to sign in as (user or admin)")

	registerCmd.Flags().StringVar(&regEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&regUsername, "username", "", "unique username")
	registerCmd.Flags().StringVar(&regFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&regLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password (min 6 characters)")
	registerCmd.Flags().StringVar(&regConfirm, "password-confirm", "", "password confirmation")
}

func runLogin(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	identity, err := app.Auth.Login(context.Background(), loginEmail, loginPassword, loginRole)
	if err != nil {
		app.renderError("signing in", err)
		return
	}

	fmt.Printf("Signed in as %s <%s>\n", identity.User.FullName(), identity.User.Email)
	if identity.Administrator {
		fmt.Println("Administrator access enabled.")
	}
}

func runLogout(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	if err := app.Auth.Logout(context.Background()); err != nil {
		app.renderError("signing out", err)
		return
	}
	fmt.Println("Signed out.")
}

func runRegister(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	u, err := app.Auth.Register(context.Background(), interfaces.RegisterRequest{
		Email:           regEmail,
		Username:        regUsername,
		FirstName:       regFirstName,
		LastName:        regLastName,
		Password:        regPassword,
		PasswordConfirm: regConfirm,
	})
	if err != nil {
		app.renderError("registering", err)
		return
	}
	fmt.Printf("Account created for %s. Sign in with 'skillswap auth login'.\n", u.Email)
}

func runWhoami(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	identity, err := app.Auth.Current(context.Background())
	if err != nil {
		app.renderError("checking the session", err)
		return
	}

	u := identity.User
	fmt.Printf("%s <%s>\n", u.FullName(), u.Email)
	fmt.Printf("  rating %.1f, %d completed swaps\n", u.Rating, u.CompletedSwaps)
	if identity.Administrator {
		fmt.Println("  administrator")
	}
}
