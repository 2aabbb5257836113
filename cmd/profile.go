package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var profileFields = []string{
	"username", "first_name", "last_name", "bio", "location",
	"availability", "experience_level", "response_time",
}

var profileFlagValues map[string]*string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Run:   runProfileShow,
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit profile fields",
	Run:   runProfileEdit,
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar <image-file>",
	Short: "Upload a new avatar (JPEG, PNG or GIF, max 5MB)",
	Args:  cobra.ExactArgs(1),
	Run:   runProfileAvatar,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileEditCmd, profileAvatarCmd)

	profileFlagValues = make(map[string]*string, len(profileFields))
	for _, name := range profileFields {
		flag := name
		profileFlagValues[name] = profileEditCmd.Flags().String(flag, "", "new "+flag)
	}
}

func runProfileShow(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	u, err := app.Profile.Get(context.Background())
	if err != nil {
		app.renderError("loading your profile", err)
		return
	}

	fmt.Printf("%s <%s>\n", u.FullName(), u.Email)
	fmt.Printf("  bio:          %s\n", u.Bio)
	fmt.Printf("  location:     %s\n", u.Location)
	fmt.Printf("  availability: %s\n", u.Availability)
	fmt.Printf("  experience:   %s\n", u.ExperienceLevel)
	fmt.Printf("  responds:     %s\n", u.ResponseTime)
	fmt.Printf("  rating %.1f over %d completed swaps\n", u.Rating, u.CompletedSwaps)
}

func runProfileEdit(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	ctx := context.Background()
	u, err := app.Profile.Get(ctx)
	if err != nil {
		app.renderError("loading your profile", err)
		return
	}

	f := app.Profile.EditForm(u)
	for _, name := range profileFields {
		if cmd.Flags().Changed(name) {
			f.Set(name, *profileFlagValues[name])
		}
	}
	if !f.Dirty() {
		fmt.Println("Nothing to change; pass at least one field flag.")
		return
	}

	updated, err := app.Profile.Submit(ctx, f)
	if err != nil {
		for field, msg := range f.Errors() {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		if f.Valid() {
			app.renderError("saving your profile", err)
		}
		return
	}
	fmt.Printf("Profile saved for %s.\n", updated.FullName())
}

func runProfileAvatar(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	url, err := app.Profile.UploadAvatar(context.Background(), args[0])
	if err != nil {
		app.renderError("uploading the avatar", err)
		return
	}
	fmt.Printf("Avatar updated: %s\n", url)
}
