package cmd

import (
	"context"
	"fmt"
	"strconv"

	"skillswap-cli/internal/domain/skill"

	"github.com/spf13/cobra"
)

var (
	skillAddRole        string
	skillAddProficiency string
	skillAvailableRole  string
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage the skills you offer and want",
}

var skillsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the skill catalog",
	Run:   runSkillsCatalog,
}

var skillsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your attached skills",
	Run:   runSkillsMine,
}

var skillsAddCmd = &cobra.Command{
	Use:   "add <skill-name>",
	Short: "Attach a skill to your profile",
	Long: `Attach a skill to your profile in the offered or wanted role.
Adding a skill you already have in that role does nothing.`,
	Args: cobra.ExactArgs(1),
	Run:  runSkillsAdd,
}

var skillsRemoveCmd = &cobra.Command{
	Use:   "remove <user-skill-id>",
	Short: "Detach a skill from your profile",
	Args:  cobra.ExactArgs(1),
	Run:   runSkillsRemove,
}

var skillsAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List catalog skills you have not attached yet in a role",
	Run:   runSkillsAvailable,
}

func init() {
	rootCmd.AddCommand(skillsCmd)
	skillsCmd.AddCommand(skillsCatalogCmd, skillsMineCmd, skillsAddCmd, skillsRemoveCmd, skillsAvailableCmd)

	skillsAddCmd.Flags().StringVar(&skillAddRole, "role", skill.RoleOffered, "offered or wanted")
	skillsAddCmd.Flags().StringVar(&skillAddProficiency, "proficiency", "", "beginner, intermediate, advanced or expert")
	skillsAvailableCmd.Flags().StringVar(&skillAvailableRole, "role", skill.RoleOffered, "offered or wanted")
}

func runSkillsCatalog(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	catalog, err := app.Skills.Catalog(context.Background())
	if err != nil {
		app.renderError("loading the skill catalog", err)
		return
	}
	for _, sk := range catalog {
		fmt.Printf("#%d  %-30s %s\n", sk.ID, sk.Name, sk.Category)
	}
}

func runSkillsMine(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	mine, err := app.Skills.Attached(context.Background())
	if err != nil {
		app.renderError("loading your skills", err)
		return
	}
	for _, us := range mine {
		line := fmt.Sprintf("#%d  %-30s %s", us.ID, us.SkillName, us.SkillType)
		if us.ProficiencyLevel != "" {
			line += " (" + us.ProficiencyLevel + ")"
		}
		if us.Status == skill.StatusRejected {
			line += " [rejected: " + us.RejectionReason + "]"
		} else if us.Status == skill.StatusPending {
			line += " [awaiting approval]"
		}
		fmt.Println(line)
	}
}

func runSkillsAdd(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	us, err := app.Skills.Add(context.Background(), args[0], skillAddRole, skillAddProficiency)
	if err != nil {
		app.renderError("adding the skill", err)
		return
	}
	if us == nil {
		fmt.Printf("%q is already in your %s skills.\n", args[0], skillAddRole)
		return
	}
	fmt.Printf("Attached %q as %s (#%d).\n", us.SkillName, us.SkillType, us.ID)
}

func runSkillsRemove(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("Invalid user-skill id %q\n", args[0])
		return
	}

	if err := app.Skills.Remove(context.Background(), id); err != nil {
		app.renderError("removing the skill", err)
		return
	}
	fmt.Printf("Removed user skill #%d.\n", id)
}

func runSkillsAvailable(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	available, err := app.Skills.Available(context.Background(), skillAvailableRole)
	if err != nil {
		app.renderError("loading available skills", err)
		return
	}
	for _, sk := range available {
		fmt.Printf("#%d  %-30s %s\n", sk.ID, sk.Name, sk.Category)
	}
}
