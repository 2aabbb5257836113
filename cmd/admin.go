package cmd

import (
	"context"
	"fmt"
	"strconv"

	interfaces "skillswap-cli/internal/interfaces/api"

	"github.com/spf13/cobra"
)

var (
	adminRejectReason string
	adminExportDir    string
	adminMsgTitle     string
	adminMsgBody      string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Platform moderation (administrators only)",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List members for moderation",
	Run:   runAdminUsers,
}

var adminBanCmd = &cobra.Command{
	Use:   "ban <user-id>",
	Short: "Ban a member",
	Args:  cobra.ExactArgs(1),
	Run:   makeBanRun(true),
}

var adminUnbanCmd = &cobra.Command{
	Use:   "unban <user-id>",
	Short: "Lift a ban",
	Args:  cobra.ExactArgs(1),
	Run:   makeBanRun(false),
}

var adminSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List user skills awaiting moderation",
	Run:   runAdminSkills,
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <user-skill-id>",
	Short: "Approve a user skill",
	Args:  cobra.ExactArgs(1),
	Run:   runAdminApprove,
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <user-skill-id>",
	Short: "Reject a user skill with a reason",
	Args:  cobra.ExactArgs(1),
	Run:   runAdminReject,
}

var adminSwapsCmd = &cobra.Command{
	Use:   "swaps",
	Short: "List every swap request on the platform",
	Run:   runAdminSwaps,
}

var adminMessagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List platform announcements",
	Run:   runAdminMessages,
}

var adminPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a platform announcement",
	Run:   runAdminPublish,
}

var adminExportCmd = &cobra.Command{
	Use:   "export <users|swaps|ratings>",
	Short: "Download a CSV export",
	Args:  cobra.ExactArgs(1),
	Run:   runAdminExport,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd, adminBanCmd, adminUnbanCmd, adminSkillsCmd,
		adminApproveCmd, adminRejectCmd, adminSwapsCmd, adminMessagesCmd,
		adminPublishCmd, adminExportCmd)

	adminRejectCmd.Flags().StringVar(&adminRejectReason, "reason", "", "rejection reason (required)")
	adminExportCmd.Flags().StringVar(&adminExportDir, "dir", ".", "directory to write the CSV to")
	adminPublishCmd.Flags().StringVar(&adminMsgTitle, "title", "", "announcement title")
	adminPublishCmd.Flags().StringVar(&adminMsgBody, "body", "", "announcement body")
}

func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Printf("Invalid id %q\n", arg)
		return 0, false
	}
	return id, true
}

func runAdminUsers(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	users, err := app.Admin.Users(context.Background())
	if err != nil {
		app.renderError("loading members", err)
		return
	}
	for i := range users {
		u := &users[i]
		banned := ""
		if u.IsBanned {
			banned = " [banned]"
		}
		fmt.Printf("#%d  %s <%s>%s\n", u.ID, u.FullName(), u.Email, banned)
	}
}

func makeBanRun(ban bool) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fmt.Println(err)
			return
		}
		defer app.Close()

		id, ok := parseID(args[0])
		if !ok {
			return
		}
		if err := app.Admin.SetBanned(context.Background(), id, ban); err != nil {
			app.renderError("updating the member", err)
			return
		}
		if ban {
			fmt.Printf("User #%d banned.\n", id)
		} else {
			fmt.Printf("User #%d unbanned.\n", id)
		}
	}
}

func runAdminSkills(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	skills, err := app.Admin.UserSkills(context.Background())
	if err != nil {
		app.renderError("loading user skills", err)
		return
	}
	for _, us := range skills {
		fmt.Printf("#%d  %-30s %s [%s]\n", us.ID, us.SkillName, us.SkillType, us.Status)
	}
}

func runAdminApprove(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	id, ok := parseID(args[0])
	if !ok {
		return
	}
	if err := app.Admin.ApproveSkill(context.Background(), id); err != nil {
		app.renderError("approving the skill", err)
		return
	}
	fmt.Printf("User skill #%d approved.\n", id)
}

func runAdminReject(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	id, ok := parseID(args[0])
	if !ok {
		return
	}
	if err := app.Admin.RejectSkill(context.Background(), id, adminRejectReason); err != nil {
		app.renderError("rejecting the skill", err)
		return
	}
	fmt.Printf("User skill #%d rejected.\n", id)
}

func runAdminSwaps(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	swaps, err := app.Admin.Swaps(context.Background())
	if err != nil {
		app.renderError("loading swaps", err)
		return
	}
	for i := range swaps {
		printRequest(&swaps[i])
	}
}

func runAdminMessages(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	msgs, err := app.Admin.Messages(context.Background())
	if err != nil {
		app.renderError("loading announcements", err)
		return
	}
	for _, m := range msgs {
		active := "inactive"
		if m.IsActive {
			active = "active"
		}
		fmt.Printf("#%d  %s (%s)\n     %s\n", m.ID, m.Title, active, m.Body)
	}
}

func runAdminPublish(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	m, err := app.Admin.PublishMessage(context.Background(), interfaces.PlatformMessageRequest{
		Title: adminMsgTitle,
		Body:  adminMsgBody,
	})
	if err != nil {
		app.renderError("publishing the announcement", err)
		return
	}
	fmt.Printf("Announcement #%d published.\n", m.ID)
}

func runAdminExport(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	path, err := app.Admin.Export(context.Background(), args[0], adminExportDir)
	if err != nil {
		app.renderError("downloading the export", err)
		return
	}
	fmt.Printf("Wrote %s\n", path)
}
