package cmd

import (
	"context"
	"fmt"
	"strconv"

	"skillswap-cli/internal/domain/swap"
	interfaces "skillswap-cli/internal/interfaces/api"

	"github.com/spf13/cobra"
)

var (
	swapStatusFilter string

	swapToUser   int64
	swapOffered  int64
	swapWanted   int64
	swapMessage  string
	swapDuration string
	swapTimeSlot string
)

var swapsCmd = &cobra.Command{
	Use:   "swaps",
	Short: "Send and answer swap proposals",
}

var swapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List swap requests you sent or received",
	Run:   runSwapsList,
}

var swapsReceivedCmd = &cobra.Command{
	Use:   "received",
	Short: "List requests waiting on you",
	Run:   runSwapsReceived,
}

var swapsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Propose a swap to another member",
	Run:   runSwapsCreate,
}

var swapsAcceptCmd = &cobra.Command{
	Use:   "accept <request-id>",
	Short: "Accept a pending request",
	Args:  cobra.ExactArgs(1),
	Run:   makeTransitionRun(swap.StatusAccepted),
}

var swapsRejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject a pending request",
	Args:  cobra.ExactArgs(1),
	Run:   makeTransitionRun(swap.StatusRejected),
}

func init() {
	rootCmd.AddCommand(swapsCmd)
	swapsCmd.AddCommand(swapsListCmd, swapsReceivedCmd, swapsCreateCmd, swapsAcceptCmd, swapsRejectCmd)

	swapsListCmd.Flags().StringVar(&swapStatusFilter, "status", "", "filter by status (pending, accepted, rejected)")
	swapsReceivedCmd.Flags().StringVar(&swapStatusFilter, "status", "", "filter by status (pending, accepted, rejected)")

	swapsCreateCmd.Flags().Int64Var(&swapToUser, "to", 0, "recipient user id")
	swapsCreateCmd.Flags().Int64Var(&swapOffered, "offer", 0, "id of the skill you offer")
	swapsCreateCmd.Flags().Int64Var(&swapWanted, "want", 0, "id of the skill you want")
	swapsCreateCmd.Flags().StringVar(&swapMessage, "message", "", "message to the recipient")
	swapsCreateCmd.Flags().StringVar(&swapDuration, "duration", swap.DurationFlexible, "session duration")
	swapsCreateCmd.Flags().StringVar(&swapTimeSlot, "time", swap.TimeFlexible, "preferred time slot")
}

func printRequest(r *swap.Request) {
	fmt.Printf("#%d  %s -> %s: %s for %s [%s]\n",
		r.ID, r.FromUser.FullName(), r.ToUser.FullName(),
		r.SkillOffered.Name, r.SkillWanted.Name, r.Status)
	if r.Message != "" {
		fmt.Printf("     %q (%s, %s)\n", r.Message, r.Duration, r.PreferredTime)
	}
}

func runSwapsList(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	reqs, err := app.Swaps.Sent(context.Background(), swapStatusFilter)
	if err != nil {
		app.renderError("loading swap requests", err)
		return
	}
	if len(reqs) == 0 {
		fmt.Println("No swap requests.")
		return
	}
	for i := range reqs {
		printRequest(&reqs[i])
	}
}

func runSwapsReceived(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	reqs, err := app.Swaps.Received(context.Background(), swapStatusFilter)
	if err != nil {
		app.renderError("loading received requests", err)
		return
	}
	if len(reqs) == 0 {
		fmt.Println("No received requests.")
		return
	}
	for i := range reqs {
		printRequest(&reqs[i])
	}

	counts, err := app.Swaps.Tally(context.Background())
	if err != nil {
		return
	}
	fmt.Printf("pending %d | accepted %d | rejected %d\n",
		counts[swap.StatusPending], counts[swap.StatusAccepted], counts[swap.StatusRejected])
}

func runSwapsCreate(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	r, err := app.Swaps.Create(context.Background(), interfaces.CreateSwapRequest{
		ToUserID:       swapToUser,
		SkillOfferedID: swapOffered,
		SkillWantedID:  swapWanted,
		Message:        swapMessage,
		Duration:       swapDuration,
		PreferredTime:  swapTimeSlot,
	})
	if err != nil {
		app.renderError("creating the swap request", err)
		return
	}
	fmt.Printf("Swap request #%d sent.\n", r.ID)
}

func makeTransitionRun(target string) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fmt.Println(err)
			return
		}
		defer app.Close()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Invalid request id %q\n", args[0])
			return
		}

		ctx := context.Background()
		// Load the received list so the transition has local state to
		// guard and update.
		if _, err := app.Swaps.Received(ctx, ""); err != nil {
			app.renderError("loading received requests", err)
			return
		}

		var r *swap.Request
		if target == swap.StatusAccepted {
			r, err = app.Swaps.Accept(ctx, id)
		} else {
			r, err = app.Swaps.Reject(ctx, id)
		}
		if err != nil {
			app.renderError("updating the request", err)
			return
		}
		fmt.Printf("Request #%d is now %s.\n", r.ID, r.Status)
	}
}
