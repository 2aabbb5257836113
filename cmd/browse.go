package cmd

import (
	"context"
	"fmt"
	"strings"

	"skillswap-cli/internal/config"
	"skillswap-cli/internal/list"

	"github.com/spf13/cobra"
)

var (
	browseSearch   string
	browsePage     int
	browsePageSize int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and search marketplace members",
	Long: `List other members, searching by name or by any skill they offer
or want. Results are paged; out-of-range pages clamp to the nearest
valid page.`,
	Run: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVarP(&browseSearch, "search", "s", "", "search term")
	browseCmd.Flags().IntVarP(&browsePage, "page", "p", 1, "page to show")
	browseCmd.Flags().IntVar(&browsePageSize, "page-size", 0, "members per page")
}

func runBrowse(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer app.Close()

	pageSize := browsePageSize
	if pageSize <= 0 {
		pageSize = config.Get().Cache.PageSize
	}

	source := list.NewRemoteSource(app.Client, app.Cache)
	ctl := list.NewController(source, pageSize)
	ctl.SetSearch(browseSearch)
	ctl.SetPage(browsePage)

	view, err := ctl.Visible(context.Background())
	if err != nil {
		app.renderError("loading members", err)
		return
	}

	if view.Total == 0 {
		if ctl.Search() != "" {
			fmt.Println("No members found matching your search.")
		} else {
			fmt.Println("No members found.")
		}
		return
	}

	for i := range view.Items {
		u := &view.Items[i]
		fmt.Printf("#%d  %s  (%s)\n", u.ID, u.FullName(), u.Location)
		if len(u.SkillsOffered) > 0 {
			fmt.Printf("     offers: %s\n", strings.Join(u.SkillsOffered, ", "))
		}
		if len(u.SkillsWanted) > 0 {
			fmt.Printf("     wants:  %s\n", strings.Join(u.SkillsWanted, ", "))
		}
	}
	fmt.Printf("Page %d of %d (%d members)\n", view.Page, view.TotalPages, view.Total)
}
