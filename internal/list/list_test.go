package list

import (
	"context"
	"fmt"
	"testing"

	"skillswap-cli/internal/domain/user"
)

func makeUsers(n int) []user.User {
	users := make([]user.User, n)
	for i := range users {
		users[i] = user.User{
			ID:        int64(i + 1),
			FirstName: fmt.Sprintf("Member%02d", i+1),
			LastName:  "Test",
		}
	}
	return users
}

func TestMatches(t *testing.T) {
	u := user.User{
		FirstName:     "Alice",
		LastName:      "Nguyen",
		SkillsOffered: []string{"Go Programming", "Photography"},
		SkillsWanted:  []string{"Spanish"},
	}

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"alice", true},
		{"NGUYEN", true},
		{"ice ngu", true},
		{"photo", true},
		{"spanish", true},
		{"go prog", true},
		{"cooking", false},
	}
	for _, tt := range tests {
		if got := Matches(&u, tt.term); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestPaginationBounds(t *testing.T) {
	ctl := NewController(NewLocalSource(makeUsers(13)), 4)

	view, err := ctl.Visible(context.Background())
	if err != nil {
		t.Fatalf("Visible failed: %v", err)
	}
	if view.TotalPages != 4 {
		t.Errorf("Expected 4 pages for 13 items of 4, got %d", view.TotalPages)
	}
	if len(view.Items) != 4 {
		t.Errorf("Expected 4 items on page 1, got %d", len(view.Items))
	}

	ctl.SetPage(5)
	if ctl.Page() != 4 {
		t.Errorf("Expected page 5 to clamp to 4, got %d", ctl.Page())
	}
	view, _ = ctl.Visible(context.Background())
	if len(view.Items) != 1 {
		t.Errorf("Expected 1 item on the last page, got %d", len(view.Items))
	}

	ctl.SetPage(0)
	if ctl.Page() != 1 {
		t.Errorf("Expected page 0 to clamp to 1, got %d", ctl.Page())
	}
}

func TestNextPrevStopAtEdges(t *testing.T) {
	ctl := NewController(NewLocalSource(makeUsers(13)), 4)
	if _, err := ctl.Visible(context.Background()); err != nil {
		t.Fatalf("Visible failed: %v", err)
	}

	ctl.Prev()
	if ctl.Page() != 1 {
		t.Errorf("Expected Prev on first page to stay at 1, got %d", ctl.Page())
	}

	for i := 0; i < 10; i++ {
		ctl.Next()
	}
	if ctl.Page() != 4 {
		t.Errorf("Expected Next to stop at last page 4, got %d", ctl.Page())
	}
}

func TestSearchChangeResetsPage(t *testing.T) {
	ctl := NewController(NewLocalSource(makeUsers(13)), 4)
	ctl.Visible(context.Background())
	ctl.SetPage(3)

	ctl.SetSearch("member01")
	if ctl.Page() != 1 {
		t.Errorf("Expected term change to reset page to 1, got %d", ctl.Page())
	}

	// Setting the same term again must not reset navigation.
	ctl.Visible(context.Background())
	ctl.SetPage(1)
	ctl.SetSearch("member01")
	if ctl.Search() != "member01" {
		t.Errorf("Expected term preserved, got %q", ctl.Search())
	}
}

func TestEmptyResultSet(t *testing.T) {
	ctl := NewController(NewLocalSource(makeUsers(13)), 4)
	ctl.SetSearch("nobody-has-this")

	view, err := ctl.Visible(context.Background())
	if err != nil {
		t.Fatalf("Visible failed: %v", err)
	}
	if view.Total != 0 {
		t.Errorf("Expected empty result set, got total %d", view.Total)
	}
	if len(view.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(view.Items))
	}
	if view.Page != 1 {
		t.Errorf("Expected page 1 on empty set, got %d", view.Page)
	}
}

func TestVisibleReclampsAfterShrink(t *testing.T) {
	src := NewLocalSource(makeUsers(13))
	ctl := NewController(src, 4)
	ctl.Visible(context.Background())
	ctl.SetPage(4)

	// The backing set shrinks to a single page.
	src.users = makeUsers(3)
	view, err := ctl.Visible(context.Background())
	if err != nil {
		t.Fatalf("Visible failed: %v", err)
	}
	if view.Page != 1 {
		t.Errorf("Expected page reclamped to 1 after shrink, got %d", view.Page)
	}
	if len(view.Items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(view.Items))
	}
}

func TestLocalSourceFiltersBySkill(t *testing.T) {
	users := makeUsers(3)
	users[1].SkillsOffered = []string{"Woodworking"}
	ctl := NewController(NewLocalSource(users), 4)
	ctl.SetSearch("woodwork")

	view, err := ctl.Visible(context.Background())
	if err != nil {
		t.Fatalf("Visible failed: %v", err)
	}
	if view.Total != 1 || view.Items[0].ID != users[1].ID {
		t.Errorf("Expected only the woodworking member, got %+v", view.Items)
	}
}
