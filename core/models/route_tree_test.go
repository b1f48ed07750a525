package models

import (
	"reflect"
	"strings"
	"testing"
)

func sampleTree() *RouteTree {
	return &RouteTree{Routes: []*RouteNode{
		{Path: "/", Component: "Home", Children: []*RouteNode{
			{Path: "about", Component: "About"},
			{Path: "contact", Component: "Contact", Children: []*RouteNode{
				{Path: ":id", Component: "ContactDetails"},
			}},
		}},
		{Path: "products", Component: "Products"},
	}}
}

func TestRouteNode_IsParam(t *testing.T) {
	tests := map[string]bool{
		":id":          true,
		"users/:id":    true,
		"about":        false,
		"/":            false,
		"web-dev":      false,
		":productId/x": true,
	}

	for path, want := range tests {
		n := &RouteNode{Path: path}
		if got := n.IsParam(); got != want {
			t.Errorf("IsParam(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestRouteTree_WalkOrder(t *testing.T) {
	var visited []string
	var depths []int
	sampleTree().Walk(func(n *RouteNode, depth int) {
		visited = append(visited, n.Component)
		depths = append(depths, depth)
	})

	wantVisited := []string{"Home", "About", "Contact", "ContactDetails", "Products"}
	wantDepths := []int{0, 1, 1, 2, 0}
	if !reflect.DeepEqual(visited, wantVisited) {
		t.Errorf("visited = %v, want %v", visited, wantVisited)
	}
	if !reflect.DeepEqual(depths, wantDepths) {
		t.Errorf("depths = %v, want %v", depths, wantDepths)
	}
	if got := sampleTree().Count(); got != 5 {
		t.Errorf("Count = %d, want 5", got)
	}
}

func TestRouteTree_DuplicateComponents(t *testing.T) {
	tree := sampleTree()
	if dups := tree.DuplicateComponents(); len(dups) != 0 {
		t.Errorf("expected no duplicates, got %v", dups)
	}

	tree.Routes = append(tree.Routes,
		&RouteNode{Path: "about-us", Component: "About"},
		&RouteNode{Path: "again", Component: "About"},
	)
	if dups := tree.DuplicateComponents(); !reflect.DeepEqual(dups, []string{"About"}) {
		t.Errorf("dups = %v, want [About]", dups)
	}
}

func TestRouteTree_Render(t *testing.T) {
	out, err := sampleTree().Render("routes.yaml")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "routes.yaml" {
		t.Errorf("first line = %q", lines[0])
	}
	for _, want := range []string{"/ -> Home", "about -> About", ":id -> ContactDetails (param)", "products -> Products"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered tree missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "about -> About") > strings.Index(out, "contact -> Contact") {
		t.Errorf("children out of order:\n%s", out)
	}
}
