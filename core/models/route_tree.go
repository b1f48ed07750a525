package models

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/tristendillon/easyroutes/core/logger"
)

const RootPath = "/"

type RouteNode struct {
	Path      string       `yaml:"path" json:"path" validate:"required"`
	Component string       `yaml:"component" json:"component" validate:"required"`
	Children  []*RouteNode `yaml:"children,omitempty" json:"children,omitempty" validate:"omitempty,dive,required"`
}

// IsParam reports whether the segment needs a runtime value (":id").
func (n *RouteNode) IsParam() bool {
	return strings.Contains(n.Path, ":")
}

func (n *RouteNode) IsRoot() bool {
	return n.Path == RootPath
}

type RouteTree struct {
	Routes []*RouteNode `yaml:"routes" json:"routes" validate:"required,dive,required"`
}

// Walk visits every node pre-order, children in declaration order.
func (rt *RouteTree) Walk(fn func(node *RouteNode, depth int)) {
	var visit func(nodes []*RouteNode, depth int)
	visit = func(nodes []*RouteNode, depth int) {
		for _, node := range nodes {
			fn(node, depth)
			visit(node.Children, depth+1)
		}
	}
	visit(rt.Routes, 0)
}

func (rt *RouteTree) Count() int {
	count := 0
	rt.Walk(func(*RouteNode, int) { count++ })
	return count
}

// DuplicateComponents lists component names used by more than one node, in
// first-seen order.
func (rt *RouteTree) DuplicateComponents() []string {
	seen := map[string]int{}
	var dups []string
	rt.Walk(func(node *RouteNode, _ int) {
		seen[node.Component]++
		if seen[node.Component] == 2 {
			dups = append(dups, node.Component)
		}
	})
	return dups
}

func (rt *RouteTree) Render(rootLabel string) (string, error) {
	root := gtree.NewRoot(rootLabel)

	var add func(parent *gtree.Node, nodes []*RouteNode)
	add = func(parent *gtree.Node, nodes []*RouteNode) {
		for _, node := range nodes {
			label := fmt.Sprintf("%s -> %s", node.Path, node.Component)
			if node.IsParam() {
				label += " (param)"
			}
			add(parent.Add(label), node.Children)
		}
	}
	add(root, rt.Routes)

	var buf bytes.Buffer
	if err := gtree.OutputProgrammably(&buf, root); err != nil {
		return "", fmt.Errorf("failed to render route tree: %w", err)
	}
	return buf.String(), nil
}

func (rt *RouteTree) PrintTree(rootLabel string, level logger.LogLevel) {
	out, err := rt.Render(rootLabel)
	if err != nil {
		logger.Debug("%v", err)
		return
	}

	log := logger.GetLogFromLevel(level)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		log("%s", line)
	}
}
