package generator

import (
	"path"

	"github.com/tristendillon/easyroutes/core/models"
)

type Import struct {
	Component string
	Source    string
}

type RouteDeclaration struct {
	Path      string
	Component string
}

type NavLink struct {
	To    string
	Label string
}

// RouterArtifact is everything App.<ext> is rendered from.
type RouterArtifact struct {
	Imports    []Import
	Routes     []RouteDeclaration
	Navigation []NavLink
}

// Compile runs the three independent passes over the tree. componentsDir is
// the components folder relative to the source root ("components").
func Compile(tree *models.RouteTree, componentsDir string) *RouterArtifact {
	return &RouterArtifact{
		Imports:    CompileImports(tree, componentsDir),
		Routes:     CompileRoutes(tree),
		Navigation: CompileNavigation(tree),
	}
}

// CompileImports emits one lazy import per node, pre-order. Imports come from
// the tree alone, so skipped components are still imported.
func CompileImports(tree *models.RouteTree, componentsDir string) []Import {
	var imports []Import
	tree.Walk(func(node *models.RouteNode, _ int) {
		imports = append(imports, Import{
			Component: node.Component,
			Source:    "./" + path.Join(componentsDir, node.Component, node.Component),
		})
	})
	return imports
}

// CompileRoutes flattens the tree into declarations with absolute paths.
// Children directly follow their parent.
func CompileRoutes(tree *models.RouteTree) []RouteDeclaration {
	var routes []RouteDeclaration

	var visit func(nodes []*models.RouteNode, parentPath string)
	visit = func(nodes []*models.RouteNode, parentPath string) {
		for _, node := range nodes {
			fullPath, childPath := AbsolutePath(parentPath, node)
			routes = append(routes, RouteDeclaration{Path: fullPath, Component: node.Component})
			visit(node.Children, childPath)
		}
	}
	visit(tree.Routes, "")

	return routes
}

// CompileNavigation links the top-level, non-parameterized routes.
func CompileNavigation(tree *models.RouteTree) []NavLink {
	var links []NavLink
	for _, node := range tree.Routes {
		if node.IsParam() {
			continue
		}
		links = append(links, NavLink{To: TopLevelLink(node), Label: node.Component})
	}
	return links
}

// InlineLinks links a node's direct, non-parameterized children using each
// child's own relative path.
func InlineLinks(node *models.RouteNode) []NavLink {
	var links []NavLink
	for _, child := range node.Children {
		if child.IsParam() {
			continue
		}
		links = append(links, NavLink{To: child.Path, Label: child.Component})
	}
	return links
}

// DuplicatePaths lists absolute route paths declared more than once.
func (a *RouterArtifact) DuplicatePaths() []string {
	seen := map[string]int{}
	var dups []string
	for _, r := range a.Routes {
		seen[r.Path]++
		if seen[r.Path] == 2 {
			dups = append(dups, r.Path)
		}
	}
	return dups
}
