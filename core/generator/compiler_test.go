package generator

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/tristendillon/easyroutes/core/models"
	"github.com/tristendillon/easyroutes/core/template_engine"
)

func exampleTree() *models.RouteTree {
	return &models.RouteTree{Routes: []*models.RouteNode{
		{Path: "/", Component: "Home", Children: []*models.RouteNode{
			{Path: "about", Component: "About"},
			{Path: "contact", Component: "Contact", Children: []*models.RouteNode{
				{Path: ":id", Component: "ContactDetails"},
			}},
		}},
		{Path: "products", Component: "Products", Children: []*models.RouteNode{
			{Path: ":productId", Component: "ProductDetail"},
		}},
		{Path: ":slug", Component: "Catchall"},
	}}
}

func TestCompileImports(t *testing.T) {
	imports := CompileImports(exampleTree(), "components")

	var got []string
	for _, imp := range imports {
		got = append(got, imp.Component+"="+imp.Source)
	}
	want := []string{
		"Home=./components/Home/Home",
		"About=./components/About/About",
		"Contact=./components/Contact/Contact",
		"ContactDetails=./components/ContactDetails/ContactDetails",
		"Products=./components/Products/Products",
		"ProductDetail=./components/ProductDetail/ProductDetail",
		"Catchall=./components/Catchall/Catchall",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("imports =\n%v\nwant\n%v", got, want)
	}
}

func TestCompileRoutes(t *testing.T) {
	routes := CompileRoutes(exampleTree())

	want := []RouteDeclaration{
		{Path: "/", Component: "Home"},
		{Path: "/about", Component: "About"},
		{Path: "/contact", Component: "Contact"},
		{Path: "/contact/:id", Component: "ContactDetails"},
		{Path: "/products", Component: "Products"},
		{Path: "/products/:productId", Component: "ProductDetail"},
		{Path: "/:slug", Component: "Catchall"},
	}
	if !reflect.DeepEqual(routes, want) {
		t.Errorf("routes =\n%v\nwant\n%v", routes, want)
	}
}

func TestCompileNavigation(t *testing.T) {
	nav := CompileNavigation(exampleTree())

	want := []NavLink{
		{To: "/", Label: "Home"},
		{To: "/products", Label: "Products"},
	}
	if !reflect.DeepEqual(nav, want) {
		t.Errorf("nav = %v, want %v", nav, want)
	}
}

func TestInlineLinks(t *testing.T) {
	tree := exampleTree()

	type tc struct {
		node *models.RouteNode
		want []NavLink
	}

	tests := map[string]tc{
		"literal children keep relative paths": {
			node: tree.Routes[0],
			want: []NavLink{{To: "about", Label: "About"}, {To: "contact", Label: "Contact"}},
		},
		"only parameterized children": {
			node: tree.Routes[1],
			want: nil,
		},
		"leaf": {
			node: tree.Routes[0].Children[0],
			want: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := InlineLinks(tt.node); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InlineLinks = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompile_PreservesChildOrder(t *testing.T) {
	tree := &models.RouteTree{Routes: []*models.RouteNode{
		{Path: "/", Component: "Root", Children: []*models.RouteNode{
			{Path: "c", Component: "C"},
			{Path: "a", Component: "A"},
			{Path: "b", Component: "B", Children: []*models.RouteNode{
				{Path: "z", Component: "Z"},
				{Path: "y", Component: "Y"},
			}},
		}},
	}}

	artifact := Compile(tree, "components")

	var importOrder, routeOrder []string
	for _, imp := range artifact.Imports {
		importOrder = append(importOrder, imp.Component)
	}
	for _, r := range artifact.Routes {
		routeOrder = append(routeOrder, r.Component)
	}

	want := []string{"Root", "C", "A", "B", "Z", "Y"}
	if !reflect.DeepEqual(importOrder, want) {
		t.Errorf("import order = %v, want %v", importOrder, want)
	}
	if !reflect.DeepEqual(routeOrder, want) {
		t.Errorf("route order = %v, want %v", routeOrder, want)
	}
}

func TestRouterArtifact_DuplicatePaths(t *testing.T) {
	tree := &models.RouteTree{Routes: []*models.RouteNode{
		{Path: "about", Component: "About"},
		{Path: "/about", Component: "AboutAgain"},
		{Path: "contact", Component: "Contact"},
	}}

	if got := Compile(tree, "components").DuplicatePaths(); !reflect.DeepEqual(got, []string{"/about"}) {
		t.Errorf("DuplicatePaths = %v, want [/about]", got)
	}
}

func TestAppTemplateRendering(t *testing.T) {
	tree := &models.RouteTree{Routes: []*models.RouteNode{
		{Path: "/", Component: "Home", Children: []*models.RouteNode{
			{Path: "about", Component: "About"},
		}},
	}}

	out, err := template_engine.NewTemplateEngine().Render(template_engine.TEMPLATES.REACT.APP, Compile(tree, "components"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := strings.TrimPrefix(dedent.Dedent(`
		import React, { Suspense } from 'react';
		import { BrowserRouter, Routes, Route, Link } from 'react-router-dom';

		// Component imports
		const Home = React.lazy(() => import('./components/Home/Home'));
		const About = React.lazy(() => import('./components/About/About'));

		// Main navigation
		function Navigation() {
		  return (
		    <nav style={{ padding: '20px', backgroundColor: '#333', marginBottom: '20px' }}>
		      <Link to="/" style={{ color: 'white', marginRight: '20px', textDecoration: 'none' }}>Home</Link>
		    </nav>
		  );
		}

		function App() {
		  return (
		    <BrowserRouter>
		      <div>
		        <Navigation />
		        <Suspense fallback={<div style={{ padding: '20px' }}>Loading...</div>}>
		          <Routes>
		            <Route path="/" element={<Home />} />
		            <Route path="/about" element={<About />} />
		          </Routes>
		        </Suspense>
		      </div>
		    </BrowserRouter>
		  );
		}

		export default App;
	`), "\n")

	if string(out) != want {
		t.Errorf("App output mismatch.\ngot:\n%s\nwant:\n%s", out, want)
	}
}
