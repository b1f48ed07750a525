package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tristendillon/easyroutes/core/config"
	"github.com/tristendillon/easyroutes/core/shared"
	"github.com/tristendillon/easyroutes/core/writer"
)

const homeAboutYAML = `routes:
  - path: "/"
    component: "Home"
    children:
      - path: "about"
        component: "About"
`

const homeAboutJSON = `{"routes":[{"path":"/","component":"Home","children":[{"path":"about","component":"About"}]}]}`

const fullYAML = `routes:
  - path: "/"
    component: "Home"
    children:
      - path: "about"
        component: "About"
      - path: "contact"
        component: "Contact"
        children:
          - path: ":id"
            component: "ContactDetails"
  - path: "products"
    component: "Products"
    children:
      - path: ":productId"
        component: "ProductDetail"
`

func setupProject(t *testing.T, configName, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, configName)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, configPath
}

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(filepath.Join(root, "src"), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return files
}

func TestGenerateRouteTree_EndToEnd(t *testing.T) {
	dir, configPath := setupProject(t, "routes.yaml", homeAboutYAML)
	rg := NewRouteGenerator(config.Default(), writer.NewOSFileSystem(dir))

	report, err := rg.GenerateRouteTree(context.Background(), configPath)
	if err != nil {
		t.Fatalf("GenerateRouteTree: %v", err)
	}

	files := snapshot(t, dir)
	home := files[filepath.Join("src", "components", "Home", "Home.jsx")]
	if !strings.Contains(home, `<Link to="about"`) {
		t.Errorf("Home should link to its child by relative path:\n%s", home)
	}
	app := files[filepath.Join("src", "App.jsx")]
	for _, want := range []string{`<Route path="/" element={<Home />} />`, `<Route path="/about" element={<About />} />`, `<Link to="/" style=`} {
		if !strings.Contains(app, want) {
			t.Errorf("App.jsx missing %q:\n%s", want, app)
		}
	}
	if strings.Contains(app, "//about") {
		t.Error("App.jsx contains a doubled slash")
	}
	if _, ok := files[filepath.Join("src", "main.jsx")]; !ok {
		t.Error("main.jsx not written")
	}
	if len(report.Created) != 2 || len(report.Skipped) != 0 || len(report.Written) != 2 {
		t.Errorf("unexpected report: %+v", report)
	}

	// User edits About, then regenerates.
	aboutPath := filepath.Join(dir, "src", "components", "About", "About.jsx")
	edited := "export default function About() { return <p>edited</p>; }\n"
	if err := os.WriteFile(aboutPath, []byte(edited), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := rg.GenerateRouteTree(context.Background(), configPath); err != nil {
		t.Fatalf("second run: %v", err)
	}
	data, _ := os.ReadFile(aboutPath)
	if string(data) != edited {
		t.Errorf("About.jsx was overwritten:\n%s", data)
	}
}

func TestGenerateRouteTree_Idempotent(t *testing.T) {
	dir, configPath := setupProject(t, "routes.yaml", fullYAML)
	rg := NewRouteGenerator(config.Default(), writer.NewOSFileSystem(dir))

	if _, err := rg.GenerateRouteTree(context.Background(), configPath); err != nil {
		t.Fatal(err)
	}
	first := snapshot(t, dir)

	report, err := rg.GenerateRouteTree(context.Background(), configPath)
	if err != nil {
		t.Fatal(err)
	}
	second := snapshot(t, dir)

	if len(report.Created) != 0 {
		t.Errorf("second run created %v", report.Created)
	}
	if len(report.Skipped) != 6 {
		t.Errorf("second run skipped %d components, want 6", len(report.Skipped))
	}
	if len(first) != len(second) {
		t.Fatalf("file count changed: %d -> %d", len(first), len(second))
	}
	for path, content := range first {
		if second[path] != content {
			t.Errorf("%s changed between runs", path)
		}
	}
}

func TestGenerateRouteTree_FormatEquivalence(t *testing.T) {
	yamlDir, yamlPath := setupProject(t, "routes.yaml", homeAboutYAML)
	jsonDir, jsonPath := setupProject(t, "routes.json", homeAboutJSON)

	for dir, path := range map[string]string{yamlDir: yamlPath, jsonDir: jsonPath} {
		rg := NewRouteGenerator(config.Default(), writer.NewOSFileSystem(dir))
		if _, err := rg.GenerateRouteTree(context.Background(), path); err != nil {
			t.Fatalf("generate %s: %v", path, err)
		}
	}

	fromYAML, fromJSON := snapshot(t, yamlDir), snapshot(t, jsonDir)
	if len(fromYAML) != len(fromJSON) {
		t.Fatalf("different file sets: %d vs %d", len(fromYAML), len(fromJSON))
	}
	for path, content := range fromYAML {
		if fromJSON[path] != content {
			t.Errorf("%s differs between yaml and json input", path)
		}
	}
}

func TestGenerateRouteTree_ParameterizedRoutes(t *testing.T) {
	dir, configPath := setupProject(t, "routes.yaml", fullYAML)
	rg := NewRouteGenerator(config.Default(), writer.NewOSFileSystem(dir))
	if _, err := rg.GenerateRouteTree(context.Background(), configPath); err != nil {
		t.Fatal(err)
	}

	files := snapshot(t, dir)
	app := files[filepath.Join("src", "App.jsx")]

	if !strings.Contains(app, `const ContactDetails = React.lazy(() => import('./components/ContactDetails/ContactDetails'));`) {
		t.Error("parameterized node missing its import")
	}
	if !strings.Contains(app, `<Route path="/contact/:id" element={<ContactDetails />} />`) {
		t.Error("parameterized node missing its route")
	}
	if !strings.Contains(app, `<Route path="/products/:productId" element={<ProductDetail />} />`) {
		t.Error("top-level parameterized child has wrong path")
	}
	for path, content := range files {
		if strings.Contains(content, `<Link to=":`) || strings.Contains(content, `<Link to="/contact/:`) {
			t.Errorf("%s links to a parameterized route", path)
		}
	}
}

func TestGenerateRouteTree_DryRunTouchesNothing(t *testing.T) {
	dir, configPath := setupProject(t, "routes.yaml", homeAboutYAML)
	fsys := writer.NewMemoryFileSystem()
	rg := NewRouteGenerator(config.Default(), fsys)

	report, err := rg.GenerateRouteTree(context.Background(), configPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Created) != 2 {
		t.Errorf("Created = %v", report.Created)
	}
	if len(fsys.Files()) != 4 {
		t.Errorf("manifest = %v, want 2 components + App + main", fsys.Files())
	}
	if _, err := os.Stat(filepath.Join(dir, "src")); !os.IsNotExist(err) {
		t.Error("dry run wrote to disk")
	}
}

func TestGenerateRouteTree_ConfigNotFound(t *testing.T) {
	rg := NewRouteGenerator(config.Default(), writer.NewMemoryFileSystem())
	_, err := rg.GenerateRouteTree(context.Background(), filepath.Join(t.TempDir(), "routes.yaml"))
	if !errors.Is(err, shared.ErrConfigNotFound) {
		t.Fatalf("err = %v, want ErrConfigNotFound", err)
	}
	if shared.HintOf(err) == "" {
		t.Error("expected an init hint")
	}
}

func TestGenerate_StopsWhenCancelled(t *testing.T) {
	fsys := writer.NewMemoryFileSystem()
	rg := NewRouteGenerator(config.Default(), fsys)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rg.Generate(ctx, exampleTree())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if ok, _ := fsys.Exists(rg.AppPath()); ok {
		t.Error("App should not be written after cancellation")
	}
}
