// Package scaffold prepares the host project around the generated routes:
// package.json requirements, installed packages and static entry files.
package scaffold

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tristendillon/easyroutes/core/config"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/routeconfig"
	"github.com/tristendillon/easyroutes/core/template_engine"
	"github.com/tristendillon/easyroutes/core/writer"
)

const (
	IndexHTML  = "index.html"
	ViteConfig = "vite.config.js"
	devPort    = 3000
)

var viteScripts = map[string]string{
	"dev":     "vite",
	"build":   "vite build",
	"preview": "vite preview",
}

type Scaffolder struct {
	dir    string
	cfg    *config.Config
	fsys   writer.FileSystem
	runner Runner
	engine *template_engine.TemplateEngine
}

func New(dir string, cfg *config.Config, fsys writer.FileSystem, runner Runner) *Scaffolder {
	return &Scaffolder{
		dir:    dir,
		cfg:    cfg,
		fsys:   fsys,
		runner: runner,
		engine: template_engine.NewTemplateEngine(),
	}
}

// writeIfAbsent renders ref to path unless the file exists. It reports
// whether it wrote.
func (s *Scaffolder) writeIfAbsent(ref template_engine.TemplateRef, path string, data interface{}) (bool, error) {
	exists, err := s.fsys.Exists(path)
	if err != nil {
		return false, err
	}
	if exists {
		logger.Debug("%s already exists - skipping", path)
		return false, nil
	}
	if err := s.engine.GenerateFile(s.fsys, ref, path, data); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Scaffolder) EnsureIndexHTML() error {
	data := struct {
		SrcDir    string
		Extension string
	}{
		SrcDir:    s.cfg.SrcDir,
		Extension: s.cfg.Extension,
	}

	wrote, err := s.writeIfAbsent(template_engine.TEMPLATES.SCAFFOLD.INDEX_HTML, IndexHTML, data)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", IndexHTML, err)
	}
	if wrote {
		logger.Info("Created %s", IndexHTML)
	}
	return nil
}

// Init writes the example routes file, the source directory, a vite config
// and the package.json scripts. An existing routes file is kept unless force.
func (s *Scaffolder) Init(ctx context.Context, force bool) error {
	logger.Info("Checking project setup...")
	raw, err := s.requirePackageJSON()
	if err != nil {
		return err
	}

	if err := s.writeExampleConfig(force); err != nil {
		return err
	}

	if err := s.fsys.MkdirAll(s.cfg.SrcDir); err != nil {
		return err
	}

	data := struct{ Port int }{Port: devPort}
	wrote, err := s.writeIfAbsent(template_engine.TEMPLATES.SCAFFOLD.VITE_CONFIG, ViteConfig, data)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", ViteConfig, err)
	}
	if wrote {
		logger.Info("Created %s", ViteConfig)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.updatePackageJSON(raw)
}

func (s *Scaffolder) writeExampleConfig(force bool) error {
	path := s.cfg.RoutesFile
	exists, err := s.fsys.Exists(path)
	if err != nil {
		return err
	}
	if exists && !force {
		logger.Warn("%s already exists - skipping (use --force to overwrite)", path)
		return nil
	}

	content, err := routeconfig.ExampleConfig(s.engine)
	if err != nil {
		return err
	}
	if err := s.fsys.WriteFile(path, content); err != nil {
		return err
	}
	logger.Info("Created example configuration file: %s", path)
	return nil
}

// updatePackageJSON sets "type": "module" and the vite scripts, keeping every
// other field. Keys are re-emitted in sorted order.
func (s *Scaffolder) updatePackageJSON(raw []byte) error {
	var pkg map[string]interface{}
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", PackageJSON, err)
	}
	if pkg == nil {
		pkg = map[string]interface{}{}
	}

	pkg["type"] = "module"

	scripts, _ := pkg["scripts"].(map[string]interface{})
	if scripts == nil {
		scripts = map[string]interface{}{}
	}
	for name, script := range viteScripts {
		scripts[name] = script
	}
	pkg["scripts"] = scripts

	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", PackageJSON, err)
	}
	if err := s.fsys.WriteFile(PackageJSON, append(out, '\n')); err != nil {
		return err
	}
	logger.Info("Updated %s", PackageJSON)
	return nil
}
