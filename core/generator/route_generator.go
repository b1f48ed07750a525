package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tristendillon/easyroutes/core/config"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/models"
	"github.com/tristendillon/easyroutes/core/routeconfig"
	"github.com/tristendillon/easyroutes/core/template_engine"
	"github.com/tristendillon/easyroutes/core/writer"
)

// Report lists what one generation run did, in traversal order.
type Report struct {
	Created []string
	Skipped []string
	Written []string
}

type RouteGenerator struct {
	cfg        *config.Config
	fsys       writer.FileSystem
	engine     *template_engine.TemplateEngine
	components *ComponentGenerator
	TreeLevel  logger.LogLevel
}

func NewRouteGenerator(cfg *config.Config, fsys writer.FileSystem) *RouteGenerator {
	engine := template_engine.NewTemplateEngine()
	return &RouteGenerator{
		cfg:        cfg,
		fsys:       fsys,
		engine:     engine,
		components: NewComponentGenerator(cfg, fsys, engine),
		TreeLevel:  logger.INFO,
	}
}

func (rg *RouteGenerator) AppPath() string {
	return filepath.Join(rg.cfg.SrcDir, "App."+rg.cfg.Extension)
}

func (rg *RouteGenerator) MainPath() string {
	return filepath.Join(rg.cfg.SrcDir, "main."+rg.cfg.Extension)
}

// GenerateRouteTree parses configPath and generates everything from it.
func (rg *RouteGenerator) GenerateRouteTree(ctx context.Context, configPath string) (*Report, error) {
	tree, err := routeconfig.Parse(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	logger.Info("Configuration loaded!")
	tree.PrintTree(filepath.Base(configPath), rg.TreeLevel)

	return rg.Generate(ctx, tree)
}

// Generate materializes components, then writes the router and entry files.
// Stages run in order; ctx is only checked between them.
func (rg *RouteGenerator) Generate(ctx context.Context, tree *models.RouteTree) (*Report, error) {
	report := &Report{}

	for _, dup := range tree.DuplicateComponents() {
		logger.Warn("Component %s is declared more than once; only the first file is generated", dup)
	}

	logger.Info("Generating components...")
	if err := rg.components.MaterializeAll(tree, report); err != nil {
		return report, fmt.Errorf("failed to generate components: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	logger.Info("Generating router...")
	if err := rg.generateApp(tree); err != nil {
		return report, err
	}
	report.Written = append(report.Written, rg.AppPath())

	if err := rg.generateMain(); err != nil {
		return report, err
	}
	report.Written = append(report.Written, rg.MainPath())

	logger.Info("Generated %d components (%d skipped), router at %s", len(report.Created), len(report.Skipped), rg.AppPath())
	return report, nil
}

func (rg *RouteGenerator) generateApp(tree *models.RouteTree) error {
	artifact := Compile(tree, rg.cfg.ComponentsDir)
	for _, dup := range artifact.DuplicatePaths() {
		logger.Warn("Route path %s is declared more than once", dup)
	}

	if err := rg.engine.GenerateFile(rg.fsys, template_engine.TEMPLATES.REACT.APP, rg.AppPath(), artifact); err != nil {
		return fmt.Errorf("failed to generate router: %w", err)
	}
	logger.Debug("Router has %d imports, %d routes, %d nav links", len(artifact.Imports), len(artifact.Routes), len(artifact.Navigation))
	return nil
}

func (rg *RouteGenerator) generateMain() error {
	data := struct {
		Extension string
	}{
		Extension: rg.cfg.Extension,
	}

	if err := rg.engine.GenerateFile(rg.fsys, template_engine.TEMPLATES.REACT.MAIN, rg.MainPath(), data); err != nil {
		return fmt.Errorf("failed to generate entry point: %w", err)
	}
	return nil
}
