package scaffold

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/shared"
)

const PackageJSON = "package.json"

type Requirements struct {
	Dependencies    []string
	DevDependencies []string
}

// RequiredPackages are what the generated components import, plus the dev
// server used by the generated vite.config.js.
var RequiredPackages = Requirements{
	Dependencies: []string{
		"react@^18.2.0",
		"react-dom@^18.2.0",
		"react-router-dom@^6.22.0",
	},
	DevDependencies: []string{
		"vite@^5.1.0",
		"@vitejs/plugin-react@^4.2.0",
	},
}

// Runner executes an external command in dir.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// PackageName strips the version from a package argument: "@scope/pkg@^1" -> "@scope/pkg".
func PackageName(pkg string) string {
	start := 0
	if strings.HasPrefix(pkg, "@") {
		start = 1
	}
	if idx := strings.Index(pkg[start:], "@"); idx != -1 {
		return pkg[:start+idx]
	}
	return pkg
}

// MissingPackages returns the packages in required whose names are not installed.
func MissingPackages(installed map[string]string, required []string) []string {
	var missing []string
	for _, pkg := range required {
		if _, ok := installed[PackageName(pkg)]; !ok {
			missing = append(missing, pkg)
		}
	}
	return missing
}

// InstallCommand returns the package manager invocation that installs pkgs.
func InstallCommand(packageManager string, dev bool, pkgs []string) (string, []string) {
	var args []string
	switch packageManager {
	case "npm":
		args = []string{"install"}
		if dev {
			args = append(args, "-D")
		}
	case "bun":
		args = []string{"add"}
		if dev {
			args = append(args, "-d")
		}
	default:
		args = []string{"add"}
		if dev {
			args = append(args, "-D")
		}
	}
	return packageManager, append(args, pkgs...)
}

func initCommand(packageManager string) string {
	if packageManager == "pnpm" {
		return "pnpm init"
	}
	return packageManager + " init -y"
}

type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (s *Scaffolder) readManifest() (*manifest, error) {
	data, err := s.requirePackageJSON()
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", PackageJSON, err)
	}
	return &m, nil
}

func (s *Scaffolder) requirePackageJSON() ([]byte, error) {
	exists, err := s.fsys.Exists(PackageJSON)
	if err != nil {
		return nil, err
	}
	if !exists {
		err := fmt.Errorf("%w: no %s found", shared.ErrMissingPrecondition, PackageJSON)
		return nil, shared.WithHint(err, "run first: "+initCommand(s.cfg.PackageManager))
	}
	return s.fsys.ReadFile(PackageJSON)
}

// CheckPackageJSON fails with ErrMissingPrecondition when the project has no
// package.json.
func (s *Scaffolder) CheckPackageJSON() error {
	_, err := s.readManifest()
	return err
}

// CheckAndInstall installs whichever required packages package.json lacks.
func (s *Scaffolder) CheckAndInstall(ctx context.Context) error {
	logger.Info("Checking required packages...")

	m, err := s.readManifest()
	if err != nil {
		return err
	}

	missingDeps := MissingPackages(m.Dependencies, RequiredPackages.Dependencies)
	missingDevDeps := MissingPackages(m.DevDependencies, RequiredPackages.DevDependencies)

	if len(missingDeps) == 0 && len(missingDevDeps) == 0 {
		logger.Info("All required packages already installed!")
		return nil
	}

	if len(missingDeps) > 0 {
		logger.Info("Installing: %s", strings.Join(missingDeps, ", "))
		name, args := InstallCommand(s.cfg.PackageManager, false, missingDeps)
		if err := s.runner.Run(ctx, s.dir, name, args...); err != nil {
			return fmt.Errorf("failed to install dependencies: %w", err)
		}
	}

	if len(missingDevDeps) > 0 {
		logger.Info("Installing dev deps: %s", strings.Join(missingDevDeps, ", "))
		name, args := InstallCommand(s.cfg.PackageManager, true, missingDevDeps)
		if err := s.runner.Run(ctx, s.dir, name, args...); err != nil {
			return fmt.Errorf("failed to install dev dependencies: %w", err)
		}
	}

	logger.Info("Installation completed successfully!")
	return nil
}
