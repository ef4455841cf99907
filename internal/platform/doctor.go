package platform

import (
	"context"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/aretw0/tutorcheck/internal/fsutil"
	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/aretw0/tutorcheck/pkg/git"
	"github.com/aretw0/tutorcheck/pkg/notebook"
	"github.com/aretw0/tutorcheck/pkg/pipeline"
)

var repositoryChecks = []string{
	"SQLite repository",
	"JSON repository (new file)",
	"JSON repository (existing file)",
	"JSON repository (corrupted file)",
}

func (p *Platform) doctorPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Title: "CI environment debugging",
		Steps: []pipeline.Step{
			{Name: "Environment", Title: "Checking environment", Run: p.checkEnvironment},
			syncStep("File System", "Checking file system", p.checkFiles),
			syncStep("Git", "Checking git repository", p.checkGit),
			p.importsStep(),
			p.functionalStep("Checking repository functionality", repositoryChecks...),
			syncStep("Notebook Validation", "Checking notebook validation", p.doctorNotebooks().CheckStructure),
			{Name: "nbval", Title: "Checking nbval compatibility", Run: p.checkNbVal},
		},
		Informational: true,
	}
}

func (p *Platform) checkEnvironment(ctx context.Context) core.Result {
	res := core.NewResult("Environment")
	res.Info("Go runtime: %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	res.Info("Root: %s", p.Root)

	for _, tool := range p.Config.Doctor.Tools {
		location, err := exec.LookPath(tool)
		if err != nil {
			res.Warn("%s not found on PATH", tool)
			continue
		}
		out, err := p.runner.Run(ctx, p.Root, []string{tool, "--version"})
		if err != nil || out.ExitCode != 0 {
			res.OK("%s found at %s", tool, location)
			continue
		}
		res.OK("%s found at %s (%s)", tool, location, firstLine(out.Combined()))
	}
	return res
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

func (p *Platform) checkFiles() core.Result {
	res := core.NewResult("File System")
	for _, file := range p.Config.Doctor.Files {
		if fsutil.Exists(filepath.Join(p.Root, filepath.FromSlash(file))) {
			res.OK("%s exists", file)
		} else {
			res.Fail("%s missing", file)
		}
	}
	return res
}

func (p *Platform) checkGit() core.Result {
	res := core.NewResult("Git")
	if !git.IsInstalled() {
		res.Warn("git is not installed")
	}
	if !git.IsRepo(p.Root) {
		res.Warn("%s is not a git repository", p.Root)
		return res
	}
	if branch, err := git.CurrentBranch(p.Root); err != nil {
		res.Warn("Cannot resolve current branch: %v", err)
	} else {
		res.OK("On branch %s", branch)
	}
	remote := p.Config.AutoFix.Remote
	if url, err := git.RemoteURL(p.Root, remote); err != nil {
		res.Warn("Remote %s not configured: %v", remote, err)
	} else {
		res.OK("Remote %s: %s", remote, url)
	}
	return res
}

// doctorNotebooks inspects the notebooks directory with output findings as warnings.
func (p *Platform) doctorNotebooks() *notebook.Validator {
	cfg := p.Config.Notebooks
	cfg.Glob = path.Join(cfg.Dir, "*.ipynb")
	cfg.StructureSeverity = string(core.SeverityWarning)
	return notebook.NewValidator(p.Root, cfg, p.Logger)
}

func (p *Platform) checkNbVal(ctx context.Context) core.Result {
	res := core.NewResult("nbval")
	if len(p.Config.Doctor.NbVal) == 0 {
		res.Info("nbval check disabled")
		return res
	}
	paths, err := p.doctorNotebooks().Discover()
	if err != nil || len(paths) == 0 {
		res.Info("No notebooks to test with nbval")
		return res
	}

	argv := append(slices.Clone(p.Config.Doctor.NbVal), paths[0])
	res.Info("Testing nbval on %s", filepath.Base(paths[0]))
	out, err := p.runner.Run(ctx, p.Root, argv)
	switch {
	case err != nil:
		res.Fail("nbval test error: %v", err)
	case out.ExitCode != 0:
		res.Fail("nbval test failed: %s", out.Combined())
	default:
		res.OK("nbval test passed")
	}
	return res
}
