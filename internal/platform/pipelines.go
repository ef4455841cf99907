package platform

import (
	"context"

	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/aretw0/tutorcheck/pkg/patterns"
	"github.com/aretw0/tutorcheck/pkg/pipeline"
	"github.com/aretw0/tutorcheck/pkg/smoke"
	"github.com/aretw0/tutorcheck/pkg/yamlcheck"
)

// Check names of the sample functional checks used by fix and validate.
var (
	fixChecks      = []string{"SQLite repository", "JSON repository (new file)"}
	validateChecks = []string{"Singleton", "Builder"}
)

func syncStep(name, title string, fn func() core.Result) pipeline.Step {
	return pipeline.Step{Name: name, Title: title, Run: func(context.Context) core.Result { return fn() }}
}

func (p *Platform) importsStep() pipeline.Step {
	return pipeline.Step{Name: "Imports", Title: "Checking imports", Run: func(ctx context.Context) core.Result {
		return p.importer().Run(ctx, p.Config.Smoke.Modules)
	}}
}

func (p *Platform) functionalStep(title string, names ...string) pipeline.Step {
	return pipeline.Step{Name: "Functionality", Title: title, Run: func(ctx context.Context) core.Result {
		return smoke.RunChecks(ctx, "Functionality", smoke.Select(patterns.SmokeChecks(), names...), p.Logger)
	}}
}

func (p *Platform) fixPipeline() *pipeline.Pipeline {
	l, lt, nb := p.layout(), p.lint(), p.notebooks()
	return &pipeline.Pipeline{
		Title: "Automated CI/CD issue checker and fixer",
		Steps: []pipeline.Step{
			syncStep("Directories", "Checking directories", l.CheckDirectories),
			{Name: "Syntax", Title: "Checking Python syntax", Run: lt.CheckSyntax},
			{Name: "Formatting", Title: "Checking code formatting", Run: lt.CheckFormatting},
			p.importsStep(),
			syncStep("Notebooks", "Checking notebooks", nb.CheckPresence),
			p.functionalStep("Checking key functionality", fixChecks...),
		},
		Committer: p.committer(),
		FailOnFix: true,
	}
}

func (p *Platform) validatePipeline() *pipeline.Pipeline {
	l, nb := p.layout(), p.notebooks()
	return &pipeline.Pipeline{
		Title: "Design Patterns Tutorial validation",
		Steps: []pipeline.Step{
			syncStep("Project Structure", "Validating project structure", l.CheckStructure),
			syncStep("Notebooks", "Validating Jupyter notebooks", nb.CheckTitleAndTOC),
			{Name: "Source Code", Title: "Validating source code", Run: func(ctx context.Context) core.Result {
				res := l.CheckSourceFiles()
				res.Name = "Source Code"
				res.Merge(p.importer().Run(ctx, p.Config.Smoke.Modules))
				res.Merge(smoke.RunChecks(ctx, "Functionality", smoke.Select(patterns.SmokeChecks(), validateChecks...), p.Logger))
				return res
			}},
			syncStep("Tests", "Validating test files", l.CheckTestFiles),
			syncStep("Docker", "Validating Docker configuration", func() core.Result {
				return l.CheckGroup("Docker", p.Config.Layout.DockerFiles)
			}),
		},
	}
}

func (p *Platform) yamlPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Title: "YAML validation",
		Steps: []pipeline.Step{
			syncStep("YAML", "Validating YAML files", func() core.Result {
				return yamlcheck.Validate(p.Root, p.Config.YAML.Files)
			}),
		},
	}
}

func (p *Platform) notebooksPipeline() *pipeline.Pipeline {
	nb := p.notebooks()
	return &pipeline.Pipeline{
		Title: "Notebook structure test",
		Steps: []pipeline.Step{
			syncStep("Notebook Structure", "Testing notebook structure", nb.CheckStructure),
			syncStep("Clear Outputs", "Clearing notebook outputs", nb.ClearAll),
		},
	}
}

func (p *Platform) outputsPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Title: "Notebook output check",
		Steps: []pipeline.Step{
			syncStep("Notebook Outputs", "Checking notebooks for outputs", p.notebooks().CheckCleared),
		},
	}
}

func (p *Platform) clearPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Title: "Notebook output clearing",
		Steps: []pipeline.Step{
			syncStep("Clear Outputs", "Clearing notebook outputs", p.notebooks().ClearAll),
		},
	}
}

func (p *Platform) ensureDirsPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Title: "Directory setup",
		Steps: []pipeline.Step{
			syncStep("Ensure Directories", "Ensuring required directories exist", p.layout().EnsureDirectories),
		},
	}
}

func (p *Platform) smokePipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Title: "Simple test suite",
		Steps: []pipeline.Step{
			p.functionalStep("Running sample module tests"),
		},
	}
}
