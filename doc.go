// Package tutorcheck is the Composition Root for the tutorial checks.
//
// It wires the checkers (layout, lint, notebook, yamlcheck, smoke) into named
// pipelines, each of which maps to one CI job of a design patterns tutorial.
//
// Philosophy:
//
// A check never aborts the run. Every step records its findings in a
// core.Result, the pipeline aggregates them into a core.Summary, and the
// Summary alone decides the exit code. Repairs (formatting, cleared notebook
// outputs, missing directories) are applied in place and, for the fix
// pipeline, committed back to the branch so CI can retry.
//
// Features:
//
//   - **Pipelines**: fix, validate, yaml, notebooks, outputs, clear, ensure-dirs, smoke and doctor.
//   - **Configurable**: every list the checks look for lives in .tutorcheck.yaml, with embedded defaults.
//   - **Injectable**: subprocess runner, git client and module registry are swappable for tests.
//   - **Sample patterns**: pkg/patterns carries the reference implementations the smoke checks exercise.
//
// Usage:
//
//	summary, err := tutorcheck.Run(ctx, ".", tutorcheck.PipelineValidate,
//		tutorcheck.WithOutput(os.Stdout),
//		tutorcheck.WithLogger(logger),
//	)
//	os.Exit(summary.ExitCode())
package tutorcheck
