package notebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return full
}

func testConfig() config.Notebooks {
	return config.Notebooks{
		Dir:               "notebooks",
		Glob:              "learning-resources/notebooks/*.ipynb",
		Expected:          []string{"01_singleton_pattern.ipynb", "02_factory_pattern.ipynb"},
		TitlePrefix:       "# ",
		TitleMarker:       "Pattern Tutorial",
		TOCMarker:         "Table of Contents",
		StructureSeverity: "warning",
		ClearedSeverity:   "error",
		Indent:            2,
	}
}

const titledNotebook = `{
 "cells": [
  {"cell_type": "markdown", "source": ["# Factory Pattern Tutorial\n"]},
  {"cell_type": "markdown", "source": "## Table of Contents\n1. Intro"},
  {"cell_type": "code", "outputs": [], "execution_count": null, "source": ""}
 ],
 "metadata": {}
}`

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	write(t, root, "learning-resources/notebooks/02_b.ipynb", cleanNotebook)
	write(t, root, "learning-resources/notebooks/01_a.ipynb", cleanNotebook)
	write(t, root, "learning-resources/notebooks/notes.txt", "")
	write(t, root, "learning-resources/notebooks/.ipynb_checkpoints/01_a-checkpoint.ipynb", cleanNotebook)

	cfg := testConfig()
	cfg.Glob = "learning-resources/notebooks/**/*.ipynb"
	paths, err := NewValidator(root, cfg, nil).Discover()
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, "01_a.ipynb", filepath.Base(paths[0]))
	assert.Equal(t, "02_b.ipynb", filepath.Base(paths[1]))
}

func TestCheckPresence(t *testing.T) {
	root := t.TempDir()
	write(t, root, "notebooks/01_singleton_pattern.ipynb", `{"cells": [`)

	res := NewValidator(root, testConfig(), nil).CheckPresence()

	errs := res.Errors()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "01_singleton_pattern.ipynb has invalid JSON")
	assert.Equal(t, "02_factory_pattern.ipynb missing", errs[1])
}

func TestCheckStructure(t *testing.T) {
	root := t.TempDir()
	write(t, root, "learning-resources/notebooks/a.ipynb", dirtyNotebook)
	write(t, root, "learning-resources/notebooks/b.ipynb", `{"cells": []}`)
	write(t, root, "learning-resources/notebooks/c.ipynb", `not json`)
	write(t, root, "learning-resources/notebooks/d.ipynb", cleanNotebook)

	t.Run("Outputs Are Warnings By Default", func(t *testing.T) {
		res := NewValidator(root, testConfig(), nil).CheckStructure()

		errs := res.Errors()
		require.Len(t, errs, 2)
		assert.Equal(t, "b.ipynb: Missing metadata", errs[0])
		assert.Contains(t, errs[1], "c.ipynb: invalid JSON")

		assert.Equal(t, []string{
			"a.ipynb: Has outputs (should be cleared)",
			"a.ipynb: Has execution counts (should be cleared)",
		}, res.Warnings())
	})

	t.Run("Severity Is Configurable", func(t *testing.T) {
		cfg := testConfig()
		cfg.StructureSeverity = "error"
		res := NewValidator(root, cfg, nil).CheckStructure()

		assert.Len(t, res.Errors(), 4)
		assert.Empty(t, res.Warnings())
	})
}

func TestCheckCleared(t *testing.T) {
	t.Run("Clean Notebooks Pass", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "learning-resources/notebooks/a.ipynb", cleanNotebook)

		res := NewValidator(root, testConfig(), nil).CheckCleared()

		assert.True(t, res.Passed())
		assert.Equal(t, "OK: learning-resources/notebooks/a.ipynb", res.Entries[0].Message)
	})

	t.Run("Outputs Fail By Default", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "learning-resources/notebooks/a.ipynb", dirtyNotebook)
		write(t, root, "learning-resources/notebooks/b.ipynb", cleanNotebook)

		res := NewValidator(root, testConfig(), nil).CheckCleared()

		assert.Equal(t, []string{
			"learning-resources/notebooks/a.ipynb has output that should be cleared",
		}, res.Errors())
	})

	t.Run("Same Condition As Warning", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "learning-resources/notebooks/a.ipynb", dirtyNotebook)

		cfg := testConfig()
		cfg.ClearedSeverity = "warning"
		res := NewValidator(root, cfg, nil).CheckCleared()

		assert.True(t, res.Passed())
		assert.Len(t, res.Warnings(), 1)
	})
}

func TestCheckTitleAndTOC(t *testing.T) {
	t.Run("Reports Every Notebook", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "notebooks/01_singleton_pattern.ipynb", `{"cells": [{"cell_type": "markdown", "source": "# Singleton"}]}`)
		write(t, root, "notebooks/02_factory_pattern.ipynb", titledNotebook)

		res := NewValidator(root, testConfig(), nil).CheckTitleAndTOC()

		assert.Equal(t, []string{
			"01_singleton_pattern.ipynb: Missing proper title",
			"01_singleton_pattern.ipynb: Missing table of contents",
		}, res.Errors())
	})

	t.Run("Missing Notebook And Cells", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "notebooks/01_singleton_pattern.ipynb", `{"metadata": {}}`)

		res := NewValidator(root, testConfig(), nil).CheckTitleAndTOC()

		assert.Equal(t, []string{
			"01_singleton_pattern.ipynb: Missing 'cells' field",
			"Missing notebook: 02_factory_pattern.ipynb",
		}, res.Errors())
	})

	t.Run("Missing Directory", func(t *testing.T) {
		res := NewValidator(t.TempDir(), testConfig(), nil).CheckTitleAndTOC()
		assert.Equal(t, []string{"notebooks directory does not exist"}, res.Errors())
	})
}

func TestClearAll(t *testing.T) {
	root := t.TempDir()
	dirty := write(t, root, "learning-resources/notebooks/a.ipynb", dirtyNotebook)
	clean := write(t, root, "learning-resources/notebooks/b.ipynb", cleanNotebook)
	v := NewValidator(root, testConfig(), nil)

	first := v.ClearAll()
	assert.True(t, first.Fixed)
	assert.True(t, first.Passed())

	afterFirst, err := os.ReadFile(dirty)
	require.NoError(t, err)
	cleanBytes, err := os.ReadFile(clean)
	require.NoError(t, err)
	assert.Equal(t, cleanNotebook, string(cleanBytes), "clean notebooks are not rewritten")

	second := v.ClearAll()
	assert.False(t, second.Fixed, "clearing is idempotent")

	afterSecond, err := os.ReadFile(dirty)
	require.NoError(t, err)
	assert.Equal(t, afterFirst, afterSecond)

	doc, err := Load(dirty)
	require.NoError(t, err)
	assert.True(t, doc.IsClean())

	assert.True(t, v.CheckCleared().Passed())
}

func TestClearAllSkipsTrailingData(t *testing.T) {
	root := t.TempDir()
	corrupt := dirtyNotebook + "} trailing"
	path := write(t, root, "learning-resources/notebooks/a.ipynb", corrupt)
	v := NewValidator(root, testConfig(), nil)

	res := v.ClearAll()
	assert.False(t, res.Fixed)
	require.Len(t, res.Warnings(), 1)
	assert.Contains(t, res.Warnings()[0], "invalid JSON")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, string(data), "unparseable notebooks are left untouched")

	assert.False(t, v.CheckCleared().Passed())
	assert.False(t, v.CheckStructure().Passed())
}
