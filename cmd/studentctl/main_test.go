package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	app := newApp()

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"migrate", "seed", "import"}, names)
}

func TestImportRequiresFile(t *testing.T) {
	app := newApp()
	app.Writer, app.ErrWriter = io.Discard, io.Discard

	err := app.RunContext(context.Background(), []string{"studentctl", "import"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestImportMissingWorkbook(t *testing.T) {
	app := newApp()
	app.Writer, app.ErrWriter = io.Discard, io.Discard

	err := app.RunContext(context.Background(), []string{"studentctl", "import", "--file", "/nonexistent/students.xlsx"})
	assert.ErrorContains(t, err, "failed to open workbook")
}
