package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/um-tesoreria/wikisync/internal/domain"
	"github.com/um-tesoreria/wikisync/internal/testutil"
)

func TestGenerateDocs_Execute(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	source := &testutil.MockRecordSource{
		Issues: []domain.Issue{{Number: 1, Title: "Timeout", State: domain.IssueOpen}},
	}
	renderer := &testutil.MockRenderer{
		DocsPage: domain.Page{Name: "project-documentation.md", Content: "# Docs\n"},
	}
	clock := &testutil.MockClock{NowTime: now}
	uc := NewGenerateDocs(source, renderer, clock, testLogger())

	output := filepath.Join(t.TempDir(), "docs", "project-documentation.md")
	out, err := uc.Execute(context.Background(), GenerateDocsInput{OutputPath: output})
	require.NoError(t, err)

	assert.Equal(t, output, out.Path)
	// The clock value flows into the renderer.
	assert.Equal(t, now, renderer.DocsNow)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "# Docs\n", string(data))
}

func TestGenerateDocs_Execute_SnapshotFailure(t *testing.T) {
	source := &testutil.MockRecordSource{Err: domain.ErrMalformedInput}
	uc := NewGenerateDocs(source, &testutil.MockRenderer{}, &testutil.MockClock{}, testLogger())

	_, err := uc.Execute(context.Background(), GenerateDocsInput{OutputPath: "unused.md"})
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestGenerateDocs_Execute_PlainFileName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	uc := NewGenerateDocs(
		&testutil.MockRecordSource{},
		&testutil.MockRenderer{DocsPage: domain.Page{Name: "out.md", Content: "x"}},
		&testutil.MockClock{},
		testLogger(),
	)

	// A bare file name needs no directory creation.
	_, err := uc.Execute(context.Background(), GenerateDocsInput{OutputPath: "out.md"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out.md"))
}
