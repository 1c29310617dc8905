package memory_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/goagent/memory"
)

func TestLastExecution_Empty(t *testing.T) {
	m := memory.New()

	content, ok := m.LastExecution()
	assert.False(t, ok)
	assert.Empty(t, content)
}

func TestLastExecution_SkipsTrailingReflections(t *testing.T) {
	m := memory.New()
	m.Append(memory.Execution("v1"))
	m.Append(memory.Reflection("too short"))
	m.Append(memory.Execution("v2"))
	m.Append(memory.Reflection("better"))
	m.Append(memory.Reflection("still better"))

	content, ok := m.LastExecution()
	require.True(t, ok)
	assert.Equal(t, "v2", content)
}

func TestLastExecution_OnlyReflections(t *testing.T) {
	m := memory.New()
	m.Append(memory.Reflection("feedback"))

	_, ok := m.LastExecution()
	assert.False(t, ok)
}

func TestAppend_PreservesOrderAndCount(t *testing.T) {
	m := memory.New()
	want := []memory.Record{
		memory.Execution("a"),
		memory.Reflection("b"),
		memory.Execution("c"),
	}
	for i, r := range want {
		m.Append(r)
		assert.Equal(t, i+1, m.Len())
	}

	if diff := cmp.Diff(want, m.Records()); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecords_DefensiveCopy(t *testing.T) {
	m := memory.New()
	m.Append(memory.Execution("original"))

	recs := m.Records()
	recs[0].Content = "tampered"

	content, _ := m.LastExecution()
	assert.Equal(t, "original", content)
}

func TestTrajectory(t *testing.T) {
	m := memory.New()
	assert.Equal(t, "", m.Trajectory())

	m.Append(memory.Execution("def f(): pass"))
	m.Append(memory.Reflection("add a docstring"))

	want := memory.ExecutionHeader + "\ndef f(): pass\n\n" + memory.ReflectionHeader + "\nadd a docstring"
	assert.Equal(t, want, m.Trajectory())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "execution", memory.KindExecution.String())
	assert.Equal(t, "reflection", memory.KindReflection.String())
	assert.Equal(t, "unknown", memory.Kind(0).String())
}

func TestFileExporter_Export(t *testing.T) {
	root := t.TempDir()
	exp := memory.NewFileExporter(root)

	path, err := exp.Export("runs/one.md", "trajectory body")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "runs", "one.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "trajectory body", string(data))

	// Overwrite leaves no temp files behind.
	_, err = exp.Export("runs/one.md", "second")
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Join(root, "runs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileExporter_RejectsEscapingNames(t *testing.T) {
	exp := memory.NewFileExporter(t.TempDir())

	for _, name := range []string{"", "../outside.md", "/abs.md"} {
		_, err := exp.Export(name, "x")
		assert.True(t, errors.Is(err, memory.ErrExportFailed), "name %q: err = %v", name, err)
	}
}
