package lesson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeLessonFile writes CUE source into dir under name.
func writeLessonFile(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

const goodLessonCUE = `package lessons

lesson: basics: {
	title: "Complex arithmetic"
	exercises: [
		{name: "add", expr: "(1+2i) + (3-1i)", want: {re: 4.0, im: 1.0}},
		{name: "inv_zero", expr: "inv(0+0i)", wantError: "DOMAIN"},
	]
}
`

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "basics.cue", goodLessonCUE)
	writeLessonFile(t, dir, "polar.cue", `package lessons

lesson: conversions: {
	title: "Polar form"
	exercises: [
		{name: "mul_i", expr: "i * i", want: {re: -1.0, im: 0.0}},
	]
}
`)

	result, errs := LoadDir(dir, LoadModeFailFast)
	require.Empty(t, errs)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.FileCount)
	require.Len(t, result.Lessons, 2)

	// Sorted by name for deterministic output.
	assert.Equal(t, "basics", result.Lessons[0].Name)
	assert.Equal(t, "conversions", result.Lessons[1].Name)
}

func TestLoadDirNotFound(t *testing.T) {
	result, errs := LoadDir("/nonexistent/lessons", LoadModeFailFast)
	assert.Nil(t, result)
	require.Len(t, errs, 1)

	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestLoadDirEmpty(t *testing.T) {
	result, errs := LoadDir(t.TempDir(), LoadModeFailFast)
	assert.Nil(t, result)
	require.Len(t, errs, 1)

	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeNoFiles, le.Code)
}

func TestLoadDirCompileErrorFailFast(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "broken.cue", `package lessons

lesson: broken: {
	exercises: [{name: "x", expr: "1", want: {re: 1.0, im: 0.0}}]
}
`)

	result, errs := LoadDir(dir, LoadModeFailFast)
	require.NotNil(t, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "lesson.broken")
	assert.Contains(t, errs[0].Error(), "title")
}

func TestLoadDirCollectAll(t *testing.T) {
	dir := t.TempDir()
	// Two broken lessons in one file; collect-all reports both.
	writeLessonFile(t, dir, "broken.cue", `package lessons

lesson: one: {
	exercises: [{name: "x", expr: "1", want: {re: 1.0, im: 0.0}}]
}
lesson: two: {
	title: "t"
}
`)

	result, errs := LoadDir(dir, LoadModeCollectAll)
	require.NotNil(t, result)
	assert.Len(t, errs, 2)
}

func TestLoadDirIgnoresNonCUEFiles(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "basics.cue", goodLessonCUE)
	writeLessonFile(t, dir, "notes.txt", "not cue")

	result, errs := LoadDir(dir, LoadModeFailFast)
	require.Empty(t, errs)
	assert.Equal(t, 1, result.FileCount)
}
