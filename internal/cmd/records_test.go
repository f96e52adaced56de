package cmd

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/khabri/internal/mockapi"
	"github.com/gravitrone/khabri/internal/store"
)

func seed() []mockapi.Post {
	return []mockapi.Post{
		{ID: 1, Title: "Asha", Content: "Class 5"},
		{ID: 2, Title: "Ravi", Content: "Class 7"},
	}
}

func TestListPrintsRecords(t *testing.T) {
	isolate(t)
	url, _ := startBackend(t, seed()...)

	out, err := execute(t, ListCmd(), "", "list", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "(Class 7)")
	assert.Less(t, strings.Index(out, "Asha"), strings.Index(out, "Ravi"))
}

func TestListEmpty(t *testing.T) {
	isolate(t)
	url, _ := startBackend(t)

	out, err := execute(t, ListCmd(), "", "list", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "no students found")
}

func TestListUsesEnvURL(t *testing.T) {
	isolate(t)
	url, _ := startBackend(t, seed()...)
	t.Setenv("KHABRI_API_URL", url)

	out, err := execute(t, ListCmd(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ravi")
}

func TestListServerDownIsFetchError(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(mockapi.New(nil).Handler())
	url := srv.URL + mockapi.DefaultPrefix
	srv.Close()

	_, err := execute(t, ListCmd(), "", "list", "--api-url", url)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrFetch))
}

func TestAddCreatesAndPrints(t *testing.T) {
	isolate(t)
	url, backend := startBackend(t)

	out, err := execute(t, AddCmd(), "", "add", "--api-url", url, "--title", "Asha", "--content", "Class 5")
	require.NoError(t, err)
	assert.Contains(t, out, "added Asha")
	assert.Contains(t, out, "Class 5")
	require.Len(t, backend.Posts(), 1)
	assert.Equal(t, int64(1), backend.Posts()[0].ID)
}

func TestAddValidatesBeforeCalling(t *testing.T) {
	isolate(t)
	url, backend := startBackend(t)

	_, err := execute(t, AddCmd(), "", "add", "--api-url", url, "--title", "  ", "--content", "Class 5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name is required")
	assert.Empty(t, backend.Posts())
}

func TestUpdateOverwritesGivenFields(t *testing.T) {
	isolate(t)
	url, backend := startBackend(t, seed()...)

	out, err := execute(t, UpdateCmd(), "", "update", "2", "--api-url", url, "--content", "Class 8")
	require.NoError(t, err)
	assert.Contains(t, out, "updated 2")

	posts := backend.Posts()
	assert.Equal(t, "Ravi", posts[1].Title)
	assert.Equal(t, "Class 8", posts[1].Content)
}

func TestUpdateUnknownID(t *testing.T) {
	isolate(t)
	url, _ := startBackend(t, seed()...)

	_, err := execute(t, UpdateCmd(), "", "update", "9", "--api-url", url, "--title", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student 9 not found")
}

func TestDeletePromptsAndDeclines(t *testing.T) {
	isolate(t)
	url, backend := startBackend(t, seed()...)

	out, err := execute(t, DeleteCmd(), "n\n", "delete", "1", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Delete this student? [y/N]")
	assert.Contains(t, out, "cancelled")
	assert.Len(t, backend.Posts(), 2)
}

func TestDeletePromptAccepts(t *testing.T) {
	isolate(t)
	url, backend := startBackend(t, seed()...)

	out, err := execute(t, DeleteCmd(), "yes\n", "delete", "1", "--api-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 1")
	require.Len(t, backend.Posts(), 1)
	assert.Equal(t, "Ravi", backend.Posts()[0].Title)
}

func TestDeleteYesSkipsPrompt(t *testing.T) {
	isolate(t)
	url, backend := startBackend(t, seed()...)

	out, err := execute(t, DeleteCmd(), "", "delete", "2", "--yes", "--api-url", url)
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Len(t, backend.Posts(), 1)
}

func TestDeleteUnknownIDIsDeleteError(t *testing.T) {
	isolate(t)
	url, _ := startBackend(t, seed()...)

	_, err := execute(t, DeleteCmd(), "", "delete", "7", "-y", "--api-url", url)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrDelete))
}

func TestConfirmAnswers(t *testing.T) {
	cases := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"\n":    false,
		"nope":  false,
		"":      false,
	}
	for in, want := range cases {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(in), &out, "Sure?")
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
		assert.Equal(t, "Sure? [y/N]: ", out.String())
	}
}
