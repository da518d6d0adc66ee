// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package state

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-robot/pkg/types"
)

func sampleContent() *types.Content {
	return &types.Content{
		SearchTerm:             "Rome",
		Prefix:                 types.PrefixHistoryOf,
		SourceContentOriginal:  "=Intro\n\nRome (founded in 753 BC) is a city. It was powerful.",
		SourceContentSanitized: "Rome is a city. It was powerful.",
		MaximumSentences:       2,
		Sentences: []types.Sentence{
			{Text: "Rome is a city.", Keywords: []string{"Rome", "city", "Rome"}, Images: []string{}},
			{Text: "It was powerful.", Keywords: []string{}, Images: []string{}},
		},
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := NewSQLiteStore(filepath.Join(dir, "db", "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"json":   NewFileStore(filepath.Join(dir, "content.json")),
		"yaml":   NewFileStore(filepath.Join(dir, "nested", "content.yaml")),
		"sqlite": sqlite,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleContent()
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestStore_RoundTripFreshAggregate(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			want := &types.Content{SearchTerm: "Ada Lovelace", Prefix: types.PrefixWhoIs, MaximumSentences: 7}
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)

			want.Normalize()
			assert.Equal(t, want, got)
		})
	}
}

func TestStore_LoadMissing(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(context.Background())
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			first := sampleContent()
			require.NoError(t, store.Save(ctx, first))

			second := sampleContent()
			second.SearchTerm = "Athens"
			second.Sentences = second.Sentences[:1]
			require.NoError(t, store.Save(ctx, second))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, second, got)
		})
	}
}

func TestFileStore_LoadNormalizesNulls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"searchTerm":"Rome","prefix":"Who is","sentences":[{"text":"A.","keywords":null}]}`), 0o644))

	got, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Sentences, 1)
	assert.Equal(t, []string{}, got.Sentences[0].Keywords)
	assert.Equal(t, []string{}, got.Sentences[0].Images)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "content.json"))
	require.NoError(t, store.Save(context.Background(), sampleContent()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "content.json", entries[0].Name())
}

func TestFileStore_SavedFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	path := filepath.Join(t.TempDir(), "content.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(context.Background(), sampleContent()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestFileStore_JSONLayout(t *testing.T) {
	data, err := Marshal(sampleContent(), false)
	require.NoError(t, err)

	for _, key := range []string{`"searchTerm"`, `"prefix"`, `"sourceContentOriginal"`, `"sourceContentSanitized"`, `"maximumSentences"`, `"sentences"`, `"keywords"`, `"images"`} {
		assert.Contains(t, string(data), key)
	}
}

func TestSQLiteStore_History(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	defer store.Close()

	first := sampleContent()
	require.NoError(t, store.Save(ctx, first))
	second := sampleContent()
	second.SearchTerm = "Athens"
	require.NoError(t, store.Save(ctx, second))

	history, err := store.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Athens", history[0].SearchTerm)
	assert.Equal(t, "Rome", history[1].SearchTerm)
	assert.Equal(t, 2, history[1].Sentences)
	assert.Equal(t, types.PrefixHistoryOf, history[1].Prefix)
	assert.NotEqual(t, history[0].ID, history[1].ID)
	assert.False(t, history[0].CreatedAt.IsZero())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(types.StateConfig{Path: filepath.Join(dir, "c.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	assert.NoError(t, Close(s))

	s, err = Open(types.StateConfig{Backend: types.StateSQLite, Path: filepath.Join(dir, "c.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	assert.NoError(t, Close(s))

	_, err = Open(types.StateConfig{Backend: "redis"})
	assert.Error(t, err)
}
