package output

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func TestResolveFreshName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sticker.webp")

	got, err := CreateResolver().Resolve(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "result", "sticker.gif"), got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestResolveDisambiguatesCollisions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sticker.webp")
	resolver := CreateResolver()

	first, err := resolver.Resolve(src)
	require.NoError(t, err)
	second, err := resolver.Resolve(src)
	require.NoError(t, err)
	third, err := resolver.Resolve(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "result", "sticker.gif"), first)
	assert.Equal(t, filepath.Join(dir, "result", "sticker(1).gif"), second)
	assert.Equal(t, filepath.Join(dir, "result", "sticker(2).gif"), third)
}

func TestResolveTakesLowestFreeNumber(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "result")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "clip.gif"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "clip(2).gif"), []byte("x"), 0o644))

	got, err := CreateResolver().Resolve(filepath.Join(dir, "clip.webp"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "clip(1).gif"), got)
}

func TestResolveKeepsInnerDots(t *testing.T) {
	dir := t.TempDir()

	got, err := CreateResolver().Resolve(filepath.Join(dir, "name.with.dots.webp"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "result", "name.with.dots.gif"), got)
}

func TestResolveConcurrentClaims(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "burst.webp")
	resolver := CreateResolver()

	const claims = 20

	var (
		mu    sync.Mutex
		paths = make(map[string]struct{})
		wg    sync.WaitGroup
	)

	for range claims {
		wg.Add(1)
		go func() {
			defer wg.Done()

			got, err := resolver.Resolve(src)
			assert.NoError(t, err)

			mu.Lock()
			paths[got] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, paths, claims)
	for p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestResolveUnusableParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The source's directory is a regular file, so result/ cannot exist.
	_, err := CreateResolver().Resolve(filepath.Join(blocker, "pic.webp"))
	assert.ErrorIs(t, err, errs.ErrIOUnavailable)
}
