package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

// writeScript drops an executable stand-in for ffmpeg into a temp dir.
// The real argument order is $1..$5 fixed flags, $6 source, $7 destination.
func writeScript(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fixture scripts need a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fixture script: %v", err)
	}
	return path
}

func tempPaths(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join(dir, "input.webp")
	if err := os.WriteFile(src, []byte("RIFF\x04\x00\x00\x00WEBP"), 0o644); err != nil {
		t.Fatalf("failed to write source fixture: %v", err)
	}
	return src, filepath.Join(dir, "output.gif")
}

func TestAvailableMissingBinary(t *testing.T) {
	tool := CreateTool("webp2gif-no-such-binary", time.Second)

	assert.False(t, tool.Available())

	err := tool.Convert(context.Background(), "in.webp", "out.gif")
	assert.ErrorIs(t, err, errs.ErrExternalTool)
}

func TestAvailableVerdictIsCached(t *testing.T) {
	script := writeScript(t, "exit 0")
	tool := CreateTool(script, time.Second)

	require.True(t, tool.Available())

	// Removing the binary after the probe must not change the verdict.
	require.NoError(t, os.Remove(script))
	assert.True(t, tool.Available())
}

func TestConvertSuccess(t *testing.T) {
	script := writeScript(t, `[ "$1" = "-hide_banner" ] || exit 3
[ "$2" = "-loglevel" ] || exit 3
[ "$3" = "error" ] || exit 3
[ "$4" = "-y" ] || exit 3
[ "$5" = "-i" ] || exit 3
printf 'GIF89a-fixture-body' > "$7"`)

	src, dst := tempPaths(t)
	tool := CreateTool(script, time.Second)

	err := tool.Convert(context.Background(), src, dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "GIF89a-fixture-body", string(data))
}

func TestConvertPassesSourcePath(t *testing.T) {
	script := writeScript(t, `[ -f "$6" ] || exit 4
printf 'GIF87a' > "$7"`)

	src, dst := tempPaths(t)
	tool := CreateTool(script, time.Second)

	assert.NoError(t, tool.Convert(context.Background(), src, dst))
}

func TestConvertExitError(t *testing.T) {
	script := writeScript(t, `echo "boom: cannot decode" >&2
exit 1`)

	src, dst := tempPaths(t)
	tool := CreateTool(script, time.Second)

	err := tool.Convert(context.Background(), src, dst)
	assert.ErrorIs(t, err, errs.ErrExternalTool)
	assert.ErrorContains(t, err, "boom: cannot decode")
}

func TestConvertTimeout(t *testing.T) {
	script := writeScript(t, "exec sleep 5")

	src, dst := tempPaths(t)
	tool := CreateTool(script, 100*time.Millisecond)

	start := time.Now()
	err := tool.Convert(context.Background(), src, dst)

	assert.ErrorIs(t, err, errs.ErrExternalTool)
	assert.ErrorContains(t, err, "timed out")
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestConvertOutputChecks(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "noOutputFile",
			body:    "exit 0",
			wantMsg: "output not produced",
		},
		{
			name:    "emptyOutput",
			body:    `: > "$7"`,
			wantMsg: "output is empty",
		},
		{
			name:    "tooShort",
			body:    `printf 'GIF' > "$7"`,
			wantMsg: "too short",
		},
		{
			name:    "wrongSignature",
			body:    `printf 'JFIF-not-a-gif' > "$7"`,
			wantMsg: "no gif signature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, tt.body)
			src, dst := tempPaths(t)
			tool := CreateTool(script, time.Second)

			err := tool.Convert(context.Background(), src, dst)
			assert.ErrorIs(t, err, errs.ErrExternalTool)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestConvertCancelledContext(t *testing.T) {
	script := writeScript(t, `printf 'GIF89a' > "$7"`)

	src, dst := tempPaths(t)
	tool := CreateTool(script, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tool.Convert(ctx, src, dst)
	assert.ErrorIs(t, err, errs.ErrExternalTool)
}

func TestCreateToolDefaults(t *testing.T) {
	tool := CreateTool("", 0)

	assert.Equal(t, DefaultBinary, tool.binary)
	assert.Equal(t, DefaultTimeout, tool.timeout)
}
