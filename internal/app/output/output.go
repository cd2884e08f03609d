package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
)

const (
	// dirName is the folder created next to every source file.
	dirName = "result"
	// maxProbes bounds the collision scan.
	maxProbes = 10000
)

// Resolver maps a source file to its destination path inside the sibling
// result directory.
type Resolver struct{}

func CreateResolver() *Resolver {
	return &Resolver{}
}

// Resolve claims the destination for srcPath: <dir>/result/<name>.gif, or
// <name>(1).gif, <name>(2).gif and so on, taking the lowest unused number.
// The path is claimed by creating the file with O_EXCL, which keeps the
// numbering race-free across concurrent jobs; the caller owns the claimed
// file and must remove it if the conversion fails.
func (r *Resolver) Resolve(srcPath string) (string, error) {
	const funcName = "Resolver.Resolve"

	dir := filepath.Dir(srcPath)
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	outDir := filepath.Join(dir, dirName)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Warn("failed to create output directory",
			zap.String("function", funcName),
			zap.String("dir", outDir),
			zap.Error(err))
		return "", fmt.Errorf("%w: create output directory: %v", errs.ErrIOUnavailable, err)
	}

	for n := 0; n <= maxProbes; n++ {
		name := base + ".gif"
		if n > 0 {
			name = fmt.Sprintf("%s(%d).gif", base, n)
		}

		path := filepath.Join(outDir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			f.Close()
			logger.Debug("output path claimed",
				zap.String("function", funcName),
				zap.String("src", srcPath),
				zap.String("dst", path))
			return path, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("%w: claim output path: %v", errs.ErrIOUnavailable, err)
		}
	}

	return "", fmt.Errorf("%w: no free output name for %q after %d attempts",
		errs.ErrIOUnavailable, base, maxProbes)
}
