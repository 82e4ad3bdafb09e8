package fileutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// RawExt is the extension given to saved table snapshots.
const RawExt = ".raw"

const snapshotLockRetry = 50 * time.Millisecond

// SnapshotLockPath is the advisory lock serializing snapshot name selection
// across concurrent invocations.
var SnapshotLockPath = filepath.Join(os.TempDir(), "traceplot-snapshot.lock")

// SnapshotPath returns the requested snapshot destination: explicit when set,
// otherwise the input path with its extension swapped for ".raw".
func SnapshotPath(input, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	return SwapExt(input, RawExt)
}

// SaveSnapshot copies src to dest without overwriting anything: when dest
// exists a numeric suffix is added before the extension. The name actually
// written is returned.
func SaveSnapshot(ctx context.Context, src, dest string) (string, error) {
	if strings.TrimSpace(dest) == "" {
		return "", errors.New("snapshot destination required")
	}

	lock := flock.New(SnapshotLockPath)
	locked, err := lock.TryLockContext(ctx, snapshotLockRetry)
	if err != nil {
		return "", fmt.Errorf("acquire snapshot lock: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("acquire snapshot lock: %s is held", SnapshotLockPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	ext := filepath.Ext(dest)
	final := NextAvailableName(strings.TrimSuffix(dest, ext), ext, Exists)
	if err := CopyExclusive(src, final); err != nil {
		return "", fmt.Errorf("save snapshot %s: %w", final, err)
	}
	return final, nil
}
