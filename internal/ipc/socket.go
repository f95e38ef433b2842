package ipc

import (
	"fmt"
	"os"
	"path/filepath"
)

// SocketEnv overrides the control socket location for both ends.
const SocketEnv = "RETRODESK_SOCKET"

const socketName = "retrodesk.sock"

// DefaultSocketPath resolves the control socket. $RETRODESK_SOCKET wins;
// otherwise the socket lives in $XDG_RUNTIME_DIR, then /run/user/<uid>,
// then a private per-user directory under the system temp dir.
func DefaultSocketPath() (string, error) {
	if p := os.Getenv(SocketEnv); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, socketName), nil
	}

	uid := os.Getuid()
	runUser := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUser); err == nil && info.IsDir() {
		return filepath.Join(runUser, socketName), nil
	}

	dir := filepath.Join(os.TempDir(), fmt.Sprintf("retrodesk-%d", uid))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return filepath.Join(dir, socketName), nil
}
