//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Backend is a mock-server subprocess.
type Backend struct {
	URL string
	cmd *exec.Cmd
	out bytes.Buffer
}

func freeAddr() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return l.Addr().String(), nil
}

// StartBackend runs `ledgerdesk mock-server` and waits until it answers.
func (tf *TUITestFramework) StartBackend() (*Backend, error) {
	addr, err := freeAddr()
	if err != nil {
		return nil, fmt.Errorf("pick port: %w", err)
	}

	b := &Backend{URL: "http://" + addr}
	b.cmd = exec.Command(binPath, "mock-server", "--addr", addr)
	b.cmd.Env = tf.env()
	b.cmd.Stdout = &b.out
	b.cmd.Stderr = &b.out
	if err := b.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mock-server: %w", err)
	}
	tf.backend = b

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(b.URL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return b, nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return nil, fmt.Errorf("mock-server did not come up:\n%s", b.out.String())
}

// Stop interrupts the server and waits for it to exit.
func (b *Backend) Stop() {
	if b.cmd == nil || b.cmd.Process == nil {
		return
	}
	_ = b.cmd.Process.Signal(os.Interrupt)
	done := make(chan struct{})
	go func() {
		_, _ = b.cmd.Process.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		_ = b.cmd.Process.Kill()
	}
}

func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, "config.toml")
}

func (tf *TUITestFramework) TokenPath() string {
	return filepath.Join(tf.workspace, "session")
}

// WriteConfig points ledgerdesk at the backend with files kept in the
// workspace. extra is appended to the [ui] table.
func (tf *TUITestFramework) WriteConfig(extra ...string) error {
	if tf.backend == nil {
		return fmt.Errorf("no backend started")
	}
	cfg := fmt.Sprintf(`company = "Verma Traders"

[api]
base_url = %q
token_file = %q
timeout = "5s"

[ui]
page_size = 10
%s

[log]
path = %q
level = "debug"
`, tf.backend.URL, tf.TokenPath(), strings.Join(extra, "\n"), filepath.Join(tf.workspace, "ledgerdesk.log"))
	return os.WriteFile(tf.ConfigPath(), []byte(cfg), 0o600)
}

// Run executes a non-interactive subcommand and returns its combined output.
func (tf *TUITestFramework) Run(stdin string, args ...string) (string, error) {
	cmd := exec.Command(binPath, append([]string{"--config", tf.ConfigPath()}, args...)...)
	cmd.Env = tf.env()
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// LoggedIn starts a backend, writes the config and logs in as admin.
func (tf *TUITestFramework) LoggedIn(extra ...string) error {
	if _, err := tf.StartBackend(); err != nil {
		return err
	}
	if err := tf.WriteConfig(extra...); err != nil {
		return err
	}
	out, err := tf.Run("admin\n", "login", "--user", "admin")
	if err != nil {
		return fmt.Errorf("login: %w\n%s", err, out)
	}
	return nil
}
