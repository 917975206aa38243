//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback

var binPath = "dropselect_e2e"

// Key sequences understood by the form
const (
	KeyEnter    = "\r"
	KeyTab      = "\t"
	KeyEsc      = "\x1b"
	KeySpace    = " "
	KeyDown     = "\x1b[B"
	KeyCtrlA    = "\x01"
	KeyCtrlC    = "\x03"
	KeyQuit     = "q"
	KeyModel    = "m"
	KeyResetAll = "r"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// FormDriver runs the dropselect binary in a PTY and records its output
type FormDriver struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewFormDriver creates a driver with a private workspace directory
func NewFormDriver(t *testing.T) *FormDriver {
	t.Helper()
	return &FormDriver{
		t:         t,
		buf:       make([]byte, ringSize),
		workspace: t.TempDir(),
	}
}

// ConfigPath returns a config file path inside the workspace
func (d *FormDriver) ConfigPath(name string) string {
	return filepath.Join(d.workspace, name)
}

// Start launches the binary with the given arguments
func (d *FormDriver) Start(args ...string) error {
	d.cmd = exec.Command(binPath, append([]string{"--log", filepath.Join(d.workspace, "e2e.log")}, args...)...)
	d.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+d.workspace,
		"DROPSELECT_E2E_TEST=1",
	)

	ptmx, err := pty.StartWithSize(d.cmd, &pty.Winsize{Rows: 50, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}
	d.pty = ptmx

	go d.read()
	return nil
}

func (d *FormDriver) read() {
	chunk := make([]byte, 8192)
	for {
		n, err := d.pty.Read(chunk)
		if n > 0 {
			d.mu.Lock()
			for _, c := range chunk[:n] {
				d.buf[d.head] = c
				d.head = (d.head + 1) % ringSize
				if d.head == 0 {
					d.full = true
				}
			}
			d.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes raw key sequences to the PTY
func (d *FormDriver) Send(keys ...string) {
	d.t.Helper()
	for _, k := range keys {
		if _, err := d.pty.Write([]byte(k)); err != nil {
			d.t.Fatalf("failed to send %q: %v", k, err)
		}
		time.Sleep(30 * time.Millisecond)
	}
}

// Ready waits for the app to render its first frame
func (d *FormDriver) Ready() bool {
	d.t.Helper()
	return d.WaitFor(func(s string) bool { return strings.Contains(s, "__READY__") }, 5*time.Second)
}

// SeePlain waits for text to appear in the ANSI-stripped output
func (d *FormDriver) SeePlain(text string) bool {
	d.t.Helper()
	return d.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, 3*time.Second)
}

// WaitFor polls the output until pred holds or timeout elapses
func (d *FormDriver) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	d.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(d.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Snapshot returns everything captured so far
func (d *FormDriver) Snapshot() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.full {
		return string(d.buf[:d.head])
	}
	out := make([]byte, 0, ringSize)
	out = append(out, d.buf[d.head:]...)
	out = append(out, d.buf[:d.head]...)
	return string(out)
}

// Wait waits for the process to exit
func (d *FormDriver) Wait(timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- d.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("process did not exit within %s", timeout)
	}
}

// Cleanup closes the PTY and kills the process if still running
func (d *FormDriver) Cleanup() {
	if d.pty != nil {
		_ = d.pty.Close()
		d.pty = nil
	}
	if d.cmd != nil && d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
		_, _ = d.cmd.Process.Wait()
	}
}
