package window

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/appmenu/internal/logging"
)

// Launcher is a Factory that opens each window as an external process, for
// example a browser in app mode pointed at the front-end bridge. The process
// exiting is treated as the window closing.
type Launcher struct {
	ctx     context.Context
	command string
	args    []string
	baseURL string
}

// NewLauncher returns a Launcher running command with args. Arguments may use
// the placeholders {url}, {title}, {name}, {width} and {height}, for example
// "chromium --app={url} --window-size={width},{height}". When command is empty
// the platform URL opener is used. Openers hand the URL to an existing browser
// and exit at once, which releases the registry slot immediately, so every
// activation opens another tab; see Tracked.
func NewLauncher(ctx context.Context, command string, args []string, baseURL string) *Launcher {
	return &Launcher{
		ctx:     ctx,
		command: strings.TrimSpace(command),
		args:    append([]string(nil), args...),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Tracked reports whether the launched process lives as long as the window,
// which is what keeps a registry slot occupied while the window is open.
func (l *Launcher) Tracked() bool {
	return l.command != ""
}

// Create starts the window process.
func (l *Launcher) Create(name string, cfg Config, closed func()) (Window, error) {
	target, err := l.resolve(cfg.Content)
	if err != nil {
		return nil, err
	}

	argv := l.commandLine(name, cfg, target)
	cmd := exec.CommandContext(l.ctx, argv[0], argv[1:]...)
	cmd.Env = buildWindowEnv(name, cfg, target)

	w := &processWindow{
		name: name,
		cmd:  cmd,
		done: make(chan struct{}),
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	logging.Debugf("window %s started pid=%d: %s", name, cmd.Process.Pid, strings.Join(argv, " "))

	go w.wait(closed)
	return w, nil
}

func (l *Launcher) resolve(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errors.New("window has no content locator")
	}
	if u, err := url.Parse(content); err == nil && u.IsAbs() {
		return content, nil
	}
	if l.baseURL == "" {
		return "", fmt.Errorf("relative content %q needs a base URL", content)
	}
	if !strings.HasPrefix(content, "/") {
		content = "/" + content
	}
	target := l.baseURL + content
	if _, err := url.ParseRequestURI(target); err != nil {
		return "", fmt.Errorf("invalid window URL %q: %w", target, err)
	}
	return target, nil
}

func (l *Launcher) commandLine(name string, cfg Config, target string) []string {
	if l.command == "" {
		return openerCommand(target)
	}

	replacer := strings.NewReplacer(
		"{url}", target,
		"{title}", cfg.Title,
		"{name}", name,
		"{width}", strconv.Itoa(cfg.Width),
		"{height}", strconv.Itoa(cfg.Height),
	)
	argv := make([]string, 0, len(l.args)+1)
	argv = append(argv, l.command)
	for _, arg := range l.args {
		argv = append(argv, replacer.Replace(arg))
	}
	return argv
}

func buildWindowEnv(name string, cfg Config, target string) []string {
	env := os.Environ()
	env = append(env, fmt.Sprintf("APPMENU_WINDOW_NAME=%s", name))
	env = append(env, fmt.Sprintf("APPMENU_WINDOW_URL=%s", target))
	env = append(env, fmt.Sprintf("APPMENU_WINDOW_SIZE=%dx%d", cfg.Width, cfg.Height))
	env = append(env, fmt.Sprintf("APPMENU_WINDOW_RESIZABLE=%t", cfg.Resizable))
	env = append(env, fmt.Sprintf("APPMENU_WINDOW_MINIMIZABLE=%t", cfg.Minimizable))
	env = append(env, fmt.Sprintf("APPMENU_WINDOW_MAXIMIZABLE=%t", cfg.Maximizable))
	env = append(env, fmt.Sprintf("APPMENU_WINDOW_CENTERED=%t", cfg.Centered))
	return env
}

type processWindow struct {
	name string
	cmd  *exec.Cmd
	done chan struct{}
	mu   sync.Mutex
	err  error
}

func (w *processWindow) wait(closed func()) {
	err := w.cmd.Wait()
	w.mu.Lock()
	w.err = err
	w.mu.Unlock()
	close(w.done)
	if err != nil {
		log.Printf("window %s exited: %v", w.name, err)
	} else {
		logging.Debugf("window %s exited", w.name)
	}
	if closed != nil {
		closed()
	}
}

// Focus cannot raise a foreign process window portably; the process is
// expected to raise itself when relaunched, so a live window is left as is.
func (w *processWindow) Focus() error {
	select {
	case <-w.done:
		return fmt.Errorf("window %s already exited", w.name)
	default:
		return nil
	}
}

func (w *processWindow) Close() error {
	if w.cmd.Process == nil {
		return nil
	}
	if err := terminateProcess(w.cmd); err != nil {
		if !errors.Is(err, os.ErrProcessDone) {
			return err
		}
	}
	select {
	case <-w.done:
		return nil
	case <-time.After(5 * time.Second):
		return w.cmd.Process.Kill()
	}
}
