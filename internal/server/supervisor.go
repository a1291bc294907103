package server

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/logging"
	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/notify"
)

const (
	stopTimeout = 5 * time.Second
	// outputDelay bounds how long Wait keeps reading output after the
	// process exits, in case a child still holds the pipes.
	outputDelay = time.Second
)

// Options configures a Supervisor.
type Options struct {
	Binary string
	Port   int
	Bus    *notify.Bus
	// Args are extra arguments appended after the model and port flags.
	Args []string
	// StopTimeout is how long a stopped server has to exit after SIGINT
	// before it is killed. Zero means five seconds.
	StopTimeout time.Duration
}

type process struct {
	entry catalog.Entry
	// cmd is nil until the process is launched. Guarded by Supervisor.mu.
	cmd  *exec.Cmd
	out  *lineLogger
	done chan struct{}
	err  error
}

// Supervisor runs at most one inference server at a time. Its methods never
// wait for a process to exit, so they are safe to call from the UI goroutine.
type Supervisor struct {
	bin   string
	port  int
	args  []string
	bus   *notify.Bus
	grace time.Duration

	mu      sync.Mutex
	current *process
	memory  atomic.Uint64
}

func New(opts Options) *Supervisor {
	if opts.Binary == "" {
		opts.Binary = "llama-server"
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = stopTimeout
	}
	return &Supervisor{
		bin:   opts.Binary,
		port:  opts.Port,
		args:  opts.Args,
		bus:   opts.Bus,
		grace: opts.StopTimeout,
	}
}

// Start launches the server on the model at path, replacing any running
// instance. When one is still shutting down, the launch happens once it has
// exited and released the port; Running reports true in the meantime.
func (s *Supervisor) Start(e catalog.Entry, path string) error {
	if _, err := exec.LookPath(s.bin); err != nil {
		return fmt.Errorf("start %s: %w", s.bin, err)
	}
	prev, err := s.detach()
	if err != nil {
		return err
	}
	p := &process{entry: e, out: newLineLogger(e.ID), done: make(chan struct{})}
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	s.memory.Store(0)
	events.Server.Start(e.ID, s.port)

	if prev == nil {
		if err := s.launch(p, path); err != nil {
			s.clear(p)
			return err
		}
		s.post()
		return nil
	}
	s.post()
	go func() {
		<-prev.done
		if err := s.launch(p, path); err != nil {
			logging.Error(err)
			if s.clear(p) {
				s.post()
			}
		}
	}()
	return nil
}

// launch starts p unless it was stopped while waiting for its predecessor.
// p.done is closed here when the process never starts.
func (s *Supervisor) launch(p *process, path string) error {
	args := append([]string{"-m", path, "--port", strconv.Itoa(s.port)}, s.args...)
	cmd := exec.Command(s.bin, args...)
	cmd.Stdout = p.out
	cmd.Stderr = p.out
	cmd.WaitDelay = outputDelay

	s.mu.Lock()
	if s.current != p {
		s.mu.Unlock()
		close(p.done)
		return nil
	}
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		close(p.done)
		return fmt.Errorf("start %s: %w", s.bin, err)
	}
	p.cmd = cmd
	s.mu.Unlock()

	go s.wait(p, cmd)
	return nil
}

func (s *Supervisor) clear(p *process) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != p {
		return false
	}
	s.current = nil
	return true
}

func (s *Supervisor) wait(p *process, cmd *exec.Cmd) {
	p.err = cmd.Wait()
	p.out.Flush()
	close(p.done)

	if !s.clear(p) {
		return
	}
	s.memory.Store(0)
	events.Server.Exit(p.entry.ID, p.err)
	if p.err != nil {
		logging.Error(fmt.Errorf("server %s exited: %w", p.entry.ID, p.err))
	}
	s.post()
}

// Stop asks the running server to exit and returns without waiting. A server
// still running after the stop timeout is killed. Stopping an idle
// supervisor is a no-op.
func (s *Supervisor) Stop() error {
	_, err := s.detach()
	return err
}

// Close stops the server and waits for it to exit.
func (s *Supervisor) Close() error {
	p, err := s.detach()
	if p != nil {
		<-p.done
	}
	return err
}

// detach interrupts the current process and hands it to a goroutine that
// kills it if it outlives the stop timeout. It returns the detached process,
// whose done channel closes once it has exited or was never launched.
func (s *Supervisor) detach() (*process, error) {
	s.mu.Lock()
	p := s.current
	s.current = nil
	var cmd *exec.Cmd
	if p != nil {
		cmd = p.cmd
	}
	s.mu.Unlock()
	if p == nil {
		return nil, nil
	}
	s.memory.Store(0)
	events.Server.Stop(p.entry.ID)
	defer s.post()
	if cmd == nil {
		return p, nil
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil && !errors.Is(err, os.ErrProcessDone) {
		if kerr := cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
			return p, fmt.Errorf("stop server: %w", kerr)
		}
	}
	go s.escalate(p, cmd)
	return p, nil
}

func (s *Supervisor) escalate(p *process, cmd *exec.Cmd) {
	timer := time.NewTimer(s.grace)
	defer timer.Stop()
	select {
	case <-p.done:
		return
	case <-timer.C:
	}
	events.Server.Kill(p.entry.ID)
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		logging.Error(fmt.Errorf("kill server %s: %w", p.entry.ID, err))
	}
}

func (s *Supervisor) active() *process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Supervisor) Running() bool {
	return s.active() != nil
}

// ActiveModel is the display name of the served model, "" when idle.
func (s *Supervisor) ActiveModel() string {
	if p := s.active(); p != nil {
		return p.entry.DisplayName()
	}
	return ""
}

func (s *Supervisor) Address() string {
	return "localhost:" + strconv.Itoa(s.port)
}

// Port is the port the server listens on.
func (s *Supervisor) Port() int {
	return s.port
}

func (s *Supervisor) IsActive(e catalog.Entry) bool {
	p := s.active()
	return p != nil && p.entry.ID == e.ID
}

// MemoryBytes is the most recent resident-memory sample.
func (s *Supervisor) MemoryBytes() uint64 {
	return s.memory.Load()
}

// SampleMemory reads the server's resident memory and records it. It reports
// zero when no server is running.
func (s *Supervisor) SampleMemory() (uint64, error) {
	s.mu.Lock()
	var pid int
	if s.current != nil && s.current.cmd != nil {
		pid = s.current.cmd.Process.Pid
	}
	s.mu.Unlock()
	if pid == 0 {
		s.memory.Store(0)
		return 0, nil
	}
	rss, err := residentBytes(pid)
	if err != nil {
		return 0, fmt.Errorf("sample server memory: %w", err)
	}
	if s.memory.Swap(rss) != rss {
		events.Server.Memory(rss)
	}
	return rss, nil
}

func (s *Supervisor) post() {
	s.bus.Post(notify.Event{Kind: notify.ServerStateChanged})
}
