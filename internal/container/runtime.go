// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a docker or podman runtime and runs one-shot
// tool containers that read a document on stdin and write text to stdout.
package container

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime runs tool images through a container engine.
type Runtime interface {
	// Name returns the runtime binary ("docker" or "podman").
	Name() string

	// Available reports whether the binary is on PATH and its daemon or
	// service answers an info command.
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts image with the given entrypoint arguments, with no network,
	// feeding stdin and collecting stdout. The container is removed on exit.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// engine implements Runtime for one container binary. Docker and podman
// take the same run flags and differ in how an image is looked up.
type engine struct {
	bin        string
	imageCheck []string // subcommand that exits 0 when the image exists
	exec       executor
}

func (e *engine) Name() string { return e.bin }

func (e *engine) Available() bool {
	if _, err := e.exec.LookPath(e.bin); err != nil {
		return false
	}
	return e.exec.RunSilent(e.bin, "info") == nil
}

func (e *engine) ImageExists(image string) error {
	args := append(append([]string{}, e.imageCheck...), image)
	if err := e.exec.RunSilent(e.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, e.bin, err)
	}
	return nil
}

func (e *engine) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	full := []string{"run", "--rm", "-i", "--network", "none", image}
	full = append(full, args...)
	if err := e.exec.RunPiped(e.bin, full, stdin, stdout); err != nil {
		return fmt.Errorf("running %s %s: %w", e.bin, image, err)
	}
	return nil
}

func newEngine(bin string, x executor) *engine {
	e := &engine{bin: bin, exec: x}
	switch bin {
	case binPodman:
		e.imageCheck = []string{"image", "exists"}
	default:
		e.imageCheck = []string{"image", "inspect"}
	}
	return e
}

// DetectRuntime returns docker when it is available, podman otherwise.
func DetectRuntime() (Runtime, error) {
	return detect(osExecutor{}, binDocker, binPodman)
}

// DetectPreferred tries the named runtime before the other one.
func DetectPreferred(name string) (Runtime, error) {
	if strings.EqualFold(name, binPodman) {
		return detect(osExecutor{}, binPodman, binDocker)
	}
	return DetectRuntime()
}

func detect(x executor, order ...string) (Runtime, error) {
	for _, bin := range order {
		if e := newEngine(bin, x); e.Available() {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: none of %s found or operational",
		strings.Join(order, ", "))
}
