// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	onPath   map[string]bool // binary -> LookPath succeeds
	succeeds map[string]bool // "bin arg1 arg2" -> RunSilent succeeds
	piped    func(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.succeeds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	if m.piped != nil {
		return m.piped(name, args, stdin, stdout)
	}
	return nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		order    []string
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				onPath:   map[string]bool{"docker": true},
				succeeds: map[string]bool{"docker info": true},
			},
			order:    []string{binDocker, binPodman},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				onPath:   map[string]bool{"podman": true},
				succeeds: map[string]bool{"podman info": true},
			},
			order:    []string{binDocker, binPodman},
			wantName: "podman",
		},
		{
			name: "docker on PATH but daemon down",
			exec: &mockExecutor{
				onPath:   map[string]bool{"docker": true, "podman": true},
				succeeds: map[string]bool{"podman info": true},
			},
			order:    []string{binDocker, binPodman},
			wantName: "podman",
		},
		{
			name: "podman preferred when both work",
			exec: &mockExecutor{
				onPath:   map[string]bool{"docker": true, "podman": true},
				succeeds: map[string]bool{"docker info": true, "podman info": true},
			},
			order:    []string{binPodman, binDocker},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			order:   []string{binDocker, binPodman},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(tt.exec, tt.order...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name     string
		bin      string
		succeeds map[string]bool
		wantErr  bool
	}{
		{"docker inspect finds image", binDocker, map[string]bool{"docker image inspect poppler:latest": true}, false},
		{"docker image missing", binDocker, nil, true},
		{"podman exists finds image", binPodman, map[string]bool{"podman image exists poppler:latest": true}, false},
		{"podman image missing", binPodman, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(tt.bin, &mockExecutor{succeeds: tt.succeeds})
			err := e.ImageExists("poppler:latest")
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	var gotName string
	var gotArgs []string
	exec := &mockExecutor{
		piped: func(name string, args []string, stdin io.Reader, stdout io.Writer) error {
			gotName, gotArgs = name, args
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("text of " + string(data)))
			return nil
		},
	}

	var out bytes.Buffer
	err := newEngine(binPodman, exec).Run("poppler:latest", []string{"-layout", "-", "-"}, strings.NewReader("sheet.pdf"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != "podman" {
		t.Errorf("binary = %q, want podman", gotName)
	}
	want := "run --rm -i --network none poppler:latest -layout - -"
	if got := strings.Join(gotArgs, " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
	if out.String() != "text of sheet.pdf" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_Failure(t *testing.T) {
	exec := &mockExecutor{
		piped: func(string, []string, io.Reader, io.Writer) error {
			return errors.New("exit status 1")
		},
	}
	err := newEngine(binDocker, exec).Run("poppler:latest", nil, strings.NewReader(""), io.Discard)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "running docker poppler:latest") {
		t.Errorf("error should name runtime and image, got: %v", err)
	}
}
