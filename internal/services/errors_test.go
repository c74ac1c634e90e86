package services_test

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"wallpaper-manager/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "ffmpeg", "thumbnail", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"ffmpeg", "thumbnail", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrSelection, "", "", "", nil)
	if !errors.Is(err, services.ErrSelection) {
		t.Fatalf("expected selection marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, services.ExitOK},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "bad", nil), services.ExitConfiguration},
		{"filesystem", services.Wrap(services.ErrFilesystem, "scan", "open", "denied", nil), services.ExitFilesystem},
		{"tool", services.Wrap(services.ErrExternalTool, "ffmpeg", "rescale", "exit 1", nil), services.ExitExternalTool},
		{"selection", services.Wrap(services.ErrSelection, "picker", "select", "empty", nil), services.ExitSelection},
		{"socket", services.Wrap(services.ErrSocket, "player", "dial", "refused", nil), services.ExitSocket},
		{"other", errors.New("plain"), services.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToolErrorMissingBinary(t *testing.T) {
	_, lookErr := exec.LookPath("definitely-not-a-real-binary-xyz")
	if lookErr == nil {
		t.Skip("unexpected binary on PATH")
	}
	err := services.ToolError("ffprobe", "probe", lookErr, nil)
	if !errors.Is(err, services.ErrBinaryNotFound) {
		t.Fatalf("expected ErrBinaryNotFound, got %v", err)
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "ffprobe binary not found") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestToolErrorExitStatusIncludesStderr(t *testing.T) {
	cmd := exec.Command("sh", "-c", "exit 3")
	runErr := cmd.Run()
	if runErr == nil {
		t.Fatal("expected command failure")
	}
	err := services.ToolError("ffmpeg", "rescale", runErr, []byte("  Invalid data found  \n"))
	if errors.Is(err, services.ErrBinaryNotFound) {
		t.Fatalf("process failure must not be reported as missing binary: %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "exited with status 3") || !strings.Contains(msg, "Invalid data found") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestToolErrorNil(t *testing.T) {
	if err := services.ToolError("ffmpeg", "rescale", nil, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
