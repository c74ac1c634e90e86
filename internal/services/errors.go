package services

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	ErrConfiguration  = errors.New("configuration error")
	ErrFilesystem     = errors.New("filesystem error")
	ErrExternalTool   = errors.New("external tool error")
	ErrBinaryNotFound = errors.New("binary not found")
	ErrSelection      = errors.New("selection error")
	ErrSocket         = errors.New("player socket error")
)

// Exit codes returned by the CLI for each error category.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitFilesystem    = 3
	ExitExternalTool  = 4
	ExitSelection     = 5
	ExitSocket        = 6
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		return errors.New(detail)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ToolError classifies a failed external command. A missing executable is
// tagged with ErrBinaryNotFound; any other failure carries the trimmed stderr
// output so the user sees what the tool complained about.
func ToolError(tool, operation string, err error, stderr []byte) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return Wrap(ErrExternalTool, tool, operation, fmt.Sprintf("%s binary not found", tool), errors.Join(ErrBinaryNotFound, err))
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		message := fmt.Sprintf("%s exited with status %d", tool, exitErr.ExitCode())
		if detail := strings.TrimSpace(string(stderr)); detail != "" {
			message += ": " + detail
		}
		return Wrap(ErrExternalTool, tool, operation, message, err)
	}
	return Wrap(ErrExternalTool, tool, operation, fmt.Sprintf("could not start %s", tool), err)
}

// ExitCode maps an error to the process exit status reported by the CLI.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, ErrSelection):
		return ExitSelection
	case errors.Is(err, ErrSocket):
		return ExitSocket
	case errors.Is(err, ErrExternalTool):
		return ExitExternalTool
	case errors.Is(err, ErrFilesystem):
		return ExitFilesystem
	default:
		return ExitFailure
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
