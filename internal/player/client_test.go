package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"wallpaper-manager/internal/services"
)

func listen(t *testing.T) (string, *net.UnixListener) {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "mpv.sock")
	l, err := net.ListenUnix("unix", &net.UnixAddr{Name: socket, Net: "unix"})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return socket, l
}

func TestEncodeCommandEscapesPaths(t *testing.T) {
	payload, err := EncodeCommand("loadfile", `/walls/quote "a".mp4`)
	if err != nil {
		t.Fatalf("EncodeCommand returned error: %v", err)
	}
	if payload[len(payload)-1] != '\n' {
		t.Fatalf("expected newline terminator, got %q", payload)
	}
	var decoded struct {
		Command []string `json:"command"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(decoded.Command) != 2 || decoded.Command[1] != `/walls/quote "a".mp4` {
		t.Fatalf("unexpected command %v", decoded.Command)
	}
}

func TestLoadFileWritesOneLine(t *testing.T) {
	socket, l := listen(t)
	received := make(chan []string, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var lines []string
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		received <- lines
	}()

	if err := NewClient(socket).LoadFile(context.Background(), "/walls/clip.mp4"); err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	select {
	case lines := <-received:
		if len(lines) != 1 || lines[0] != `{"command":["loadfile","/walls/clip.mp4"]}` {
			t.Fatalf("unexpected payload %q", lines)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for payload")
	}
}

func TestLoadFileMissingSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing.sock")
	err := NewClient(socket).LoadFile(context.Background(), "/walls/clip.mp4")
	if !errors.Is(err, services.ErrSocket) {
		t.Fatalf("expected socket error, got %v", err)
	}
	if services.ExitCode(err) != services.ExitSocket {
		t.Fatalf("expected socket exit code, got %d", services.ExitCode(err))
	}
}

func TestLoadFileRefusedSocket(t *testing.T) {
	socket, l := listen(t)
	l.SetUnlinkOnClose(false)
	_ = l.Close()

	client := NewClient(socket)
	if client.Alive(context.Background()) {
		t.Fatal("closed listener should not be alive")
	}
	err := client.LoadFile(context.Background(), "/walls/clip.mp4")
	if !errors.Is(err, services.ErrSocket) {
		t.Fatalf("expected socket error, got %v", err)
	}
}

func TestNewClientDefaultSocket(t *testing.T) {
	if NewClient("").Socket != DefaultSocket {
		t.Fatalf("expected default socket %s", DefaultSocket)
	}
}
