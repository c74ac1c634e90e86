package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
	"time"

	"wallpaper-manager/internal/services"
)

// DefaultSocket is the mpv IPC socket used when none is configured.
const DefaultSocket = "/tmp/wallpaper-mpv-socket"

const dialTimeout = 2 * time.Second

// Client talks to the player's IPC socket.
type Client struct {
	Socket string
}

// NewClient returns a client for socket, or DefaultSocket when blank.
func NewClient(socket string) *Client {
	if strings.TrimSpace(socket) == "" {
		socket = DefaultSocket
	}
	return &Client{Socket: socket}
}

type ipcCommand struct {
	Command []string `json:"command"`
}

// EncodeCommand renders one IPC command line.
func EncodeCommand(args ...string) ([]byte, error) {
	payload, err := json.Marshal(ipcCommand{Command: args})
	if err != nil {
		return nil, err
	}
	return append(payload, '\n'), nil
}

// LoadFile tells the player to replace the current file with path. The reply
// is not read.
func (c *Client) LoadFile(ctx context.Context, path string) error {
	payload, err := EncodeCommand("loadfile", path)
	if err != nil {
		return services.Wrap(services.ErrSocket, "player", "encode loadfile", path, err)
	}
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	if _, err := conn.Write(payload); err != nil {
		return services.Wrap(services.ErrSocket, "player", "write loadfile", c.Socket, err)
	}
	return nil
}

// Alive reports whether something accepts connections on the socket.
func (c *Client) Alive(ctx context.Context) bool {
	conn, err := c.dial(ctx)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.Socket)
	if err != nil {
		return nil, wrapDialError(err, c.Socket)
	}
	return conn, nil
}

func wrapDialError(err error, socket string) error {
	switch {
	case errors.Is(err, syscall.ENOENT) || errors.Is(err, os.ErrNotExist):
		return services.Wrap(services.ErrSocket, "player", "connect",
			fmt.Sprintf("socket %s not found; start the player with `wallpaper-manager daemon`", socket), err)
	case errors.Is(err, syscall.ECONNREFUSED):
		return services.Wrap(services.ErrSocket, "player", "connect",
			fmt.Sprintf("socket %s refused the connection; the player is not running", socket), err)
	default:
		return services.Wrap(services.ErrSocket, "player", "connect", socket, err)
	}
}
