package player

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fakeMPV answers JSON-IPC commands on a unix socket the way mpv does.
type fakeMPV struct {
	path string
	ln   net.Listener

	mu       sync.Mutex
	commands [][]interface{}
	conns    []net.Conn
	props    map[string]interface{}
	// noise is written before every reply, like events mpv interleaves on the socket.
	noise string
}

func startFakeMPV(t *testing.T) *fakeMPV {
	path := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{path: path, ln: ln, props: map[string]interface{}{}}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			f.mu.Lock()
			f.conns = append(f.conns, conn)
			f.mu.Unlock()
			go f.serve(conn)
		}
	}()
	t.Cleanup(f.close)
	return f
}

func (f *fakeMPV) serve(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		reply := ipcResponse{Error: "success", RequestID: cmd.RequestID}
		if len(cmd.Command) == 2 && cmd.Command[0] == "get_property" {
			name, _ := cmd.Command[1].(string)
			if v, ok := f.props[name]; ok {
				reply.Data = v
			} else {
				reply.Error = "property unavailable"
			}
		}
		noise := f.noise
		f.mu.Unlock()

		if noise != "" {
			_, _ = conn.Write([]byte(noise + "\n"))
		}
		data, _ := json.Marshal(reply)
		_, _ = conn.Write(append(data, '\n'))
	}
}

func (f *fakeMPV) set(name string, value interface{}) {
	f.mu.Lock()
	f.props[name] = value
	f.mu.Unlock()
}

func (f *fakeMPV) sent() [][]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]interface{}(nil), f.commands...)
}

// push writes an event line to every open connection.
func (f *fakeMPV) push(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		_, _ = c.Write([]byte(event + "\n"))
	}
}

func (f *fakeMPV) close() {
	_ = f.ln.Close()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		_ = c.Close()
	}
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
