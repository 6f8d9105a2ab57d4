package player

import (
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// ipcCommand is one line of mpv's JSON-IPC protocol. mpv echoes RequestID in its reply.
type ipcCommand struct {
	Command   []interface{} `json:"command"`
	RequestID int64         `json:"request_id"`
}

// ipcResponse is either a reply (Event empty) or an asynchronous event line.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	Error     string      `json:"error"`
	RequestID int64       `json:"request_id"`
	Event     string      `json:"event"`
}

const (
	ipcAttempts   = 3
	ipcRetryDelay = 100 * time.Millisecond
	ipcTimeout    = time.Second
)

var requestIDs atomic.Int64

// sendCommand runs one IPC command, retrying when the socket is not accepting yet.
func (m *MPV) sendCommand(command []interface{}) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.socketPath == "" {
		return nil, errNotStarted
	}

	var err error
	for attempt := 0; attempt < ipcAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(ipcRetryDelay)
		}

		var data interface{}
		var retry bool
		data, retry, err = roundTrip(m.socketPath, command)
		if err == nil || !retry {
			return data, err
		}
	}
	return nil, fmt.Errorf("mpv ipc: %d attempts: %w", ipcAttempts, err)
}

// roundTrip writes command on a fresh connection and waits for the reply carrying its
// request id. retry reports whether the failure happened before mpv saw the command.
func roundTrip(socketPath string, command []interface{}) (data interface{}, retry bool, err error) {
	conn, err := net.DialTimeout("unix", socketPath, ipcTimeout)
	if err != nil {
		return nil, true, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(ipcTimeout)); err != nil {
		return nil, true, err
	}

	id := requestIDs.Add(1)
	if err := json.NewEncoder(conn).Encode(ipcCommand{Command: command, RequestID: id}); err != nil {
		return nil, true, err
	}

	decoder := json.NewDecoder(conn)
	for {
		var resp ipcResponse
		if err := decoder.Decode(&resp); err != nil {
			return nil, false, fmt.Errorf("mpv ipc: read reply: %w", err)
		}
		if resp.Event != "" || resp.RequestID != id {
			continue
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, false, fmt.Errorf("mpv: %s", resp.Error)
		}
		return resp.Data, false, nil
	}
}
