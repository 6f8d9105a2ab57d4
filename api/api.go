// Package api talks to the media server REST API under http://<host>/api/.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/network"
)

// ErrStatus is wrapped by StatusError.
var ErrStatus = errors.New("unexpected status")

// SuccessCodes are the statuses mutating endpoints answer on success.
var SuccessCodes = []int{http.StatusOK, http.StatusAccepted, http.StatusNoContent}

// StatusError is returned by Get for non 2xx answers.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Message)
	}
	return e.Status
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Reply is a fully read response of a mutating request.
type Reply struct {
	Code   int
	Status string
	Body   []byte
}

// OK reports whether the status is one of SuccessCodes.
func (r *Reply) OK() bool {
	return lo.Contains(SuccessCodes, r.Code)
}

// Decode unmarshals the body.
func (r *Reply) Decode(out any) error {
	return json.Unmarshal(r.Body, out)
}

// Message extracts a server supplied message from a GeneralResponse or ResultsMessage body.
func (r *Reply) Message() string {
	return serverMessage(r.Body)
}

// Adaptor is the Media API as seen by the rest of the application.
type Adaptor interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, payload any) (*Reply, error)
	Put(ctx context.Context, path string, payload any) (*Reply, error)
	Delete(ctx context.Context, path string) (*Reply, error)
	Host() string
}

// HTTP is the Adaptor backed by net/http.
type HTTP struct {
	host   string
	client *http.Client
}

// New returns an adaptor for host. A nil client uses network.Client.
func New(host string, client *http.Client) *HTTP {
	if client == nil {
		client = network.Client
	}
	return &HTTP{host: host, client: client}
}

func (h *HTTP) Host() string {
	return h.host
}

// URL returns the absolute URL of an API path.
func (h *HTTP) URL(path string) string {
	return "http://" + h.host + constant.APIPath + strings.TrimPrefix(path, "/")
}

// Get decodes the JSON answer of path into out.
func (h *HTTP) Get(ctx context.Context, path string, out any) error {
	reply, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if reply.Code < 200 || reply.Code > 299 {
		return &StatusError{Code: reply.Code, Status: reply.Status, Message: reply.Message()}
	}
	if err := reply.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (h *HTTP) Post(ctx context.Context, path string, payload any) (*Reply, error) {
	return h.do(ctx, http.MethodPost, path, payload)
}

func (h *HTTP) Put(ctx context.Context, path string, payload any) (*Reply, error) {
	return h.do(ctx, http.MethodPut, path, payload)
}

func (h *HTTP) Delete(ctx context.Context, path string) (*Reply, error) {
	return h.do(ctx, http.MethodDelete, path, nil)
}

func (h *HTTP) do(ctx context.Context, method, path string, payload any) (*Reply, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.URL(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &Reply{Code: resp.StatusCode, Status: resp.Status, Body: data}, nil
}

func serverMessage(body []byte) string {
	var reply struct {
		Message string   `json:"message"`
		Error   *string  `json:"error"`
		Errors  []string `json:"errors"`
	}
	if json.Unmarshal(body, &reply) != nil {
		return ""
	}
	switch {
	case reply.Error != nil && *reply.Error != "":
		return *reply.Error
	case len(reply.Errors) > 0:
		return strings.Join(reply.Errors, ", ")
	default:
		return reply.Message
	}
}
