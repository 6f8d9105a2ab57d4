// Package tasks lists, starts and terminates the download and conversion tasks of the media server.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tvremote/tvremote/alert"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/log"
	"github.com/tvremote/tvremote/util"
)

// Manager talks to the tasks endpoints.
type Manager struct {
	api   api.Adaptor
	asker alert.Asker
	log   logrus.FieldLogger
}

// New returns a manager. Without an asker every termination is declined.
func New(adaptor api.Adaptor, asker alert.Asker) *Manager {
	if asker == nil {
		asker = alert.Fixed{Answer: false}
	}
	return &Manager{api: adaptor, asker: asker, log: log.For("tasks")}
}

// WithLogger replaces the logger.
func (m *Manager) WithLogger(l logrus.FieldLogger) *Manager {
	m.log = l
	return m
}

// List returns the running tasks. An error reported by the server is logged as a warning and gives no tasks.
func (m *Manager) List(ctx context.Context) ([]api.TaskState, error) {
	var answer api.ResultsMessage[api.TaskState]
	if err := m.api.Get(ctx, "tasks", &answer); err != nil {
		m.log.WithError(err).Error("list")
		return nil, err
	}
	if answer.Results == nil {
		if answer.Error != nil {
			m.log.Warn(*answer.Error)
		}
		return []api.TaskState{}, nil
	}
	return answer.Results, nil
}

// Add starts downloading a search result.
func (m *Manager) Add(ctx context.Context, item api.SearchResult) error {
	reply, err := m.api.Post(ctx, "tasks", api.TaskRequest{Name: item.Title, Link: item.Link, Engine: item.Engine})
	if err != nil {
		m.log.WithError(err).Error("add")
		return err
	}
	if !reply.OK() {
		err = &api.StatusError{Code: reply.Code, Status: reply.Status, Message: reply.Message()}
		m.log.WithError(err).Errorf("cannot add task %q", item.Title)
		return err
	}
	return nil
}

// Download asks before adding item. It reports whether the task was added.
func (m *Manager) Download(ctx context.Context, item api.SearchResult) (bool, error) {
	ok, err := m.asker.Ask(ctx, fmt.Sprintf("Download %s?", item.Title))
	if err != nil || !ok {
		return false, nil
	}
	if err := m.Add(ctx, item); err != nil {
		return false, err
	}
	return true, nil
}

// Delete terminates task after confirmation. It reports whether the server accepted the termination.
func (m *Manager) Delete(ctx context.Context, task api.TaskState) (bool, error) {
	ok, err := m.asker.Ask(ctx, fmt.Sprintf("Terminate task %q", task.Name+"?"))
	if err != nil || !ok {
		return false, nil
	}

	reply, err := m.api.Delete(ctx, fmt.Sprintf("tasks/%s/%s", task.TaskType, task.Key))
	if err != nil {
		m.log.WithError(err).Error("delete")
		return false, err
	}
	if !reply.OK() {
		err = &api.StatusError{Code: reply.Code, Status: reply.Status}
		m.log.Errorf("cannot terminate task %q: %q", task.Name, reply.Status)
		return false, err
	}
	return true, nil
}

// Detail is one labelled line describing a task.
type Detail struct {
	Label string
	Text  string
}

func (d Detail) String() string {
	if d.Label == "" {
		return d.Text
	}
	return d.Label + ": " + d.Text
}

// Details describes the progress of task. A finished task is only "Finished".
func Details(task api.TaskState) []Detail {
	if task.Finished {
		return []Detail{{Text: "Finished"}}
	}

	var details []Detail
	if task.SizeDetails != "" {
		details = append(details, Detail{"Size", task.SizeDetails})
	}
	if task.Eta != 0 {
		details = append(details, Detail{"Eta", fmt.Sprintf("%s (%.2f%%)", util.SecondsToTimeString(task.Eta), task.PercentDone*100)})
	}
	if task.RateDetails != "" {
		details = append(details, Detail{"Rate", task.RateDetails})
	}
	if task.ProcessDetails != "" {
		details = append(details, Detail{Text: task.ProcessDetails})
	}
	if task.ErrorString != "" {
		details = append(details, Detail{"Error", task.ErrorString})
	}
	return details
}

// Summary joins the details of task on one line.
func Summary(task api.TaskState) string {
	var parts []string
	for _, d := range Details(task) {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "  ")
}
