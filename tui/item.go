package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tvremote/tvremote/api"
	"github.com/tvremote/tvremote/icon"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/tasks"
	"github.com/tvremote/tvremote/util"
)

type entryKind int

const (
	parentEntry entryKind = iota
	collectionEntry
	videoEntry
)

// entry is a row of a collection listing.
type entry struct {
	name string
	kind entryKind
}

// listItem adapts the values shown in lists to list.Item.
type listItem struct {
	internal interface{}
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *entry:
		switch e.kind {
		case parentEntry:
			return icon.Get(icon.Folder) + " .."
		case collectionEntry:
			return icon.Get(icon.Folder) + " " + e.name
		default:
			return icon.Get(icon.Video) + " " + util.FileStem(e.name)
		}
	case *api.SearchResult:
		return e.Title
	case *api.TaskState:
		if e.DisplayName != "" {
			return e.DisplayName
		}
		return e.Name
	case *api.Conversion:
		return e.Name
	default:
		return t.FilterValue()
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *entry:
		if e.kind == videoEntry {
			return style.Faint(e.name)
		}
		return ""
	case *api.SearchResult:
		engine := lipgloss.NewStyle().Foreground(style.AccentColor).Render(string(e.Engine))
		if e.Description == "" {
			return engine
		}
		return fmt.Sprintf("%s • %s", engine, e.Description)
	case *api.TaskState:
		summary := tasks.Summary(*e)
		if e.Finished {
			return lipgloss.NewStyle().Foreground(style.SuccessColor).Render(summary)
		}
		if e.ErrorString != "" {
			return lipgloss.NewStyle().Foreground(style.ErrorColor).Render(summary)
		}
		return summary
	case *api.Conversion:
		return e.Description
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *entry:
		return e.name
	case *api.SearchResult:
		return e.Title
	case *api.TaskState:
		return e.Name
	case *api.Conversion:
		return e.Name
	case string:
		return e
	default:
		return ""
	}
}

// entries lists the parent link, child collections and videos of a collection.
func entries(details api.CollectionDetails) []*entry {
	var out []*entry
	if details.Collection != "" {
		out = append(out, &entry{name: details.ParentCollection, kind: parentEntry})
	}
	for _, c := range details.ChildCollections {
		out = append(out, &entry{name: c, kind: collectionEntry})
	}
	for _, v := range details.Videos {
		out = append(out, &entry{name: v, kind: videoEntry})
	}
	return out
}
