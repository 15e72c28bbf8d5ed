// Package render prints client results for the godoit CLI, as tables or as
// indented JSON when --json is set.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/akyaiy/godoit/idoit"
	"github.com/jedib0t/go-pretty/v6/table"
)

type Renderer struct {
	W    io.Writer
	JSON bool
}

func New(w io.Writer, asJSON bool) *Renderer {
	return &Renderer{W: w, JSON: asJSON}
}

// Raw prints v as indented JSON regardless of mode.
func (r *Renderer) Raw(v any) error {
	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.W)
	t.AppendHeader(header)
	t.AppendSeparator()
	return t
}

func (r *Renderer) Version(v *idoit.VersionResult) error {
	if r.JSON {
		return r.Raw(v)
	}
	t := r.newTable(table.Row{"Version", "Type", "Step", "User", "Tenant", "Language"})
	t.AppendRow(table.Row{v.Version, v.Type, v.Step, v.Login.Username, v.Login.Mandator, v.Login.Language})
	t.Render()
	return nil
}

func (r *Renderer) Login(l *idoit.LoginResult) error {
	if r.JSON {
		return r.Raw(l)
	}
	t := r.newTable(table.Row{"User ID", "Username", "Name", "Mail", "Tenant", "Language", "Session"})
	t.AppendRow(table.Row{l.UserID, l.Username, l.Name, l.Mail, l.Mandator, l.Language, l.SessionID})
	t.Render()
	return nil
}

func (r *Renderer) Search(results []idoit.SearchResult) error {
	if r.JSON {
		return r.Raw(results)
	}
	t := r.newTable(table.Row{"ID", "Key", "Value", "Score", "Link"})
	for _, s := range results {
		t.AppendRow(table.Row{s.DocumentID, s.Key, s.Value, s.Score, s.Link})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(results)})
	t.Render()
	return nil
}

// Constants prints one table with a kind column, entries sorted by constant.
func (r *Renderer) Constants(c *idoit.Constants) error {
	if r.JSON {
		return r.Raw(c)
	}
	t := r.newTable(table.Row{"Kind", "Constant", "Title"})
	appendSorted := func(kind string, m map[string]string) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			t.AppendRow(table.Row{kind, k, m[k]})
		}
	}
	appendSorted("object type", c.ObjectTypes)
	appendSorted("global category", c.Categories.Global)
	appendSorted("specific category", c.Categories.Specific)
	appendSorted("record status", c.RecordStates)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	t.Render()
	return nil
}

func (r *Renderer) Object(o *idoit.Object) error {
	if r.JSON {
		return r.Raw(o)
	}
	t := r.newTable(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"id", o.ID},
		{"title", o.Title},
		{"sysid", o.SysID},
		{"type", fmt.Sprintf("%s (%d)", o.TypeTitle, o.ObjectType)},
		{"status", o.Status},
		{"cmdb status", fmt.Sprintf("%s (%d)", o.CMDBStatusTitle, o.CMDBStatus)},
		{"created", o.Created},
		{"updated", o.Updated},
	})
	t.Render()
	return nil
}

func (r *Renderer) Created(c *idoit.ObjectCreateResult) error {
	if r.JSON {
		return r.Raw(c)
	}
	_, err := fmt.Fprintf(r.W, "%s: id %s\n", c.Message, strconv.FormatInt(int64(c.ID), 10))
	return err
}

func (r *Renderer) Status(s *idoit.StatusResult) error {
	if r.JSON {
		return r.Raw(s)
	}
	_, err := fmt.Fprintln(r.W, s.Message)
	return err
}

// Message prints a plain line, or {"message": msg} in JSON mode.
func (r *Renderer) Message(msg string) error {
	if r.JSON {
		return r.Raw(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(r.W, msg)
	return err
}
