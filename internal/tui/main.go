// Copyright (c) 2026 nrbf-go Authors

package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nrbf-go/nrbf-go"
)

// Config configures the record-browser TUI.
type Config struct {
	Path string // NRBF file to open
	Zstd bool   // force zstd decompression regardless of filename suffix
}

func Run(config Config) error {
	model := NewAppModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

//////////////////////////////////////////////////////////////////////////////

// AppModel drives a single page: a table of decoded records on top, a
// detail pane for the selected record's Flat JSON rendering below.
type AppModel struct {
	config Config

	records   []nrbf.Record
	fileBytes int64
	loadError error

	table  table.Model
	detail string

	width  int
	height int
	help   help.Model
	keyMap AppKeyMap

	headerStyle lipgloss.Style
	footerStyle lipgloss.Style
}

func NewAppModel(config Config) AppModel {
	t := table.New(table.WithColumns([]table.Column{
		{Title: "#", Width: 6},
		{Title: "Record", Width: 28},
		{Title: "Summary", Width: 60},
	}), table.WithStyles(recordTableStyles), table.WithFocused(true))

	return AppModel{
		config: config,
		table:  t,
		width:  80,
		height: 24,
		help:   help.New(),
		keyMap: DefaultAppKeyMap(),
		headerStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorDarkPurple),
		footerStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorDarkPurple),
	}
}

///////////////////////////////////////////////////////////////////////////////
// AppKeyMap

type AppKeyMap struct {
	Quit   key.Binding
	Select key.Binding
}

func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc", "q"),
			key.WithHelp("esc/q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "inspect record"),
		),
	}
}

func (m *AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.Quit, m.Select}}
}

func (m AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Quit, m.Select}
}

//////////////////////////////////////////////////////////////////////////////
// BubbleTea interface

func (m AppModel) Init() tea.Cmd {
	return loadRecords(m.config.Path, m.config.Zstd)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight((msg.Height - 6) / 2)

	case recordsLoadedMsg:
		m.loadError = msg.Error
		m.records = msg.Records
		m.fileBytes = msg.FileBytes

		rows := make([]table.Row, len(m.records))
		for i, rec := range m.records {
			rows[i] = table.Row{
				strconv.Itoa(i),
				rec.RecordType().String(),
				summarizeRecord(rec),
			}
		}
		m.table.SetRows(rows)
		if len(rows) > 0 {
			m.detail = renderDetail(m.records[0])
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Select):
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.records) {
				m.detail = renderDetail(m.records[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	if idx := m.table.Cursor(); idx >= 0 && idx < len(m.records) {
		m.detail = renderDetail(m.records[idx])
	}
	return m, cmd
}

func (m AppModel) View() string {
	view := m.headerView() + "\n"
	if m.loadError != nil {
		view += lipgloss.NewStyle().Width(m.width).Render(fmt.Sprintf("error: %s", m.loadError.Error()))
		return view
	}
	view += borderStyle.Render(m.table.View()) + "\n"
	view += borderStyle.Width(m.width - 2).Render(m.detail) + "\n"
	view += m.footerView()
	return view
}

///////////////////////////////////////////////////////////////////////////////

func (m *AppModel) headerView() string {
	header := m.headerStyle.Render(fmt.Sprintf(" nrbf-go-tui — %s (%s, %d records) ",
		m.config.Path, humanize.Bytes(uint64(maxInt(0, m.fileBytes))), len(m.records)))
	restOfLine := maxInt(0, m.width-lipgloss.Width(header))
	return header + m.headerStyle.Render(strings.Repeat(" ", restOfLine))
}

func (m *AppModel) footerView() string {
	return m.help.View(&m.keyMap)
}

///////////////////////////////////////////////////////////////////////////////

type recordsLoadedMsg struct {
	Records   []nrbf.Record
	FileBytes int64
	Error     error
}

func loadRecords(path string, zstd bool) tea.Cmd {
	return func() tea.Msg {
		var fileBytes int64
		if info, statErr := os.Stat(path); statErr == nil {
			fileBytes = info.Size()
		}

		src, closer, err := nrbf.MakeCompressedReader(path, zstd)
		if err != nil {
			return recordsLoadedMsg{Error: err, FileBytes: fileBytes}
		}
		defer closer.Close()

		dec := nrbf.NewDecoder(src)
		records, err := dec.All()
		return recordsLoadedMsg{Records: records, FileBytes: fileBytes, Error: err}
	}
}

// summarizeRecord renders a one-line, table-friendly summary of rec's
// identifying fields, skipping deeply nested member/element values.
func summarizeRecord(rec nrbf.Record) string {
	switch r := rec.(type) {
	case *nrbf.SerializationHeader:
		return fmt.Sprintf("root_id=%d major=%d minor=%d", r.RootId, r.MajorVersion, r.MinorVersion)
	case *nrbf.BinaryLibrary:
		return fmt.Sprintf("id=%d name=%s", r.LibraryId, r.LibraryName)
	case *nrbf.ClassWithMembersAndTypes:
		return fmt.Sprintf("id=%d type=%s members=%d", r.ClassInfo.ObjectId, r.ClassInfo.Name, r.ClassInfo.MemberCount)
	case *nrbf.SystemClassWithMembersAndTypes:
		return fmt.Sprintf("id=%d type=%s members=%d", r.ClassInfo.ObjectId, r.ClassInfo.Name, r.ClassInfo.MemberCount)
	case *nrbf.ClassWithMembers:
		return fmt.Sprintf("id=%d type=%s members=%d", r.ClassInfo.ObjectId, r.ClassInfo.Name, r.ClassInfo.MemberCount)
	case *nrbf.SystemClassWithMembers:
		return fmt.Sprintf("id=%d type=%s members=%d", r.ClassInfo.ObjectId, r.ClassInfo.Name, r.ClassInfo.MemberCount)
	case *nrbf.ClassWithId:
		return fmt.Sprintf("id=%d metadata_id=%d", r.ObjectId, r.MetadataId)
	case *nrbf.BinaryObjectString:
		return fmt.Sprintf("id=%d value=%q", r.ObjectId, truncate(r.Value, 40))
	case *nrbf.BinaryArray:
		return fmt.Sprintf("id=%d rank=%d lengths=%v", r.ObjectId, r.Rank, r.Lengths)
	case *nrbf.ArraySinglePrimitive:
		return fmt.Sprintf("id=%d len=%d type=%s", r.ObjectId, r.Length, r.PrimitiveTypeEnum)
	case *nrbf.ArraySingleObject:
		return fmt.Sprintf("id=%d len=%d", r.ObjectId, r.Length)
	case *nrbf.ArraySingleString:
		return fmt.Sprintf("id=%d len=%d", r.ObjectId, r.Length)
	case *nrbf.MemberPrimitiveTyped:
		return fmt.Sprintf("type=%s", r.PrimitiveTypeEnum)
	case *nrbf.MemberReference:
		return fmt.Sprintf("id_ref=%d", r.IdRef)
	case *nrbf.ObjectNullMultiple:
		return fmt.Sprintf("count=%d", r.NullCount)
	case *nrbf.ObjectNullMultiple256:
		return fmt.Sprintf("count=%d", r.NullCount)
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func renderDetail(rec nrbf.Record) string {
	var buf strings.Builder
	if err := nrbf.FlatEncode(&buf, []nrbf.Record{rec}); err != nil {
		return fmt.Sprintf("error: %s", err.Error())
	}
	return buf.String()
}
