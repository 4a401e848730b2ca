// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/frontkit/internal/server"
	"github.com/MKhiriev/frontkit/internal/service"
	"github.com/MKhiriev/frontkit/models"
)

const (
	refreshInterval = 500 * time.Millisecond
	statusTimeout   = 2 * time.Second
	visibleLogLines = 12
)

type devModel struct {
	ctx  context.Context
	dev  service.DevService
	urls server.URLs
	info models.AppBuildInfo
	logs *LogBuffer

	open     func(url string) error
	copyText func(text string) error

	help     help.Model
	showURLs bool
	status   string
	width    int

	restarting bool
	quitByUser bool
}

func newDevModel(ctx context.Context, dev service.DevService, urls server.URLs, info models.AppBuildInfo, logs *LogBuffer,
	open, copyText func(string) error) devModel {
	return devModel{
		ctx:      ctx,
		dev:      dev,
		urls:     urls,
		info:     info,
		logs:     logs,
		open:     open,
		copyText: copyText,
		help:     help.New(),
		showURLs: true,
	}
}

func (m devModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m devModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case restartDoneMsg:
		m.restarting = false
		m.status = "server restarted"
		if msg.err != nil {
			m.status = "restart failed: " + msg.err.Error()
		}
		return m, clearStatusAfter()

	case openedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, clearStatusAfter()
		}
		return m, nil

	case copiedMsg:
		m.status = "copied " + m.urls.Local
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		}
		return m, clearStatusAfter()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m devModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit

	case key.Matches(msg, keys.restart):
		if m.restarting {
			return m, nil
		}
		m.restarting = true
		m.status = "restarting..."
		dev, ctx := m.dev, m.ctx
		return m, func() tea.Msg {
			return restartDoneMsg{err: dev.Restart(ctx)}
		}

	case key.Matches(msg, keys.urls):
		m.showURLs = !m.showURLs
		return m, nil

	case key.Matches(msg, keys.open):
		open, url := m.open, m.urls.Local
		return m, func() tea.Msg {
			return openedMsg{err: open(url)}
		}

	case key.Matches(msg, keys.copy):
		copyFn, url := m.copyText, m.urls.Local
		return m, func() tea.Msg {
			return copiedMsg{err: copyFn(url)}
		}

	case key.Matches(msg, keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m devModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("frontkit dev"))
	b.WriteString(" ")
	b.WriteString(faintStyle.Render(valueOrNA(m.info.BuildVersion())))
	b.WriteString("\n\n")

	if m.showURLs {
		b.WriteString(renderURLs(m.urls))
		b.WriteString("\n")
	}

	b.WriteString(renderBuildStatus(m.dev.Status()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	if lines := m.logs.Last(visibleLogLines); len(lines) > 0 {
		width := m.width - 8
		for i, line := range lines {
			lines[i] = fitText(line, width)
		}
		b.WriteString(logBoxStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(keys))

	return appStyle.Render(b.String())
}

func renderURLs(urls server.URLs) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Local:"))
	b.WriteString(urlStyle.Render(urls.Local))
	b.WriteString("\n")
	if len(urls.Network) == 0 {
		b.WriteString(labelStyle.Render("Network:"))
		b.WriteString(faintStyle.Render("use --host to expose"))
		b.WriteString("\n")
	}
	for _, u := range urls.Network {
		b.WriteString(labelStyle.Render("Network:"))
		b.WriteString(urlStyle.Render(u))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBuildStatus(st service.BuildStatus) string {
	switch {
	case st.At.IsZero():
		return faintStyle.Render("building...")
	case !st.OK:
		first := ""
		if len(st.Errors) > 0 {
			first = strings.SplitN(st.Errors[0], "\n", 2)[0]
		}
		return errorStyle.Render(fmt.Sprintf("build failed (%d errors)", len(st.Errors))) + " " + first
	default:
		return okStyle.Render("ready") + faintStyle.Render(fmt.Sprintf(
			" build #%d, %d files in %s, %s",
			st.Version, st.Files, st.Took.Round(time.Millisecond), humanize.Time(st.At)))
	}
}
