package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	githubapi "github.com/thep200/github-showcase/internal/github_api"
	"github.com/thep200/github-showcase/internal/showcase"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	railTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginTop(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(60)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)

func renderHeader(data *showcase.Data) string {
	stats := data.Stats()
	title := headerStyle.Render(data.Account.DisplayName())
	line := dimStyle.Render(fmt.Sprintf("%d repositories · ★ %s", stats.Repositories, showcase.FormatNum(stats.Stars)))
	if data.Account.Bio != "" {
		return lipgloss.JoinVertical(lipgloss.Left, title, data.Account.Bio, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, line)
}

func renderCard(c showcase.Card) string {
	lines := []string{cardTitleStyle.Render(c.Name), c.Text, dimStyle.Render(c.Meta)}
	if len(c.Tags) > 0 {
		lines = append(lines, tagStyle.Render("#"+strings.Join(c.Tags, " #")))
	}
	if c.Image != "" {
		lines = append(lines, dimStyle.Render("img "+c.Image))
	}
	links := []string{c.URL}
	if c.Homepage != "" {
		links = append(links, c.Homepage)
	}
	lines = append(lines, dimStyle.Render(strings.Join(links, "  ")))
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderRail(rail showcase.Rail, cards []showcase.Card) string {
	parts := []string{railTitleStyle.Render(rail.Title)}
	if rail.Description != "" {
		parts = append(parts, dimStyle.Render(rail.Description))
	}
	if len(cards) == 0 {
		parts = append(parts, dimStyle.Render("Nothing to show yet."))
	}
	for _, c := range cards {
		parts = append(parts, renderCard(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderGrid(repos []githubapi.Repository, now time.Time) string {
	if len(repos) == 0 {
		return dimStyle.Render("No repositories match.")
	}
	rows := make([]string, 0, len(repos))
	for _, repo := range repos {
		desc := repo.Description
		if desc == "" {
			desc = "No description."
		}
		rows = append(rows, cardTitleStyle.Render(repo.Name)+"  "+desc+"\n  "+dimStyle.Render(showcase.MetaLine(repo, now)))
	}
	return strings.Join(rows, "\n")
}
