package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thep200/github-showcase/internal/app"
	"github.com/thep200/github-showcase/internal/catalog"
	"github.com/thep200/github-showcase/internal/model"
	"github.com/thep200/github-showcase/internal/showcase"
	"github.com/thep200/github-showcase/pkg/kafka"
)

var (
	flagQuery  string
	flagLang   string
	flagSort   string
	flagFormat string
)

var railsCmd = &cobra.Command{
	Use:   "rails",
	Short: "Render the featured rail and every spotlight",
	RunE: withData(func(cmd *cobra.Command, a *app.App, data *showcase.Data) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderHeader(data))
		for _, rail := range a.Showcase.Rails(data) {
			fmt.Fprintln(out, renderRail(rail, a.Showcase.Cards(cmd.Context(), rail.Repos)))
		}
		return nil
	}),
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Search, filter and sort every repository",
	RunE: withData(func(cmd *cobra.Command, a *app.App, data *showcase.Data) error {
		repos := catalog.Apply(data.Repos, catalog.Query{Text: flagQuery, Language: flagLang, Sort: flagSort})
		fmt.Fprintln(cmd.OutOrStdout(), renderGrid(repos, time.Now()))
		return nil
	}),
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole showcase as JSON or YAML",
	RunE: withData(func(cmd *cobra.Command, a *app.App, data *showcase.Data) error {
		doc := buildExport(cmd, a, data)
		return writeExport(cmd.OutOrStdout(), flagFormat, doc)
	}),
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a card for every repository to Kafka",
	RunE: withData(func(cmd *cobra.Command, a *app.App, data *showcase.Data) error {
		ctx := cmd.Context()
		producer, err := kafka.NewProducer(a.Config, a.Logger, a.Config.Kafka.TopicCard)
		if err != nil {
			return err
		}
		defer producer.Close()

		now := time.Now()
		cards := a.Showcase.Cards(ctx, data.Repos)
		messages := make([]kafka.Message, 0, len(cards))
		for _, card := range cards {
			messages = append(messages, kafka.Message{
				Key:   card.Name,
				Value: model.NewCardMessage(a.Config.Showcase.Username, card, now),
			})
		}
		if err := producer.PublishBatch(ctx, messages); err != nil {
			return err
		}
		a.Logger.Info(ctx, "Published %d cards to %s", len(messages), a.Config.Kafka.TopicCard)
		return nil
	}),
}

func init() {
	gridCmd.Flags().StringVar(&flagQuery, "q", "", "search terms, all must match name or description")
	gridCmd.Flags().StringVar(&flagLang, "lang", "", "exact primary language")
	gridCmd.Flags().StringVar(&flagSort, "sort", catalog.SortStars, "stars, updated or name")
	exportCmd.Flags().StringVar(&flagFormat, "format", "json", "json or yaml")
}

// withData bootstraps the pipeline and loads the account before run. A load
// failure prints the single user-facing message.
func withData(run func(cmd *cobra.Command, a *app.App, data *showcase.Data) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := a.Showcase.Load(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), showcase.LoadFailedMessage)
			return err
		}
		return run(cmd, a, data)
	}
}

type exportRail struct {
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Featured    bool            `json:"featured" yaml:"featured"`
	Cards       []showcase.Card `json:"cards" yaml:"cards"`
}

type exportDoc struct {
	Account   string        `json:"account" yaml:"account"`
	Name      string        `json:"name" yaml:"name"`
	Stats     catalog.Stats `json:"stats" yaml:"stats"`
	Languages []string      `json:"languages" yaml:"languages"`
	Rails     []exportRail  `json:"rails" yaml:"rails"`
}

func buildExport(cmd *cobra.Command, a *app.App, data *showcase.Data) exportDoc {
	doc := exportDoc{
		Account:   data.Account.Login,
		Name:      data.Account.DisplayName(),
		Stats:     data.Stats(),
		Languages: catalog.Languages(data.Repos),
	}
	for _, rail := range a.Showcase.Rails(data) {
		doc.Rails = append(doc.Rails, exportRail{
			Title:       rail.Title,
			Description: rail.Description,
			Featured:    rail.Featured,
			Cards:       a.Showcase.Cards(cmd.Context(), rail.Repos),
		})
	}
	return doc
}

func writeExport(w io.Writer, format string, doc exportDoc) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("[ERROR] Unsupported export format: %s", format)
	}
}
