package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-quote-keeper/models"
)

func (a *App) quotesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quotes",
		Aliases: []string{"quote", "q"},
		Short:   "Manage quotes",
	}
	cmd.AddCommand(
		a.quotesListCommand(),
		a.quotesAddCommand(),
		a.quotesRemoveCommand(),
	)
	return cmd
}

func (a *App) quotesListCommand() *cobra.Command {
	var (
		folderID, tagID int64
		search          string
		limit, offset   uint64
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := models.QuoteFilter{Search: search, Limit: limit, Offset: offset}
			if cmd.Flags().Changed("folder") {
				filter.FolderID = &folderID
			}
			if cmd.Flags().Changed("tag") {
				filter.TagID = &tagID
			}

			quotes, err := a.adapter.ListQuotes(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list quotes: %w", err)
			}
			if quotes == nil {
				quotes = []models.Quote{}
			}
			return a.print(quotes)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&folderID, "folder", 0, "only quotes in this folder")
	flags.Int64Var(&tagID, "tag", 0, "only quotes carrying this tag")
	flags.StringVarP(&search, "search", "s", "", "case-insensitive text search")
	flags.Uint64Var(&limit, "limit", 0, "page size")
	flags.Uint64Var(&offset, "offset", 0, "page offset")
	return cmd
}

func (a *App) quotesAddCommand() *cobra.Command {
	var (
		folderID      int64
		tagIDs        []int64
		width, height int
		color         string
	)
	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Create a quote",
		Long: `Create a quote. Content that is already a JSON rich-text document is sent
as is; plain text is wrapped into a single paragraph.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := models.CreateQuoteRequest{
				Content: quoteDocument(strings.Join(args, " ")),
				TagIDs:  tagIDs,
			}
			if cmd.Flags().Changed("folder") {
				request.FolderID = &folderID
			}
			if cmd.Flags().Changed("width") {
				request.Width = &width
			}
			if cmd.Flags().Changed("height") {
				request.Height = &height
			}
			if color != "" {
				request.BackgroundColor = &color
			}

			quote, err := a.adapter.CreateQuote(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("create quote: %w", err)
			}
			return a.print(quote)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&folderID, "folder", 0, "folder to put the quote in")
	flags.Int64SliceVar(&tagIDs, "tag", nil, "tag id; repeat or comma-separate for several")
	flags.IntVar(&width, "width", models.DefaultQuoteWidth, "card width in pixels")
	flags.IntVar(&height, "height", models.DefaultQuoteHeight, "card height in pixels")
	flags.StringVar(&color, "color", "", "background color, e.g. #1e293b")
	return cmd
}

func (a *App) quotesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err = a.adapter.DeleteQuote(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete quote: %w", err)
			}
			return nil
		},
	}
}

type textNode struct {
	Type    string     `json:"type"`
	Text    string     `json:"text,omitempty"`
	Content []textNode `json:"content,omitempty"`
}

// quoteDocument wraps plain text into a one-paragraph rich-text document.
func quoteDocument(text string) string {
	if json.Valid([]byte(text)) && strings.HasPrefix(strings.TrimSpace(text), "{") {
		return text
	}
	doc := textNode{Type: "doc", Content: []textNode{{
		Type:    "paragraph",
		Content: []textNode{{Type: "text", Text: text}},
	}}}
	raw, _ := json.Marshal(doc)
	return string(raw)
}
