package client

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-quote-keeper/models"
)

func (a *App) tagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag", "t"},
		Short:   "Manage tags",
	}
	cmd.AddCommand(a.tagsListCommand(), a.tagsAddCommand())
	return cmd
}

func (a *App) tagsListCommand() *cobra.Command {
	var tagType string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List built-in and custom tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind := models.TagType(strings.ToUpper(strings.TrimSpace(tagType)))
			if kind != "" && !kind.Valid() {
				return fmt.Errorf("unknown tag type %q", tagType)
			}

			tags, err := a.adapter.ListTags(cmd.Context(), kind)
			if err != nil {
				return fmt.Errorf("list tags: %w", err)
			}
			if tags == nil {
				tags = []models.Tag{}
			}
			return a.print(tags)
		},
	}
	cmd.Flags().StringVar(&tagType, "type", "", "builtin or custom")
	return cmd
}

func (a *App) tagsAddCommand() *cobra.Command {
	var description, color string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := models.CreateTagRequest{Name: args[0]}
			if description != "" {
				request.Description = &description
			}
			if color != "" {
				request.Color = &color
			}

			tag, err := a.adapter.CreateTag(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("create tag: %w", err)
			}
			return a.print(tag)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "tag description")
	cmd.Flags().StringVar(&color, "color", "", "tag color, e.g. #f59e0b")
	return cmd
}
