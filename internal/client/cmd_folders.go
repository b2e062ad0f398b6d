package client

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-quote-keeper/models"
)

func (a *App) foldersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"folder", "f"},
		Short:   "Manage the folder hierarchy",
		Long: `Manage the folder hierarchy.

Available subcommands:
  ls     - List root folders with their subfolder and quote counts
  tree   - Show a folder with all nested subfolders and quotes
  path   - Show folder ids from a folder up to its root
  mkdir  - Create a root folder, or a subfolder with --parent
  rename - Rename a folder
  rm     - Delete an empty folder`,
	}

	cmd.AddCommand(
		a.foldersListCommand(),
		a.foldersTreeCommand(),
		a.foldersPathCommand(),
		a.foldersMkdirCommand(),
		a.foldersRenameCommand(),
		a.foldersRemoveCommand(),
	)
	return cmd
}

func (a *App) foldersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List root folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			folders, err := a.adapter.ListRootFolders(cmd.Context())
			if err != nil {
				return fmt.Errorf("list folders: %w", err)
			}
			if folders == nil {
				folders = []models.FolderSummary{}
			}
			return a.print(folders)
		},
	}
}

func (a *App) foldersTreeCommand() *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "tree <id>",
		Short: "Show a folder subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			tree, err := a.adapter.GetSubtree(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("folder tree: %w", err)
			}
			if text {
				return writeTree(a.out, tree)
			}
			return a.print(tree)
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print an indented outline instead of JSON")
	return cmd
}

func (a *App) foldersPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path <id>",
		Short: "Show folder ids from a folder up to its root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			path, err := a.adapter.FindPathToRoot(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("folder path: %w", err)
			}
			return a.print(path)
		},
	}
}

func (a *App) foldersMkdirCommand() *cobra.Command {
	var parentID int64
	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				folder models.Folder
				err    error
			)
			if cmd.Flags().Changed("parent") {
				folder, err = a.adapter.CreateSubfolder(cmd.Context(), parentID, args[0])
			} else {
				folder, err = a.adapter.CreateRootFolder(cmd.Context(), args[0])
			}
			if err != nil {
				return fmt.Errorf("create folder: %w", err)
			}
			return a.print(folder)
		},
	}
	cmd.Flags().Int64Var(&parentID, "parent", 0, "id of the parent folder")
	return cmd
}

func (a *App) foldersRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			folder, err := a.adapter.RenameFolder(cmd.Context(), id, args[1])
			if err != nil {
				return fmt.Errorf("rename folder: %w", err)
			}
			return a.print(folder)
		},
	}
}

func (a *App) foldersRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an empty folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err = a.adapter.DeleteFolder(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete folder: %w", err)
			}
			return nil
		},
	}
}

// writeTree prints one line per folder, indented by depth, with the quote
// count of each folder.
func writeTree(w io.Writer, tree *models.FolderTree) error {
	var walk func(node *models.FolderTree, depth int) error
	walk = func(node *models.FolderTree, depth int) error {
		_, err := fmt.Fprintf(w, "%s%s [%d] (%d quotes)\n", strings.Repeat("  ", depth), node.Name, node.ID, len(node.Quotes))
		if err != nil {
			return err
		}
		for _, child := range node.SubFolders {
			if err = walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(tree, 0)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
