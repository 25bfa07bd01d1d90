package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed documents",
	Long:  `List, view, annotate, or remove indexed documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentChunksCmd = &cobra.Command{
	Use:   "chunks [doc-id]",
	Short: "List a document's chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentChunks,
}

var documentAnnotateCmd = &cobra.Command{
	Use:   "annotate [doc-id] [summary]",
	Short: "Set a summary on a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentAnnotate,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every document",
	Args:  cobra.NoArgs,
	RunE:  runDocumentClear,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentChunksCmd)
	documentCmd.AddCommand(documentAnnotateCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	documentCmd.AddCommand(documentClearCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Filename: %s\n", docs[i].Filename)
		cmd.Printf("    Chunks:   %d\n", len(docs[i].ChunkIDs))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Filename:  %s\n", doc.Filename)
	cmd.Printf("  Type:      %s\n", doc.ContentType)
	cmd.Printf("  Size:      %d bytes\n", doc.SizeBytes)
	cmd.Printf("  Chunks:    %d\n", len(doc.ChunkIDs))
	cmd.Printf("  Uploaded:  %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	if doc.Summary != "" {
		cmd.Printf("  Summary:   %s\n", doc.Summary)
	}

	return nil
}

func runDocumentChunks(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	chunks, err := documentService.Chunks(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}

	for i := range chunks {
		cmd.Printf("  [%d] %s (%s, %d-%d)\n", i+1, chunks[i].ID,
			chunks[i].Type, chunks[i].StartOffset, chunks[i].EndOffset)
		cmd.Printf("      %s\n", snippet(chunks[i].Content, 100))
	}

	cmd.Printf("\nTotal: %d chunks\n", len(chunks))
	return nil
}

func runDocumentAnnotate(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Annotate(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to annotate document: %w", err)
	}

	cmd.Printf("Document %s annotated.\n", args[0])
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	removed, err := documentService.Remove(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	if !removed {
		cmd.Printf("No document with id %s.\n", args[0])
		return nil
	}
	cmd.Printf("Document %s removed.\n", args[0])
	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	cmd.Println("All documents removed.")
	return nil
}
