package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"homeboard-backend/internal/client"

	"github.com/spf13/cobra"
)

var serverURL string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newSession(cmd *cobra.Command) (*client.Session, error) {
	s := client.NewSession(client.New(serverURL))
	if err := s.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return s, nil
}

var rootCmd = &cobra.Command{
	Use:   "boardctl",
	Short: "HomeBoard command-line client",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all homes on the board",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		fmt.Print(s.RenderList())
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <home-id>",
	Short: "Show one home in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		s.ShowDetail(args[0])
		fmt.Print(s.RenderDetail())
		return nil
	},
}

var (
	addTitle      string
	addAddress    string
	addPrice      float64
	addDeposit    float64
	addSize       string
	addListingURL string
	addMapsURL    string
	addNotes      string
	addFiles      []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a home, uploading media files first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		s.ShowAdd()

		var files []client.UploadFile
		for _, path := range addFiles {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			name := filepath.Base(path)
			mimeType := mime.TypeByExtension(filepath.Ext(name))
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}
			files = append(files, client.UploadFile{Name: name, MimeType: mimeType, Data: data})
		}

		in := client.NewHome{
			Title:   addTitle,
			Address: addAddress,
			Price:   addPrice,
			Size:    addSize,
		}
		if addDeposit != 0 {
			in.Deposit = &addDeposit
		}
		if addListingURL != "" {
			in.ListingURL = &addListingURL
		}
		if addMapsURL != "" {
			in.GoogleMapsURL = &addMapsURL
		}
		if addNotes != "" {
			in.Notes = &addNotes
		}

		home, err := s.SubmitAdd(cmd.Context(), in, files)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s)\n", home.Title, home.HomeID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <home-id>",
	Short: "Delete a home and its media",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if err := s.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Home removed")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5000", "board API base URL")

	addCmd.Flags().StringVar(&addTitle, "title", "", "listing title (required)")
	addCmd.Flags().StringVar(&addAddress, "address", "", "street address (required)")
	addCmd.Flags().Float64Var(&addPrice, "price", 0, "asking price (required)")
	addCmd.Flags().Float64Var(&addDeposit, "deposit", 0, "deposit amount")
	addCmd.Flags().StringVar(&addSize, "size", "", "size descriptor, e.g. \"2 bed, 1 bath\" (required)")
	addCmd.Flags().StringVar(&addListingURL, "listing-url", "", "original listing URL")
	addCmd.Flags().StringVar(&addMapsURL, "maps-url", "", "map URL")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-text notes")
	addCmd.Flags().StringArrayVar(&addFiles, "file", nil, "media file to upload (repeatable)")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("address")
	_ = addCmd.MarkFlagRequired("price")
	_ = addCmd.MarkFlagRequired("size")

	rootCmd.AddCommand(listCmd, showCmd, addCmd, deleteCmd)
}
