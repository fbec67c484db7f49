package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenbdg/africaesg/backend/internal/extraction"
	"github.com/greenbdg/africaesg/backend/internal/store"
)

var (
	extractDataDir string
	extractPostURL string
	extractAppend  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract an invoice summary from a PDF",
	Long: `Extract runs the invoice heuristics against a local PDF and prints the
resulting record as JSON. With --append the record is added to the local
invoice snapshot file; with --post the raw PDF is uploaded to a running
backend instead of being processed only locally.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractDataDir, "data-dir", ".", "directory holding the snapshot files")
	extractCmd.Flags().StringVar(&extractPostURL, "post", "", "base URL of a running backend to upload the PDF to")
	extractCmd.Flags().BoolVar(&extractAppend, "append", false, "append the record to the local invoice snapshot")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	result := extraction.NewExtractor().Extract(data, filepath.Base(path))
	if result.Synthetic {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: document could not be decoded (%s), emitting placeholder record\n", result.Reason)
	}

	out, err := json.MarshalIndent(result.Invoice, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if extractAppend {
		files := store.NewSnapshotFiles(extractDataDir)
		invoices := files.LoadInvoices()
		invoices = append(invoices, result.Invoice)
		if err := files.SaveInvoices(invoices); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "appended to snapshot (%d records)\n", len(invoices))
	}

	if extractPostURL != "" {
		if err := postInvoice(extractPostURL, filepath.Base(path), data); err != nil {
			return fmt.Errorf("upload to %s: %w", extractPostURL, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "uploaded to backend")
	}
	return nil
}

// postInvoice uploads the raw PDF through the backend's single-file upload
// route so the server performs its own extraction.
func postInvoice(baseURL, filename string, data []byte) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(baseURL+"/api/invoice-upload", mw.FormDataContentType(), &body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("backend returned %s: %s", resp.Status, string(msg))
	}
	return nil
}
