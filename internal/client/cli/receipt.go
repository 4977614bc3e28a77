package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pantrypal/pantrypal/internal/client/api"
)

const (
	receiptPollInterval = 2 * time.Second
	receiptPollAttempts = 15
)

// ScanReceipt uploads a receipt image for OCR extraction, waits for the
// result, and offers to add the extracted lines to the pantry.
//
// Upload path: when the backend issues a presigned URL the raw bytes are PUT
// there and the registration call carries no payload; otherwise the image
// goes up base64-encoded in the registration call itself.
func (a *App) ScanReceipt(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Receipt image path", os.Stdout)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading receipt image: %w", err)
	}

	imageBase64 := base64.StdEncoding.EncodeToString(data)

	presignedURL, err := a.gateway.ReceiptPresignedURL(ctx, userID)
	if err == nil && presignedURL != "" {
		if err := a.gateway.PutPresigned(ctx, presignedURL, data, contentTypeFor(path)); err != nil {
			return err
		}
		// The bytes are already on the backend; register the upload without
		// sending them again.
		imageBase64 = ""
	}

	receiptID, err := a.gateway.UploadReceipt(ctx, userID, imageBase64)
	if err != nil {
		return err
	}
	fmt.Println("Receipt uploaded, waiting for extraction...")

	result, err := a.pollReceipt(ctx, receiptID)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println("Extraction is taking longer than expected; try 'scan' again later.")
		return nil
	}

	if result.Store != "" {
		fmt.Printf("Store: %s\n", result.Store)
	}
	if result.Total != nil {
		fmt.Printf("Total: $%.2f\n", *result.Total)
	}
	for _, item := range result.Items {
		fmt.Printf("  %-24s %6.1f %s\n", item.ItemName, item.Quantity, item.Unit)
	}
	if len(result.Items) == 0 {
		fmt.Println("No items were recognized on this receipt.")
		return nil
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Add %d item(s) to pantry? (y/n)", len(result.Items)), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		return nil
	}

	payloads := make([]api.AddPantryItemPayload, 0, len(result.Items))
	for _, item := range result.Items {
		payloads = append(payloads, api.AddPantryItemPayload{
			ItemName:   item.ItemName,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			Category:   item.Category,
			ExpiryDate: item.ExpiryDate,
		})
	}
	added, err := a.gateway.AddPantryItems(ctx, userID, payloads)
	if err != nil {
		return err
	}
	fmt.Println("Added to pantry:")
	printPantryItems(added)
	return nil
}

// pollReceipt waits for the OCR result, giving up after a bounded number of
// attempts. A nil result with nil error means the extraction never became
// ready within the window.
func (a *App) pollReceipt(ctx context.Context, receiptID string) (*api.ReceiptResult, error) {
	for attempt := 0; attempt < receiptPollAttempts; attempt++ {
		result, err := a.gateway.ReceiptResult(ctx, receiptID)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(receiptPollInterval):
		}
	}
	return nil, nil
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
