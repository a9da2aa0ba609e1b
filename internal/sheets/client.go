package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"sheets_rw/internal/config"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client implements the SheetsAPI interface using Google Sheets API.
//
// Note: This client uses [][]interface{} as required by the Google Sheets API.
// This is the only layer where interface{} should appear.
type Client struct {
	service *sheets.Service
}

// NewClient creates a new Google Sheets client. Authentication is supplied through opts,
// typically option.WithTokenSource.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// ReadSheet reads values from the specified sheet range.
// Returns [][]interface{} as mandated by Google Sheets API.
func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return resp.Values, nil
}

// UpdateRange updates the specified sheet range with the provided values.
// Values are stored verbatim (RAW), never parsed as formulas.
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption(config.ValueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update range: %w", err)
	}

	return nil
}

// Reason extracts the provider's human-readable reason from a Sheets API error
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	if apiErr.Message != "" {
		return apiErr.Message
	}
	for _, item := range apiErr.Errors {
		if item.Message != "" {
			return item.Message
		}
	}
	if text := http.StatusText(apiErr.Code); text != "" {
		return text
	}
	return apiErr.Error()
}
