package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	goauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"focusflow/internal/core"
	"focusflow/internal/export"
)

// Client appends snapshot rows to a Google spreadsheet. One sheet per
// year, named "<year> <base>".
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string
}

var (
	_ export.SnapshotWriter = (*Client)(nil)
	_ export.OverviewReader = (*Client)(nil)
)

// Config carries the spreadsheet target and one of two credential forms:
// a service account key, or an OAuth client plus a stored user token (see
// cmd/oauth-init). The OAuth pair wins when both are present.
type Config struct {
	SpreadsheetID string
	SheetBase     string // defaults to "Snapshots"

	CredentialsJSON string
	CredentialsFile string

	OAuthClientJSON string
	OAuthClientFile string
	OAuthTokenJSON  string
	OAuthTokenFile  string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	base := strings.TrimSpace(cfg.SheetBase)
	if base == "" {
		base = "Snapshots"
	}

	opts, err := clientOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetBase:     base,
	}, nil
}

func clientOptions(ctx context.Context, cfg Config) ([]goption.ClientOption, error) {
	clientJSON, err := loadMaterial(cfg.OAuthClientJSON, cfg.OAuthClientFile, "OAuth client")
	if err != nil {
		return nil, err
	}
	if clientJSON != nil {
		tokenJSON, err := loadMaterial(cfg.OAuthTokenJSON, cfg.OAuthTokenFile, "OAuth token")
		if err != nil {
			return nil, err
		}
		if tokenJSON == nil {
			return nil, errors.New("missing OAuth token, run oauth-init first")
		}

		oc, err := goauth.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("parse OAuth client: %w", err)
		}
		var token oauth2.Token
		if err := json.Unmarshal(tokenJSON, &token); err != nil {
			return nil, fmt.Errorf("parse OAuth token: %w", err)
		}
		return []goption.ClientOption{goption.WithHTTPClient(oc.Client(ctx, &token))}, nil
	}

	credentials, err := loadMaterial(cfg.CredentialsJSON, cfg.CredentialsFile, "service account")
	if err != nil {
		return nil, err
	}
	if credentials == nil {
		return nil, errors.New("missing google credentials")
	}
	return []goption.ClientOption{
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope),
	}, nil
}

// loadMaterial returns inline JSON when set, otherwise the file contents,
// otherwise nil.
func loadMaterial(inline, file, what string) ([]byte, error) {
	if strings.TrimSpace(inline) != "" {
		return []byte(inline), nil
	}
	if strings.TrimSpace(file) != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s file: %w", what, err)
		}
		return data, nil
	}
	return nil, nil
}

// Append writes one snapshot row to the sheet for the row's year.
// Columns: day, domain, action, title, amount, detail, exported at.
func (c *Client) Append(ctx context.Context, row export.SnapshotRow) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if row.Domain == "" || row.RecordID == "" {
		return "", fmt.Errorf("snapshot row missing domain or record id")
	}

	sheetName := c.sheetName(row.Day.Year())
	amount := float64(row.Amount.Cents) / 100.0

	rng := fmt.Sprintf("%s!A:A", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get sheet dimensions for %s: %w", sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:G%d", sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{{
		row.Day.Key(),
		row.Domain,
		row.Action,
		row.Title,
		amount,
		row.Detail,
		row.ExportedAt.UTC().Format(time.RFC3339),
	}}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update %s: %w", dataRange, err)
	}

	return dataRange, nil
}

// ReadMonthTotal scans the year's sheet and sums the amounts for the
// month. Header and malformed rows are skipped.
func (c *Client) ReadMonthTotal(ctx context.Context, year int, month int) (core.Money, error) {
	if c.svc == nil {
		return core.Money{}, errors.New("sheets service not initialized")
	}
	if month < 1 || month > 12 {
		return core.Money{}, fmt.Errorf("invalid month: %d", month)
	}

	rng := fmt.Sprintf("%s!A:E", c.sheetName(year))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return core.Money{}, fmt.Errorf("read %s: %w", rng, err)
	}

	var total int64
	for _, row := range resp.Values {
		if len(row) < 5 {
			continue
		}
		day, err := core.ParseDay(strings.TrimSpace(fmt.Sprint(row[0])))
		if err != nil || day.Year() != year || day.Month() != month {
			continue
		}
		cents, ok := parseAmountToCents(fmt.Sprint(row[4]))
		if !ok {
			continue
		}
		total += cents
	}
	return core.Money{Cents: total}, nil
}

func (c *Client) sheetName(year int) string {
	return fmt.Sprintf("%d %s", year, c.sheetBase)
}

func parseAmountToCents(s string) (int64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f >= 0 {
		return int64(f*100.0 + 0.5), true
	}
	return int64(f*100.0 - 0.5), true
}
