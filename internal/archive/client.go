// Package archive submits citation URLs to a web-archiving (permanence)
// service and returns the permanent link it assigns. Archival guards the
// timeline's sources against link rot.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/keyxmakerx/timeline/internal/config"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("archiving disabled: no api key configured")

// maxResponseBytes caps how much of the service's response is read.
const maxResponseBytes = 1 << 20

// Result is a successfully created archive.
type Result struct {
	// URL is the permanent link: "{host}/{guid}".
	URL string

	// ArchivedAt is the creation timestamp reported by the service.
	ArchivedAt time.Time
}

// Archiver creates permanent archives of URLs.
type Archiver interface {
	// Enabled reports whether archive calls can be made at all.
	Enabled() bool

	// Archive submits rawURL and returns the created archive. Any response
	// other than 201 Created is an error.
	Archive(ctx context.Context, rawURL string) (*Result, error)
}

// createRequest is the JSON body posted to the archives endpoint.
type createRequest struct {
	URL    string `json:"url"`
	Folder *int   `json:"folder,omitempty"`
}

// createResponse holds the fields read from a 201 response.
type createResponse struct {
	GUID              string `json:"guid"`
	CreationTimestamp string `json:"creation_timestamp"`
}

// client implements Archiver against the perma.cc-style v1 API.
type client struct {
	http    *http.Client
	apiURL  string
	host    string
	apiKey  string
	folder  string
	timeout time.Duration
}

// NewClient creates an Archiver from config. A nil httpClient gets a
// client whose timeout matches cfg.Timeout.
func NewClient(cfg config.ArchiveConfig, httpClient *http.Client) Archiver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &client{
		http:    httpClient,
		apiURL:  cfg.APIURL,
		host:    cfg.Host,
		apiKey:  cfg.APIKey,
		folder:  cfg.Folder,
		timeout: cfg.Timeout,
	}
}

// Enabled reports whether an API key is configured.
func (c *client) Enabled() bool {
	return c.apiKey != ""
}

// Archive posts the URL to {apiURL}/archives/ and parses the GUID and
// creation timestamp from a 201 response.
func (c *client) Archive(ctx context.Context, rawURL string) (*Result, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body := createRequest{URL: rawURL}
	if c.folder != "" {
		folderID, err := strconv.Atoi(c.folder)
		if err != nil {
			return nil, fmt.Errorf("archive folder %q is not numeric: %w", c.folder, err)
		}
		body.Folder = &folderID
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding archive request: %w", err)
	}

	endpoint := c.apiURL + "/archives/?api_key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building archive request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting archive request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading archive response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("archive service returned %d", resp.StatusCode)
	}

	var created createResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("decoding archive response: %w", err)
	}
	if created.GUID == "" {
		return nil, errors.New("archive response missing guid")
	}

	archivedAt, err := parseTimestamp(created.CreationTimestamp)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:        c.host + "/" + created.GUID,
		ArchivedAt: archivedAt,
	}, nil
}

// timestampLayouts are the creation_timestamp formats seen from the service.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// parseTimestamp parses creation_timestamp, normalized to UTC.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable creation_timestamp %q", s)
}
