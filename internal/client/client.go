package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"homeboard-backend/internal/domain"
)

// Client is a typed HTTP client for the board API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New builds a client for the given server base URL (e.g. http://localhost:5000).
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewHome is the payload for creating a listing. Media references come from
// a prior UploadFiles call.
type NewHome struct {
	Title         string             `json:"title"`
	Address       string             `json:"address"`
	Price         float64            `json:"price"`
	Deposit       *float64           `json:"deposit,omitempty"`
	Size          string             `json:"size"`
	ListingURL    *string            `json:"listingUrl,omitempty"`
	GoogleMapsURL *string            `json:"googleMapsUrl,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	MediaFiles    []domain.MediaFile `json:"mediaFiles"`
}

// UploadFile is one file of an upload batch.
type UploadFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// GetHomes fetches all listings.
func (c *Client) GetHomes(ctx context.Context) ([]domain.Home, error) {
	var homes []domain.Home
	if err := c.getJSON(ctx, "/api/homes", &homes); err != nil {
		return nil, err
	}
	return homes, nil
}

// GetHome fetches one listing by id.
func (c *Client) GetHome(ctx context.Context, id string) (*domain.Home, error) {
	var home domain.Home
	if err := c.getJSON(ctx, "/api/homes/"+id, &home); err != nil {
		return nil, err
	}
	return &home, nil
}

// AddHome creates a listing and returns the stored record.
func (c *Client) AddHome(ctx context.Context, in NewHome) (*domain.Home, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/homes", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var home domain.Home
	if err := c.doJSON(req, &home); err != nil {
		return nil, err
	}
	return &home, nil
}

// UploadFiles sends the batch as one multipart request and returns the media
// references in submission order.
func (c *Client) UploadFiles(ctx context.Context, files []UploadFile) ([]domain.MediaFile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, f.Name))
		hdr.Set("Content-Type", f.MimeType)
		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var refs []domain.MediaFile
	if err := c.doJSON(req, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// DeleteHome removes a listing (and, server-side, its media objects).
func (c *Client) DeleteHome(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/api/homes/"+id, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// FileURL returns the proxied URL for a stored file id.
func (c *Client) FileURL(id string) string {
	return c.BaseURL + "/api/files/" + id
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(body, &msg) == nil && msg.Msg != "" {
			return fmt.Errorf("api: %s (status %d)", msg.Msg, resp.StatusCode)
		}
		return fmt.Errorf("api: status %d body: %s", resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api response decode: %w", err)
	}
	return nil
}
