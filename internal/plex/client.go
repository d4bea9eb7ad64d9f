package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// NotFoundError indicates the named library does not exist on the server
type NotFoundError struct {
	Library string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("library %q not found on Plex server", e.Library)
}

// HTTPDoer abstracts http.Client.Do for testing
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to a Plex server's library API
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
}

// New creates a client for the given server URL and auth token
func New(baseURL, token string) *Client {
	return NewWithHTTP(baseURL, token, &http.Client{Timeout: 15 * time.Second})
}

// NewWithHTTP creates a client using the provided HTTP backend
func NewWithHTTP(baseURL, token string, httpClient HTTPDoer) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   token,
		client:  httpClient,
	}
}

// XML payload shapes for the Plex library API
type mediaContainer struct {
	XMLName     xml.Name       `xml:"MediaContainer"`
	Directories []directoryXML `xml:"Directory"`
	Videos      []videoXML     `xml:"Video"`
}

type guidXML struct {
	ID string `xml:"id,attr"`
}

type directoryXML struct {
	Key       string    `xml:"key,attr"`
	Title     string    `xml:"title,attr"`
	Type      string    `xml:"type,attr"`
	GUID      string    `xml:"guid,attr"`
	Guids     []guidXML `xml:"Guid"`
	Locations []struct {
		Path string `xml:"path,attr"`
	} `xml:"Location"`
}

type videoXML struct {
	Title string    `xml:"title,attr"`
	GUID  string    `xml:"guid,attr"`
	Guids []guidXML `xml:"Guid"`
	Media []struct {
		Parts []struct {
			File string `xml:"file,attr"`
		} `xml:"Part"`
	} `xml:"Media"`
}

// Sections lists all library sections on the server
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	container, err := c.get(ctx, "/library/sections")
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(container.Directories))
	for _, dir := range container.Directories {
		sections = append(sections, Section{
			Key:   dir.Key,
			Title: dir.Title,
			Type:  dir.Type,
		})
	}

	return sections, nil
}

// SectionByName finds a library section by title (case-insensitive).
// Returns NotFoundError if no section matches.
func (c *Client) SectionByName(ctx context.Context, name string) (Section, error) {
	sections, err := c.Sections(ctx)
	if err != nil {
		return Section{}, err
	}

	for _, section := range sections {
		if strings.EqualFold(section.Title, name) {
			return section, nil
		}
	}

	return Section{}, &NotFoundError{Library: name}
}

// Items lists all items in a library section with their recorded paths,
// guid annotations and raw fields
func (c *Client) Items(ctx context.Context, section Section) ([]Item, error) {
	container, err := c.get(ctx, fmt.Sprintf("/library/sections/%s/all", section.Key))
	if err != nil {
		return nil, err
	}

	var items []Item

	// Movie sections list Video elements with file parts
	for _, video := range container.Videos {
		item := Item{
			Title:  video.Title,
			Kind:   LibraryMovie,
			Guids:  guidStrings(video.Guids),
			Fields: map[string]string{"guid": video.GUID},
		}
		if len(video.Media) > 0 && len(video.Media[0].Parts) > 0 {
			item.Path = video.Media[0].Parts[0].File
		}
		items = append(items, item)
	}

	// TV sections list Directory elements with show locations
	for _, dir := range container.Directories {
		item := Item{
			Title:  dir.Title,
			Kind:   LibraryTV,
			Guids:  guidStrings(dir.Guids),
			Fields: map[string]string{"guid": dir.GUID},
		}
		if len(dir.Locations) > 0 {
			item.Path = dir.Locations[0].Path
		}
		items = append(items, item)
	}

	return items, nil
}

// get performs an authenticated GET and decodes the MediaContainer response
func (c *Client) get(ctx context.Context, path string) (*mediaContainer, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/xml")
	req.Header.Set("X-Plex-Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("plex request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("plex rejected token (HTTP 401)")
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("plex GET %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var container mediaContainer
	if err := xml.NewDecoder(resp.Body).Decode(&container); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &container, nil
}

func guidStrings(guids []guidXML) []string {
	if len(guids) == 0 {
		return nil
	}

	out := make([]string, 0, len(guids))
	for _, g := range guids {
		out = append(out, g.ID)
	}
	return out
}
