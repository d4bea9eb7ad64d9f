package plex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sectionsXML = `<?xml version="1.0" encoding="UTF-8"?>
<MediaContainer size="2">
  <Directory key="1" title="Movies" type="movie"/>
  <Directory key="2" title="TV Shows" type="show"/>
</MediaContainer>`

const movieItemsXML = `<?xml version="1.0" encoding="UTF-8"?>
<MediaContainer size="1">
  <Video title="Inception" guid="plex://movie/5d776825880197001ec90e8f">
    <Media>
      <Part file="/media/Inception (2010)/inception.mkv"/>
    </Media>
    <Guid id="imdb://tt1375666"/>
    <Guid id="tmdb://27205"/>
  </Video>
</MediaContainer>`

const tvItemsXML = `<?xml version="1.0" encoding="UTF-8"?>
<MediaContainer size="1">
  <Directory title="Breaking Bad" guid="com.plexapp.agents.thetvdb://81189?lang=en">
    <Location path="/media/Breaking Bad"/>
    <Guid id="tvdb://81189"/>
  </Directory>
</MediaContainer>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Plex-Token") != "test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/xml")
		switch r.URL.Path {
		case "/library/sections":
			w.Write([]byte(sectionsXML))
		case "/library/sections/1/all":
			w.Write([]byte(movieItemsXML))
		case "/library/sections/2/all":
			w.Write([]byte(tvItemsXML))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSectionByName(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := New(server.URL, "test-token")

	section, err := client.SectionByName(context.Background(), "movies")
	if err != nil {
		t.Fatalf("SectionByName(movies) error: %v", err)
	}
	if section.Key != "1" || section.Type != "movie" {
		t.Errorf("SectionByName(movies) = %+v, want key=1 type=movie", section)
	}
}

func TestSectionByNameNotFound(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := New(server.URL, "test-token")

	_, err := client.SectionByName(context.Background(), "Music")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("SectionByName(Music) error = %v, want NotFoundError", err)
	}
	if notFound.Library != "Music" {
		t.Errorf("NotFoundError.Library = %q, want %q", notFound.Library, "Music")
	}
}

func TestItemsMovies(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := New(server.URL, "test-token")

	items, err := client.Items(context.Background(), Section{Key: "1", Type: "movie"})
	if err != nil {
		t.Fatalf("Items error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	item := items[0]
	if item.Title != "Inception" {
		t.Errorf("Title = %q, want %q", item.Title, "Inception")
	}
	if item.Kind != LibraryMovie {
		t.Errorf("Kind = %q, want %q", item.Kind, LibraryMovie)
	}
	if item.Path != "/media/Inception (2010)/inception.mkv" {
		t.Errorf("Path = %q", item.Path)
	}
	if len(item.Guids) != 2 || item.Guids[0] != "imdb://tt1375666" {
		t.Errorf("Guids = %v", item.Guids)
	}
	if item.Fields["guid"] != "plex://movie/5d776825880197001ec90e8f" {
		t.Errorf("Fields[guid] = %q", item.Fields["guid"])
	}
}

func TestItemsTVShows(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := New(server.URL, "test-token")

	items, err := client.Items(context.Background(), Section{Key: "2", Type: "show"})
	if err != nil {
		t.Fatalf("Items error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	item := items[0]
	if item.Kind != LibraryTV {
		t.Errorf("Kind = %q, want %q", item.Kind, LibraryTV)
	}
	if item.Path != "/media/Breaking Bad" {
		t.Errorf("Path = %q", item.Path)
	}
	if item.Fields["guid"] != "com.plexapp.agents.thetvdb://81189?lang=en" {
		t.Errorf("Fields[guid] = %q", item.Fields["guid"])
	}
}

func TestBadToken(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := New(server.URL, "wrong-token")

	_, err := client.Sections(context.Background())
	if err == nil {
		t.Fatal("Sections with bad token succeeded, want error")
	}
}
