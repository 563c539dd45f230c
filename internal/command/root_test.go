package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

const charactersBody = `{
  "code": 200,
  "status": "Ok",
  "data": {
    "offset": 0, "limit": 100, "total": 2, "count": 2,
    "results": [
      {
        "id": 1009610,
        "name": "Spider-Man",
        "description": "",
        "modified": "2014-04-29T14:18:17-0400",
        "thumbnail": {"path": "http://i.annihil.us/u/prod/marvel/i/mg/3/50/526548a343e4b", "extension": "jpg"},
        "comics": {"available": 4012},
        "series": {"available": 1020},
        "stories": {"available": 5700},
        "events": {"available": 40},
        "urls": [{"type": "detail", "url": "http://marvel.com/characters/54/spider-man"}]
      },
      {
        "id": 1009368,
        "name": "Iron Man",
        "description": "Wounded, captured and forced to build a weapon.",
        "modified": "2016-09-28T12:08:19-0400",
        "thumbnail": {"path": "http://i.annihil.us/u/prod/marvel/i/mg/9/c0/527bb7b37ff55", "extension": "jpg"}
      }
    ]
  }
}`

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// setupEnv points config, data and API at temp dirs and a local server.
func setupEnv(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	home := t.TempDir()
	dataDir := filepath.Join(home, "data")
	t.Setenv("HOME", home)
	t.Setenv("HEROES_DATA_DIR", dataDir)
	t.Setenv("MARVEL_PUBLIC_KEY", "pub")
	t.Setenv("MARVEL_PRIVATE_KEY", "priv")
	t.Setenv("MARVEL_BASE_URL", "")
	_ = os.Unsetenv("MARVEL_BASE_URL")

	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		t.Setenv("MARVEL_BASE_URL", server.URL)
	}
	return dataDir
}

func charactersHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(charactersBody))
}

func TestVersionOutput(t *testing.T) {
	root := NewRootCmd("test")
	output, err := executeCommand(root, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "heroes version test" {
		t.Fatalf("unexpected version output: %q", output)
	}
}

func TestListAndSearch(t *testing.T) {
	setupEnv(t, charactersHandler)

	output, err := executeCommand(NewRootCmd("test"), "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(output, "Characters (2)") || !strings.Contains(output, "Spider-Man") || !strings.Contains(output, "Iron Man") {
		t.Fatalf("unexpected list output:\n%s", output)
	}
	if !strings.Contains(output, "No description :(") {
		t.Fatalf("expected placeholder description:\n%s", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "list", "--search", "spi")
	if err != nil {
		t.Fatalf("list --search: %v", err)
	}
	if !strings.Contains(output, "Spider-Man") || strings.Contains(output, "Iron Man") {
		t.Fatalf("unexpected search output:\n%s", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "list", "--search", "nobody")
	if err != nil {
		t.Fatalf("list --search nobody: %v", err)
	}
	if strings.TrimSpace(output) != "No characters" {
		t.Fatalf("unexpected empty output: %q", output)
	}
}

func TestListJSON(t *testing.T) {
	setupEnv(t, charactersHandler)

	output, err := executeCommand(NewRootCmd("test"), "list", "--json", "--pattern", "iron*")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var items []map[string]any
	if err := json.Unmarshal([]byte(output), &items); err != nil {
		t.Fatalf("decode output: %v\n%s", err, output)
	}
	if len(items) != 1 || items[0]["name"] != "Iron Man" {
		t.Fatalf("unexpected items: %v", items)
	}
	if items[0]["image_url"] != "https://i.annihil.us/u/prod/marvel/i/mg/9/c0/527bb7b37ff55.jpg" {
		t.Fatalf("unexpected image url: %v", items[0]["image_url"])
	}
}

func TestListReportsConnectionError(t *testing.T) {
	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"InvalidCredentials","message":"The passed API key is invalid."}`))
	})

	output, err := executeCommand(NewRootCmd("test"), "list")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(output, "The passed API key is invalid.") {
		t.Fatalf("expected server message in output:\n%s", output)
	}
}

func TestListMissingKeysHints(t *testing.T) {
	setupEnv(t, charactersHandler)
	t.Setenv("MARVEL_PRIVATE_KEY", "")
	_ = os.Unsetenv("MARVEL_PRIVATE_KEY")

	output, err := executeCommand(NewRootCmd("test"), "list")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(output, "heroes config set") {
		t.Fatalf("expected key hint:\n%s", output)
	}
}

func TestFaveFavesUnfave(t *testing.T) {
	dataDir := setupEnv(t, charactersHandler)

	output, err := executeCommand(NewRootCmd("test"), "fave", "spider-man")
	if err != nil {
		t.Fatalf("fave: %v", err)
	}
	if strings.TrimSpace(output) != "Faved Spider-Man" {
		t.Fatalf("unexpected fave output: %q", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "fave", "Spider-Man")
	if err != nil {
		t.Fatalf("fave again: %v", err)
	}
	if strings.TrimSpace(output) != "Already faved Spider-Man" {
		t.Fatalf("unexpected second fave output: %q", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "faves")
	if err != nil {
		t.Fatalf("faves: %v", err)
	}
	if !strings.Contains(output, "Faves (1)") || !strings.Contains(output, "★") {
		t.Fatalf("unexpected faves output:\n%s", output)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "favorites.jsonl")); err != nil {
		t.Fatalf("expected favorites log: %v", err)
	}

	output, err = executeCommand(NewRootCmd("test"), "unfave", "SPIDER-MAN")
	if err != nil {
		t.Fatalf("unfave: %v", err)
	}
	if strings.TrimSpace(output) != "Unfaved Spider-Man" {
		t.Fatalf("unexpected unfave output: %q", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "unfave", "Spider-Man")
	if err != nil {
		t.Fatalf("unfave again: %v", err)
	}
	if strings.TrimSpace(output) != "Not faved: Spider-Man" {
		t.Fatalf("unexpected second unfave output: %q", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "faves")
	if err != nil {
		t.Fatalf("faves: %v", err)
	}
	if strings.TrimSpace(output) != "No faves" {
		t.Fatalf("unexpected empty faves output: %q", output)
	}
}

func TestFaveUnknownCharacter(t *testing.T) {
	setupEnv(t, charactersHandler)

	output, err := executeCommand(NewRootCmd("test"), "fave", "Squirrel Girl")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(output, "character not found: Squirrel Girl") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestShowRemoteAndOffline(t *testing.T) {
	setupEnv(t, charactersHandler)

	output, err := executeCommand(NewRootCmd("test"), "show", "spider-man")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Spider-Man", "No description :(", "Comics:    4,012", "Stories:   5,700", "https://i.annihil.us/u/prod/marvel/i/mg/3/50/526548a343e4b.jpg"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in show output:\n%s", want, output)
		}
	}

	if _, err := executeCommand(NewRootCmd("test"), "show", "Iron Man", "--offline"); err == nil {
		t.Fatalf("expected offline show of a non-favorite to fail")
	}

	if _, err := executeCommand(NewRootCmd("test"), "fave", "Iron Man"); err != nil {
		t.Fatalf("fave: %v", err)
	}

	output, err = executeCommand(NewRootCmd("test"), "show", "iron man", "--offline", "--json")
	if err != nil {
		t.Fatalf("show --offline: %v", err)
	}
	var detail map[string]any
	if err := json.Unmarshal([]byte(output), &detail); err != nil {
		t.Fatalf("decode output: %v\n%s", err, output)
	}
	if detail["name"] != "Iron Man" || detail["favorite"] != true {
		t.Fatalf("unexpected detail: %v", detail)
	}
	if detail["description"] != "Wounded, captured and forced to build a weapon." {
		t.Fatalf("unexpected description: %v", detail["description"])
	}
}

func TestConfigSetAndShow(t *testing.T) {
	setupEnv(t, nil)
	t.Setenv("MARVEL_PUBLIC_KEY", "")
	_ = os.Unsetenv("MARVEL_PUBLIC_KEY")

	output, err := executeCommand(NewRootCmd("test"), "config", "set", "public-key", "from-file")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	if strings.TrimSpace(output) != "Set public-key" {
		t.Fatalf("unexpected set output: %q", output)
	}

	output, err = executeCommand(NewRootCmd("test"), "config", "--json")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	var shown map[string]string
	if err := json.Unmarshal([]byte(output), &shown); err != nil {
		t.Fatalf("decode output: %v\n%s", err, output)
	}
	if shown["public_key"] != "from-file" {
		t.Fatalf("expected file value, got %q", shown["public_key"])
	}
	if shown["private_key"] == "priv" {
		t.Fatalf("expected private key to be masked")
	}
	if shown["base_url"] != "https://gateway.marvel.com:443" {
		t.Fatalf("unexpected base url %q", shown["base_url"])
	}

	if _, err := executeCommand(NewRootCmd("test"), "config", "set", "favorite_color", "red"); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestRebuild(t *testing.T) {
	dataDir := setupEnv(t, charactersHandler)

	for _, name := range []string{"Spider-Man", "Iron Man"} {
		if _, err := executeCommand(NewRootCmd("test"), "fave", name); err != nil {
			t.Fatalf("fave %s: %v", name, err)
		}
	}
	if err := os.Remove(filepath.Join(dataDir, "heroes.db")); err != nil {
		t.Fatalf("remove database: %v", err)
	}
	_ = os.Remove(filepath.Join(dataDir, "heroes.db-wal"))
	_ = os.Remove(filepath.Join(dataDir, "heroes.db-shm"))

	output, err := executeCommand(NewRootCmd("test"), "rebuild")
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if strings.TrimSpace(output) != "Rebuilt favorites database (2 records)" {
		t.Fatalf("unexpected rebuild output: %q", output)
	}
}

func TestBrowseRejectsJSON(t *testing.T) {
	setupEnv(t, charactersHandler)

	if _, err := executeCommand(NewRootCmd("test"), "browse", "--json"); err == nil {
		t.Fatalf("expected browse --json to fail")
	}
}
