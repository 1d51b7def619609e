package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/mod/semver"
)

// releasesURL points at the latest release of perfcmp on GitHub.
var releasesURL = "https://api.github.com/repos/shravanasati/perfcmp/releases/latest"

var updateClient = &http.Client{Timeout: 5 * time.Second}

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// latestRelease fetches the latest published release.
func latestRelease() (*release, error) {
	res, err := updateClient.Get(releasesURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status from github: %s", res.Status)
	}

	var r release
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}
	if !semver.IsValid(r.TagName) {
		return nil, fmt.Errorf("invalid release tag: %q", r.TagName)
	}
	return &r, nil
}

// updateMessage returns the notice for a newer release, or "" when current is up to date.
func updateMessage(current string, r *release) string {
	if semver.Compare(r.TagName, current) <= 0 {
		return ""
	}
	return format("A new version of perfcmp is available: ${current} -> ${latest}\nDownload it from ${url}",
		map[string]string{"current": current, "latest": r.TagName, "url": r.HTMLURL})
}

// CheckForUpdates sends a notice to ch when a release newer than version
// exists. It always sends exactly once; the notice is empty when there is
// nothing to report or the check failed.
func CheckForUpdates(version string, ch *chan string) {
	r, err := latestRelease()
	if err != nil {
		*ch <- ""
		return
	}
	*ch <- updateMessage(version, r)
}

// Up checks for a newer release and reports the outcome.
func Up(version string) {
	Log("yellow", "Checking for updates...")
	r, err := latestRelease()
	if err != nil {
		Log("red", "Error: Unable to check for updates. Check your internet connection.")
		Log("white", err.Error())
		return
	}
	if msg := updateMessage(version, r); msg != "" {
		Log("green", msg)
		return
	}
	Log("green", "perfcmp "+version+" is up to date.")
}
