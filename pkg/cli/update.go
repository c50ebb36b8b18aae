package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Version is the running release, overridden at build time with
// -ldflags "-X github.com/osolmaz/tools/pkg/cli.Version=...".
var Version = "0.3.0"

const (
	updateRepo   = "osolmaz/tools"
	githubAPIURL = "https://api.github.com"
)

// release tag names carry a semver somewhere inside, e.g. "padify-v0.3.1"
var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// latestRelease queries the GitHub releases API and returns the published,
// non-prerelease release with the highest semver found in its tag or name.
// It returns (nil, nil) when nothing suitable exists.
func latestRelease(client *http.Client, apiBase, repo string) (*selfupdate.Release, error) {
	resp, err := client.Get(fmt.Sprintf("%s/repos/%s/releases", strings.TrimRight(apiBase, "/"), repo))
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		HTMLURL    string `json:"html_url"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}

	var candidates []*selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
		}
		if match == "" {
			continue
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		// prefer an asset built for a platform padify ships on
		assetURL := ""
		for _, a := range r.Assets {
			name := strings.ToLower(a.Name)
			if strings.Contains(name, "padify") && (strings.Contains(name, "darwin") || strings.Contains(name, "linux") || strings.Contains(name, "windows")) {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, &selfupdate.Release{
			Version:  v,
			AssetURL: assetURL,
			URL:      r.HTMLURL,
		})
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Version.GT(candidates[j].Version)
	})
	return candidates[0], nil
}

// CheckForUpdates compares Version against the latest GitHub release and,
// after confirmation on in, replaces the running executable.
func CheckForUpdates(out io.Writer, in io.Reader) error {
	client := &http.Client{Timeout: 10 * time.Second}
	latest, err := latestRelease(client, githubAPIURL, updateRepo)
	fmt.Fprintf(out, "Current version: %s\n", Version)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", updateRepo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	current, parseErr := semver.Parse(strings.TrimPrefix(Version, "v"))
	if parseErr != nil {
		fmt.Fprintf(out, "warning: could not parse current version %q: %v\n", Version, parseErr)
	} else if !latest.Version.GT(current) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", current)
		return nil
	}

	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		if latest.URL != "" {
			fmt.Fprintf(out, "Download it from %s\n", latest.URL)
		}
		return nil
	}

	answer, err := promptLine(out, in, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	answer = strings.ToLower(answer)
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s.\n", latest.Version)
	return nil
}

// promptLine displays a prompt and reads one trimmed line from in.
func promptLine(out io.Writer, in io.Reader, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
