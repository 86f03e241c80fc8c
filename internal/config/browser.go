package config

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/dastanaron/bookmarks-csv/internal/parser"
)

// Supported browsers
const (
	BrowserVivaldi  = "vivaldi"
	BrowserChrome   = "chrome"
	BrowserChromium = "chromium"
	BrowserBrave    = "brave"
	BrowserEdge     = "edge"
	BrowserFirefox  = "firefox"
)

// Browsers lists the accepted browser names
var Browsers = []string{BrowserVivaldi, BrowserChrome, BrowserChromium, BrowserBrave, BrowserEdge, BrowserFirefox}

// profile directories relative to the per-OS base directory
var chromiumProfiles = map[string]map[string][]string{
	"windows": {
		BrowserVivaldi:  {"Vivaldi", "User Data"},
		BrowserChrome:   {"Google", "Chrome", "User Data"},
		BrowserChromium: {"Chromium", "User Data"},
		BrowserBrave:    {"BraveSoftware", "Brave-Browser", "User Data"},
		BrowserEdge:     {"Microsoft", "Edge", "User Data"},
	},
	"darwin": {
		BrowserVivaldi:  {"Vivaldi"},
		BrowserChrome:   {"Google", "Chrome"},
		BrowserChromium: {"Chromium"},
		BrowserBrave:    {"BraveSoftware", "Brave-Browser"},
		BrowserEdge:     {"Microsoft Edge"},
	},
	"linux": {
		BrowserVivaldi:  {"vivaldi"},
		BrowserChrome:   {"google-chrome"},
		BrowserChromium: {"chromium"},
		BrowserBrave:    {"BraveSoftware", "Brave-Browser"},
		BrowserEdge:     {"microsoft-edge"},
	},
}

// FormatFor returns the input format a browser stores its bookmarks in
func FormatFor(browser string) string {
	if browser == BrowserFirefox {
		return FormatFirefox
	}
	return parser.FormatChromium
}

// DefaultBookmarksPath returns the bookmarks file of the default profile,
// or "" when it cannot be determined.
func DefaultBookmarksPath(browser string) string {
	home, _ := os.UserHomeDir()
	return bookmarksPath(runtime.GOOS, browser, home, os.Getenv)
}

func bookmarksPath(goos, browser, home string, getenv func(string) string) string {
	if browser == BrowserFirefox {
		return firefoxPlaces(goos, home, getenv)
	}

	base := chromiumBase(goos, home, getenv)
	osProfiles, ok := chromiumProfiles[goos]
	if !ok {
		osProfiles = chromiumProfiles["linux"]
	}
	parts, ok := osProfiles[browser]
	if base == "" || !ok {
		return ""
	}
	return filepath.Join(append(append([]string{base}, parts...), "Default", "Bookmarks")...)
}

func chromiumBase(goos, home string, getenv func(string) string) string {
	switch goos {
	case "windows":
		return getenv("LOCALAPPDATA")
	case "darwin":
		if home == "" {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support")
	default:
		if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home == "" {
			return ""
		}
		return filepath.Join(home, ".config")
	}
}

// firefoxPlaces picks the places.sqlite of the first default profile found
func firefoxPlaces(goos, home string, getenv func(string) string) string {
	var profiles string
	switch goos {
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			profiles = filepath.Join(appData, "Mozilla", "Firefox", "Profiles")
		}
	case "darwin":
		if home != "" {
			profiles = filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles")
		}
	default:
		if home != "" {
			profiles = filepath.Join(home, ".mozilla", "firefox")
		}
	}
	if profiles == "" {
		return ""
	}

	matches, _ := filepath.Glob(filepath.Join(profiles, "*.default*", "places.sqlite"))
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	// prefer the default-release profile
	for _, m := range matches {
		if filepath.Ext(filepath.Dir(m)) == ".default-release" {
			return m
		}
	}
	return matches[0]
}
