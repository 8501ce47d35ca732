package chromepdf

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/go-rod/rod/lib/launcher"
)

// Environment variables naming the browser binary, in priority order.
const (
	EnvBrowserBin    = "CHROMEPDF_BROWSER_BIN"
	envRodBrowserBin = "ROD_BROWSER_BIN"
)

// browserNames are looked up on PATH before rod's list of known locations.
var browserNames = []string{"google-chrome", "google-chrome-stable"}

// ciVars mark continuous integration runners, where the Chrome sandbox is
// usually unavailable.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// browserFinder locates a Chrome or Chromium binary. Lookups are fields so
// tests can run without a browser installed.
type browserFinder struct {
	explicit  string
	getenv    func(string) string
	lookPath  func(string) (string, error)
	knownPath func() (string, bool)
}

func newBrowserFinder(explicit string) browserFinder {
	return browserFinder{
		explicit:  explicit,
		getenv:    os.Getenv,
		lookPath:  exec.LookPath,
		knownPath: launcher.LookPath,
	}
}

// find returns the first binary in discovery order: explicit path, the
// CHROMEPDF_BROWSER_BIN then ROD_BROWSER_BIN variables, google-chrome and
// google-chrome-stable on PATH, then rod's known install locations.
// Nothing is downloaded.
func (f browserFinder) find() (string, error) {
	if f.explicit != "" {
		return f.explicit, nil
	}
	for _, name := range []string{EnvBrowserBin, envRodBrowserBin} {
		if bin := f.getenv(name); bin != "" {
			return bin, nil
		}
	}
	for _, name := range browserNames {
		if bin, err := f.lookPath(name); err == nil {
			return bin, nil
		}
	}
	if bin, ok := f.knownPath(); ok {
		return bin, nil
	}
	return "", fmt.Errorf("%w: set %s or install google-chrome", ErrBrowserNotFound, EnvBrowserBin)
}

// FindBrowser returns the browser binary a Converter would launch, given an
// optional explicit path.
func FindBrowser(explicit string) (string, error) {
	return newBrowserFinder(explicit).find()
}

// RunningInCI reports whether a known CI environment variable is set.
func RunningInCI() bool {
	return runningInCI(os.Getenv)
}

func runningInCI(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// RunningInContainer reports whether the process appears to run in a
// container, and which signal gave it away.
func RunningInContainer() (bool, string) {
	return runningInContainer(os.Getenv, fileExists)
}

func runningInContainer(getenv func(string) string, exists func(string) bool) (bool, string) {
	if getenv("CHROMEPDF_CONTAINER") == "1" {
		return true, "CHROMEPDF_CONTAINER=1"
	}
	if exists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if exists("/run/.containerenv") {
		return true, "/run/.containerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// newLauncher configures a headless launch of bin. The leakless guard kills
// the browser if this process dies; rod also starts the browser in its own
// process group, so terminal signals meant for the host never reach it.
func newLauncher(bin string, noSandbox bool) *launcher.Launcher {
	return launcher.New().
		Bin(bin).
		Headless(true).
		Leakless(true).
		NoSandbox(noSandbox).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("run-all-compositor-stages-before-draw")
}
