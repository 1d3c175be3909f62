package app

import (
	"net/url"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
)

const metaDirName = ".git"

var windowsAbs = regexp.MustCompile(`^[A-Za-z]:\\`)

// hostOS decides whether drive-letter paths are accepted.
var hostOS = runtime.GOOS

// Validate rejects inputs before any request is made.
func Validate(cfg Config) error {
	u, err := url.Parse(cfg.RemoteURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" ||
		u.RawQuery != "" || !strings.HasSuffix(u.Path, "/") {
		return &domain.InputValidationError{
			Field: "remote url",
			Value: cfg.RemoteURL,
			Hint:  "expected an http(s) directory url ending in '/', e.g. https://www.example.com/.git/",
		}
	}

	if !isAbsLocal(cfg.LocalDir) {
		hint := "expected an absolute path, e.g. /home/user/site"
		if hostOS == "windows" {
			hint = `expected an absolute path, e.g. C:\Users\site or /home/user/site`
		} else if windowsAbs.MatchString(cfg.LocalDir) {
			hint += ` (drive paths like C:\ are only accepted on Windows)`
		}
		return &domain.InputValidationError{
			Field: "local directory",
			Value: cfg.LocalDir,
			Hint:  hint,
		}
	}

	if cfg.Concurrency < 0 {
		return &domain.InputValidationError{Field: "concurrency", Value: strconv.Itoa(cfg.Concurrency), Hint: "must not be negative"}
	}
	if cfg.MaxDepth < 0 {
		return &domain.InputValidationError{Field: "max depth", Value: strconv.Itoa(cfg.MaxDepth), Hint: "must not be negative (0 means unlimited)"}
	}
	return nil
}

func isAbsLocal(dir string) bool {
	if strings.HasPrefix(dir, "/") {
		return true
	}
	return hostOS == "windows" && windowsAbs.MatchString(dir)
}

// MetadataDir is where the mirror lands: always "<local>/.git", whatever
// the remote directory is called. The rebuild runs in "<local>".
func MetadataDir(cfg Config) string {
	return filepath.Join(cfg.LocalDir, metaDirName)
}
