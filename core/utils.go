package core

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

var slugInvalidRegex = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugify turns `s` into a URL-safe slug: lower-cased, spaces collapsed to "-",
// anything outside [a-z0-9-] dropped.
func Slugify(s string) string {
	s = CleanString(s, true)
	s = strings.Join(strings.Fields(s), "-")
	s = slugInvalidRegex.ReplaceAllString(s, "")
	return strings.Trim(s, "-")
}

// Getwd tries to find the project root (the directory containing go.mod).
// go-test changes the working directory to the test package being run during tests...
// see: https://stackoverflow.com/questions/23847003/golang-tests-and-working-directory
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd // fall back to the actual working directory
		}
		currDir = newDir
	}
}
