package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Boundary formats. Dates and times cross the API as plain strings and are
// compared lexicographically; both layouts are zero-padded and fixed-width so
// lexicographic order equals chronological order.
const (
	DateLayout = "2006-01-02" // ISO "YYYY-MM-DD"
	TimeLayout = "15:04:05"   // 24h "HH:mm:ss"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseDate parses an ISO "YYYY-MM-DD" date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Weekday returns the day of week (0 = Sunday .. 6 = Saturday) of an ISO date string.
func Weekday(date string) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// Today returns the current date as an ISO date string.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Getwd tries to find the project root (the directory holding go.mod).
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
			return wd
		}
		currDir = newDir
	}
}
