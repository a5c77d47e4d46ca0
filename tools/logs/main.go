// tools/logs is a dev tool for following razordiag logs with colors
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sleuth-io/razordiag/internal/cache"
	"github.com/sleuth-io/razordiag/internal/ui/theme"
)

func main() {
	lines := flag.Int("n", 20, "number of lines to show before following")
	filter := flag.String("f", "", "filter logs by substring (e.g., -f vswhere)")
	noFollow := flag.Bool("no-follow", false, "print the tail and exit")
	flag.Parse()

	logPath, err := cache.GetLogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Could not determine log path:", err)
		os.Exit(1)
	}

	styles := newLineStyles(theme.Current())
	fmt.Println(styles.header.Render(logPath))
	fmt.Println("---------------------------------------")

	file, err := os.Open(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	for _, line := range lastMatching(readTailLines(file, 200), *filter, *lines) {
		fmt.Println(styles.colorize(line))
	}
	if *noFollow {
		return
	}
	follow(file, *filter, styles)
}

func matchesFilter(line, filter string) bool {
	return filter == "" || strings.Contains(line, filter)
}

// lastMatching returns the last n lines that contain filter.
func lastMatching(lines []string, filter string, n int) []string {
	var matched []string
	for _, line := range lines {
		if matchesFilter(line, filter) {
			matched = append(matched, line)
		}
	}
	if len(matched) > n {
		matched = matched[len(matched)-n:]
	}
	return matched
}

// readTailLines reads roughly the last n lines by seeking near the end.
// The file is left positioned at its end.
func readTailLines(file *os.File, n int) []string {
	stat, err := file.Stat()
	if err != nil {
		return nil
	}

	// Log lines are short; 512 bytes each is generous.
	seekPos := max(0, stat.Size()-int64(n*512))
	actualPos, err := file.Seek(seekPos, io.SeekStart)
	if err != nil {
		actualPos, _ = file.Seek(0, io.SeekStart)
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	if actualPos > 0 {
		scanner.Scan() // Discard partial line
	}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func follow(file *os.File, filter string, styles lineStyles) {
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if matchesFilter(line, filter) {
			fmt.Println(styles.colorize(line))
		}
	}
}

type lineStyles struct {
	header lipgloss.Style
	time   lipgloss.Style
	rest   lipgloss.Style
	levels map[string]lipgloss.Style
}

func newLineStyles(t theme.Theme) lineStyles {
	p := t.Palette()
	return lineStyles{
		header: t.Styles().Header,
		time:   lipgloss.NewStyle().Foreground(p.Secondary),
		rest:   t.Styles().Muted,
		levels: map[string]lipgloss.Style{
			"ERROR": lipgloss.NewStyle().Foreground(p.Error).Bold(true),
			"WARN":  lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
			"INFO":  lipgloss.NewStyle().Foreground(p.Success),
			"DEBUG": lipgloss.NewStyle().Foreground(p.Primary),
		},
	}
}

var levelShort = map[string]string{"ERROR": "ERR", "WARN": "WRN", "INFO": "INF", "DEBUG": "DBG"}

// colorize renders a slog text line:
// time=2026-01-15T10:30:00Z level=INFO msg="hello" key=value
func (s lineStyles) colorize(line string) string {
	level := strings.ToUpper(extractValue(line, "level"))
	timeVal := extractValue(line, "time")
	msg := extractValue(line, "msg")

	var parts []string
	if len(timeVal) >= 19 {
		parts = append(parts, s.time.Render(timeVal[11:19])) // HH:MM:SS
	} else if timeVal != "" {
		parts = append(parts, s.time.Render(timeVal))
	}
	if level != "" {
		short := level
		if v, ok := levelShort[level]; ok {
			short = v
		}
		parts = append(parts, s.levels[level].Render(short))
	}
	if msg != "" {
		parts = append(parts, msg)
	}
	if remaining := extractRemaining(line, "time", "level", "msg"); remaining != "" {
		parts = append(parts, s.rest.Render("-- "+remaining))
	}
	if len(parts) == 0 {
		return line
	}
	return strings.Join(parts, " ")
}

var valuePatterns = map[string]*regexp.Regexp{}

func valuePattern(key string) *regexp.Regexp {
	if re, ok := valuePatterns[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(key) + `=(?:"((?:[^"\\]|\\.)*)"|(\S+))`)
	valuePatterns[key] = re
	return re
}

// extractValue returns the value of key=value or key="quoted value".
func extractValue(line, key string) string {
	m := valuePattern(key).FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// extractRemaining drops the given keys and returns the other pairs.
func extractRemaining(line string, exclude ...string) string {
	result := line
	for _, key := range exclude {
		result = valuePattern(key).ReplaceAllString(result, " ")
	}
	return strings.Join(strings.Fields(result), " ")
}
