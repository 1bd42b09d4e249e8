package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Entry is one diagnostic record. Lines that are not JSON keep only Raw.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Run     string
	Query   string
	Error   string
	Raw     string
}

// Read returns at most maxLines entries from the end of the file at path.
// A missing file yields no entries and no error.
func Read(path string, maxLines int) ([]Entry, error) {
	lines, err := readLines(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Parse decodes a zerolog JSON line.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	var rec struct {
		Time    string `json:"time"`
		Level   string `json:"level"`
		Message string `json:"message"`
		Run     string `json:"run"`
		Query   string `json:"query"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return entry
	}
	if t, err := time.Parse(time.RFC3339, rec.Time); err == nil {
		entry.Time = t
	}
	entry.Level = rec.Level
	entry.Message = rec.Message
	entry.Run = rec.Run
	entry.Query = rec.Query
	entry.Error = rec.Error
	return entry
}

func readLines(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
