package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rajasatyajit/EcoTide/internal/models"
)

// ReadItems parses one product per line: a title, optionally followed by a
// tab and an identifier. Blank lines and lines starting with # are skipped.
func ReadItems(r io.Reader) ([]models.Product, error) {
	var items []models.Product
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		title, id, _ := strings.Cut(raw, "\t")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		items = append(items, models.Product{Title: title, Identifier: strings.TrimSpace(id)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}
