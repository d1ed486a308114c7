package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/ankistats/internal/export"
	"github.com/example/ankistats/pkg/models"
)

// console prints the human-readable progress and summary text
type console struct {
	w io.Writer
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format, args...)
}

func (c *console) banner() {
	rule := strings.Repeat("=", 60)
	c.printf("%s\nAnki Data Export for Portfolio Website\n%s\n\n", rule, rule)
}

func (c *console) autoDetected(configured, found string) {
	c.printf("Configured database path not found: %s\n", configured)
	c.printf("Found database: %s\n", found)
}

func (c *console) notFound(configured string, candidates []string) {
	c.printf("\nCould not find the Anki database.\n")
	if configured != "" {
		c.printf("   Configured path: %s\n", configured)
	}
	c.printf("   Also tried:\n")
	for _, p := range candidates {
		c.printf("     %s\n", p)
	}
	c.printf("\nTo find your database:\n")
	c.printf("1. Open Anki\n")
	c.printf("2. Go to Tools > Preferences > Network\n")
	c.printf("3. Look for your profile location; the file is named collection.anki2\n")
	c.printf("\nUsual locations:\n")
	c.printf("   Windows: %%APPDATA%%\\Anki2\\<profile>\\collection.anki2\n")
	c.printf("   macOS:   ~/Library/Application Support/Anki2/<profile>/collection.anki2\n")
	c.printf("   Linux:   ~/.local/share/Anki2/<profile>/collection.anki2\n")
	c.printf("\nPass it with -db, set ANKI_EXPORT_DATABASE_PATH, or set database_path in the config file.\n")
}

func (c *console) reading(path string) {
	c.printf("Reading Anki database: %s\n", path)
}

func (c *console) extracted(s models.Summary) {
	c.printf("Extracted %d days of review data\n", s.TotalDays)
	if s.TotalDays == 0 {
		return
	}
	c.printf("\nStatistics:\n")
	c.printf("   Total reviews: %s\n", thousands(s.TotalReviews))
	c.printf("   Average per day: %.1f\n", s.AveragePerDay)
	c.printf("   Date range: %s to %s\n", s.FirstDate, s.LastDate)
	c.printf("   Days with reviews: %d\n", s.TotalDays)
}

func (c *console) saved(res *export.Result) {
	c.printf("\nSaved to: %s\n", res.Path)
	c.printf("   File size: %.1f KB\n", float64(res.Size)/1024)
}

func (c *console) failure(what string, err error) {
	c.printf("\n%s: %v\n", what, err)
	c.printf("\nExport failed!\n")
}

func (c *console) nextSteps(output string) {
	c.printf("\nExport complete!\n")
	c.printf("\nNext steps:\n")
	c.printf("1. Copy the JSON file to your website's data folder\n")
	c.printf("2. Commit and push to GitHub:\n")
	c.printf("   git add %s\n", filepath.Base(output))
	c.printf("   git commit -m 'Update Anki stats'\n")
	c.printf("   git push\n")
}

// thousands formats n with comma separators
func thousands(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
