// internal/digest/digest.go
package digest

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// RootDir is the sentinel bucket for files that sit directly under the
// scan root.
const RootDir = "/"

// FileSummary is one summarized file within a directory bucket.
type FileSummary struct {
	Name    string
	Summary string
}

// Section is one directory bucket of the report.
type Section struct {
	Dir   string
	Files []FileSummary
}

// Report is the digest grouped by directory, ordered by directory name,
// each section's files ordered by filename.
type Report []Section

// Group buckets summaries (keyed by slash-separated relative path) by their
// containing directory. Pure transform: no information is added, dropped,
// or inferred, and the same input always yields the same report.
func Group(summaries map[string]string) Report {
	buckets := make(map[string][]FileSummary)
	for rel, summary := range summaries {
		dir := path.Dir(rel)
		if dir == "." {
			dir = RootDir
		}
		buckets[dir] = append(buckets[dir], FileSummary{
			Name:    path.Base(rel),
			Summary: summary,
		})
	}

	dirs := make([]string, 0, len(buckets))
	for dir := range buckets {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	report := make(Report, 0, len(dirs))
	for _, dir := range dirs {
		files := buckets[dir]
		sort.Slice(files, func(i, j int) bool {
			return files[i].Name < files[j].Name
		})
		report = append(report, Section{Dir: dir, Files: files})
	}
	return report
}

// Render produces the digest artifact: a project heading, a sub-heading per
// directory, and one bullet per file.
func Render(project string, report Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", project)

	for _, section := range report {
		if section.Dir == RootDir {
			b.WriteString("## Root Directory\n\n")
		} else {
			fmt.Fprintf(&b, "## %s/\n\n", section.Dir)
		}
		for _, file := range section.Files {
			fmt.Fprintf(&b, "- **%s**: %s\n", file.Name, file.Summary)
		}
		b.WriteString("\n")
	}

	return b.String()
}
