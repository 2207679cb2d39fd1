package service

import (
	"strings"

	"ai-tutoring-system/internal/domain"
)

var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"### ", 1},
	{"## ", 2},
	{"# ", 3},
}

// ParseMarkup converts enhanced notes into a styled document, one block per
// line. The first matching rule wins: blank, heading, bullet, bold, italic,
// paragraph.
func ParseMarkup(text string) domain.StyledDocument {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	blocks := make([]domain.Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, parseLine(line))
	}
	return domain.NewStyledDocument(blocks)
}

func parseLine(line string) domain.Block {
	if strings.TrimSpace(line) == "" {
		return domain.Block{Kind: domain.BlockSpacer}
	}

	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.prefix) {
			return domain.Block{
				Kind:  domain.BlockHeading,
				Level: h.level,
				Runs:  []domain.TextRun{{Text: line[len(h.prefix):]}},
			}
		}
	}

	if strings.HasPrefix(line, "- ") {
		return domain.Block{
			Kind: domain.BlockBullet,
			Runs: []domain.TextRun{{Text: domain.BulletGlyph + " " + line[2:]}},
		}
	}

	if strings.Contains(line, "**") {
		return domain.Block{Kind: domain.BlockEmphasis, Runs: emphasisRuns(line, "**", domain.StyleBold)}
	}
	if strings.Contains(line, "*") {
		return domain.Block{Kind: domain.BlockEmphasis, Runs: emphasisRuns(line, "*", domain.StyleItalic)}
	}

	return domain.Block{Kind: domain.BlockParagraph, Runs: []domain.TextRun{{Text: line}}}
}

// emphasisRuns styles the span between the first two markers. Later markers
// stay literal; a missing closing marker styles the rest of the line.
func emphasisRuns(line, marker string, style domain.RunStyle) []domain.TextRun {
	before, rest, _ := strings.Cut(line, marker)
	inner, after, closed := strings.Cut(rest, marker)

	runs := make([]domain.TextRun, 0, 3)
	if before != "" {
		runs = append(runs, domain.TextRun{Text: before})
	}
	if inner != "" {
		runs = append(runs, domain.TextRun{Text: inner, Style: style})
	}
	if closed && after != "" {
		runs = append(runs, domain.TextRun{Text: after})
	}
	return runs
}
