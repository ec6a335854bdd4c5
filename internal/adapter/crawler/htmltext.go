package crawler

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Best-effort HTML to readable markdown-ish text. Strips navigation and
// script noise, keeps headings, links and list items. Intentionally regex
// based and fast; documentation pages do not need a full DOM walk.

var (
	noiseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`),
		regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`),
		regexp.MustCompile(`(?is)<nav\b[^>]*>.*?</nav>`),
		regexp.MustCompile(`(?is)<footer\b[^>]*>.*?</footer>`),
		regexp.MustCompile(`(?is)<header\b[^>]*>.*?</header>`),
		regexp.MustCompile(`(?is)<aside\b[^>]*>.*?</aside>`),
		regexp.MustCompile(`(?is)<!--.*?-->`),
	}

	anchorRe = regexp.MustCompile(`(?is)<a\b[^>]*href="([^"#][^"]*)"[^>]*>(.*?)</a>`)
	liRe     = regexp.MustCompile(`(?is)<li\b[^>]*>(.*?)</li>`)
	pCloseRe = regexp.MustCompile(`(?i)</(p|div|ul|ol|table|pre)>`)
	brRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]+>`)
)

var headingRes = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<h1\b[^>]*>(.*?)</h1>`),
	regexp.MustCompile(`(?is)<h2\b[^>]*>(.*?)</h2>`),
	regexp.MustCompile(`(?is)<h3\b[^>]*>(.*?)</h3>`),
}

// HTMLToMarkdown converts an HTML page to plain readable text with
// markdown headings, links and list items.
func HTMLToMarkdown(src string) string {
	for _, re := range noiseRes {
		src = re.ReplaceAllString(src, "")
	}

	src = anchorRe.ReplaceAllStringFunc(src, func(m string) string {
		parts := anchorRe.FindStringSubmatch(m)
		href := strings.TrimSpace(parts[1])
		text := strings.TrimSpace(tagRe.ReplaceAllString(parts[2], ""))
		if href == "" || text == "" {
			return text
		}
		return fmt.Sprintf("[%s](%s)", text, href)
	})

	for level, re := range headingRes {
		marker := strings.Repeat("#", level+1)
		src = re.ReplaceAllStringFunc(src, func(m string) string {
			text := strings.TrimSpace(tagRe.ReplaceAllString(re.FindStringSubmatch(m)[1], ""))
			return "\n\n" + marker + " " + text + "\n\n"
		})
	}

	src = liRe.ReplaceAllStringFunc(src, func(m string) string {
		text := strings.TrimSpace(tagRe.ReplaceAllString(liRe.FindStringSubmatch(m)[1], ""))
		return "\n- " + text
	})

	src = pCloseRe.ReplaceAllString(src, "\n\n")
	src = brRe.ReplaceAllString(src, "\n")
	src = tagRe.ReplaceAllString(src, "")
	src = html.UnescapeString(src)

	return CollapseWhitespace(src)
}

var (
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	headingLineRe   = regexp.MustCompile(`(?m)^(#{1,6}\s.*)$`)
)

// CollapseWhitespace normalizes whitespace: carriage returns and
// non-breaking spaces removed, trailing blanks stripped, runs of blank
// lines reduced to one.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// CleanDocument tidies a markdown document for chunking: collapsed
// whitespace plus a guaranteed blank line after each heading.
func CleanDocument(s string) string {
	s = CollapseWhitespace(s)
	return headingLineRe.ReplaceAllString(s, "$1\n")
}
