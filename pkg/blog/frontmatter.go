package blog

import (
	"regexp"
	"strings"
)

var frontMatterRe = regexp.MustCompile(`(?s)\A---\n(.+?)\n---`)

// ExtractFrontMatter parses a leading "---" delimited block of key: value
// lines. Values keep any further colons. Content without a block yields an
// empty map.
func ExtractFrontMatter(content string) map[string]string {
	fm, _ := splitFrontMatter(content)
	return fm
}

// splitFrontMatter returns the parsed block and the body that follows it.
func splitFrontMatter(content string) (map[string]string, string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	out := map[string]string{}

	loc := frontMatterRe.FindStringSubmatchIndex(content)
	if loc == nil {
		return out, content
	}

	for _, line := range strings.Split(content[loc[2]:loc[3]], "\n") {
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}

	body := content[loc[1]:]
	return out, strings.TrimPrefix(body, "\n")
}
