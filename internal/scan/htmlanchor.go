package scan

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlAnchors tokenizes the non-code text of a document and collects
// explicit anchor ids: any id attribute, plus name attributes on <a> tags.
// These are valid link targets alongside the heading slugs.
func htmlAnchors(src string) []string {
	if !strings.Contains(src, "<") {
		return nil
	}

	var anchors []string
	seen := make(map[string]bool)
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return anchors
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if !hasAttr {
			continue
		}
		isAnchorTag := string(name) == "a"
		for {
			k, v, more := z.TagAttr()
			key := string(k)
			if key == "id" || (isAnchorTag && key == "name") {
				if id := string(v); id != "" && !seen[id] {
					seen[id] = true
					anchors = append(anchors, id)
				}
			}
			if !more {
				break
			}
		}
	}
}
