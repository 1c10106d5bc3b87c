package inkwell

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/hollowaylabs/inkwell/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD returns a JSON-LD string for an Article schema built from a
// post index record.
func ArticleJsonLD(post content.PostInfo, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "writing", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.Date,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.Modified != "" {
		data["dateModified"] = post.Modified
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
