package static

import (
	"fmt"
	"html"
	"net/url"
	"os"
	"path"
	"strings"
)

// listing renders a minimal HTML directory index: one relative link per
// immediate child, directories with a trailing slash, and a parent link
// unless the directory is the document root itself.
func (r *Resolver) listing(urlPath, dir string) (*Content, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	display := path.Clean("/" + strings.Trim(urlPath, "/"))

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&sb, "<title>Directory listing for %s</title>\n", html.EscapeString(display))
	sb.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&sb, "<h1>Directory listing for %s</h1>\n", html.EscapeString(display))
	sb.WriteString("<ul>\n")

	if display != "/" {
		sb.WriteString(`<li><a href="../">..</a></li>` + "\n")
	}

	// os.ReadDir returns entries sorted by name.
	for _, entry := range entries {
		name := entry.Name()
		href := url.PathEscape(name)
		if entry.IsDir() {
			fmt.Fprintf(&sb, `<li><a href="%s/">%s/</a></li>`+"\n", href, html.EscapeString(name))
		} else {
			fmt.Fprintf(&sb, `<li><a href="%s">%s</a></li>`+"\n", href, html.EscapeString(name))
		}
	}

	sb.WriteString("</ul>\n</body>\n</html>\n")
	return &Content{Data: []byte(sb.String()), Type: "text/html"}, nil
}
