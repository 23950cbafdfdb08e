package intranet

import "strings"

// Paths of the intranet.
const (
	PathGateway   = "/"
	PathDashboard = "/dashboard"
	PathMessages  = "/messages"
	PathNotices   = "/notices"
	PathShadows   = "/shadows"
	PathMall      = "/welfare-mall"
)

// Page identifies what a path renders.
type Page int

const (
	PageGateway Page = iota
	PageDashboard
	PageMessages
	PageMessage
	PageNotices
	PageNotice
	PageShadows
	PageMall
	PageUnknown
)

// Route is a parsed path.
type Route struct {
	Page Page
	ID   string
}

// ParseRoute maps a path to its page. Detail pages carry their id.
func ParseRoute(path string) Route {
	if path == "" || path == PathGateway {
		return Route{Page: PageGateway}
	}
	path = strings.TrimSuffix(path, "/")
	for _, r := range []struct {
		prefix       string
		list, detail Page
	}{
		{PathMessages, PageMessages, PageMessage},
		{PathNotices, PageNotices, PageNotice},
	} {
		if path == r.prefix {
			return Route{Page: r.list}
		}
		if id, ok := strings.CutPrefix(path, r.prefix+"/"); ok && id != "" && !strings.Contains(id, "/") {
			return Route{Page: r.detail, ID: id}
		}
	}
	switch path {
	case PathDashboard:
		return Route{Page: PageDashboard}
	case PathShadows:
		return Route{Page: PageShadows}
	case PathMall:
		return Route{Page: PageMall}
	}
	return Route{Page: PageUnknown}
}

// MessagePath is the detail path of a message.
func MessagePath(id string) string { return PathMessages + "/" + id }

// NoticePath is the detail path of a notice.
func NoticePath(id string) string { return PathNotices + "/" + id }
