package poetry

import (
	"net/url"
	"strconv"
)

const (
	authorBase = "/author"
	titleBase  = "/title"
	randomBase = "/random"
	linesBase  = "/lines"

	// exactSuffix asks PoetryDB for an exact rather than substring match.
	exactSuffix = ":abs"
)

func AuthorPath() string { return authorBase }

func AuthorByNamePath(name string) string { return authorBase + "/" + url.PathEscape(name) }

func TitlePath() string { return titleBase }

func TitleByNamePath(name string) string { return titleBase + "/" + url.PathEscape(name) }

func TitleExactPath(name string) string { return TitleByNamePath(name) + exactSuffix }

func RandomPath() string { return randomBase }

func RandomCountPath(n int) string { return randomBase + "/" + strconv.Itoa(n) }

func LinesByTextPath(text string) string { return linesBase + "/" + url.PathEscape(text) }
