package search

import (
	"net/url"
	"strconv"
	"strings"

	"contentpicker/internal/domain"
)

const (
	searchEndpoint = "wp/v2/search"
	usersEndpoint  = "wp/v2/users"
)

// BuildQuery maps a query tuple to its canonical REST path.
// The result only depends on its inputs.
func BuildQuery(args QueryArgs, filter QueryFilter) string {
	var b strings.Builder

	switch args.Mode {
	case domain.ModeUser:
		b.WriteString(usersEndpoint)
		b.WriteString("?search=")
		b.WriteString(escape(args.Keyword))
	default:
		mode := args.Mode
		if mode == "" {
			mode = domain.ModePost
		}
		types := make([]string, len(args.ContentTypes))
		for i, t := range args.ContentTypes {
			types[i] = escape(t)
		}

		b.WriteString(searchEndpoint)
		b.WriteString("?search=")
		b.WriteString(escape(args.Keyword))
		b.WriteString("&subtype=")
		b.WriteString(strings.Join(types, ","))
		b.WriteString("&type=")
		b.WriteString(escape(string(mode)))
		b.WriteString("&_embed=true&per_page=")
		b.WriteString(strconv.Itoa(args.PerPage))
		b.WriteString("&page=")
		b.WriteString(strconv.Itoa(args.Page))
	}

	query := b.String()
	if filter != nil {
		query = filter(query, args)
	}
	return query
}

// escape encodes a query value with %20 for spaces
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
