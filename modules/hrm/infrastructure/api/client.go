// Package api implements the hrm repositories over the HRMS REST API.
package api

import (
	"context"
	"net/url"
	"strconv"
)

// Client is the part of *apiclient.Client the repositories use.
type Client interface {
	Get(ctx context.Context, endpoint, path string, query url.Values, out any) (string, error)
	Post(ctx context.Context, endpoint, path string, body, out any) (string, error)
	Delete(ctx context.Context, endpoint, path string) (string, error)
}

func pageQuery(skip, limit int) url.Values {
	return url.Values{
		"skip":  {strconv.Itoa(skip)},
		"limit": {strconv.Itoa(limit)},
	}
}
