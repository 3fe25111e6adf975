package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

// pageParams reads page and limit query parameters, tolerating absence.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}

// uintQuery reads an optional uint query parameter.
func uintQuery(c *gin.Context, name string) (*uint, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	v, err := parseUint(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// floatQuery reads an optional float query parameter.
func floatQuery(c *gin.Context, name string) (*float64, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// intQuery reads an optional int query parameter.
func intQuery(c *gin.Context, name string) (*int, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// boolQuery reads a boolean query parameter, treating absence as false.
func boolQuery(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}

// csvQuery splits a comma-separated query parameter into trimmed values.
func csvQuery(c *gin.Context, name string) []string {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
