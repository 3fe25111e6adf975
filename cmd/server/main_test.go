package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	handler := http.NewServeMux()

	srv := newServer("8080", handler)
	require.NotNil(t, srv)

	assert.Equal(t, ":8080", srv.Addr)
	assert.NotNil(t, srv.Handler)
	assert.Equal(t, 10*time.Second, srv.ReadHeaderTimeout)
}
