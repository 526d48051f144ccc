package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrableDomain(t *testing.T) {
	tbl := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/news/1", "example.com"},
		{"http://news.bbc.co.uk/a?b=c", "bbc.co.uk"},
		{"HTTPS://Sub.Example.COM", "example.com"},
		{"blog.example.org", "example.org"},
		{"example.org/path", "example.org"},
		{"example.org:8080", "example.org"},
		{"http://localhost:8080/x", "localhost"},
		{"", ""},
		{"   ", ""},
		{"https://", ""},
	}

	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RegistrableDomain(tt.in))
		})
	}
}
