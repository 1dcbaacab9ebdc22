package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromURL(t *testing.T) {
	store := &S3Store{
		bucket:  "lumilens-assets",
		baseURL: "https://lumilens-assets.s3.us-east-1.amazonaws.com",
	}

	assert.Equal(t, "photos/abc.jpg",
		store.KeyFromURL("https://lumilens-assets.s3.us-east-1.amazonaws.com/photos/abc.jpg"))
	assert.Equal(t, "thumbnails/abc.jpg",
		store.KeyFromURL("https://lumilens-assets.s3.us-east-1.amazonaws.com/thumbnails/abc.jpg"))

	assert.Empty(t, store.KeyFromURL(""))
	assert.Empty(t, store.KeyFromURL("https://elsewhere.example.com/photos/abc.jpg"))
	assert.Empty(t, store.KeyFromURL("https://lumilens-assets.s3.us-east-1.amazonaws.com"), "bare base URL has no key")
}

func TestKeyFromURLWithCDNBase(t *testing.T) {
	store := &S3Store{
		bucket:  "lumilens-assets",
		baseURL: "https://cdn.lumilens.app",
	}

	assert.Equal(t, "avatars/p1.jpg", store.KeyFromURL("https://cdn.lumilens.app/avatars/p1.jpg"))
	assert.Empty(t, store.KeyFromURL("https://lumilens-assets.s3.us-east-1.amazonaws.com/avatars/p1.jpg"))
}
