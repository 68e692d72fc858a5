// File: services/book/catalog.go
package book

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"bookcircle/models"
	"bookcircle/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	books "google.golang.org/api/books/v1"
	"google.golang.org/api/option"
)

const openLibraryURL = "https://openlibrary.org/api/books?bibkeys=ISBN:%s&format=json&jscmd=data"

var isbnPattern = regexp.MustCompile(`^[0-9]{9}[0-9Xx]$|^[0-9]{13}$`)

// CatalogClient resolves ISBN metadata from Google Books, with Open Library
// as fallback. Results are cached in Redis.
type CatalogClient struct {
	books *books.Service
	cache *redis.Client
	http  *http.Client
}

// NewCatalogClient constructs the client. The Google Books service is
// optional; without an API key only the Open Library path is used.
func NewCatalogClient(apiKey string, cache *redis.Client) *CatalogClient {
	c := &CatalogClient{
		cache: cache,
		http:  &http.Client{Timeout: 10 * time.Second},
	}

	if apiKey != "" {
		svc, err := books.NewService(context.Background(), option.WithAPIKey(apiKey))
		if err != nil {
			utils.GetLogger().Warn("catalog: failed to initialize Google Books client", zap.Error(err))
		} else {
			c.books = svc
		}
	}
	return c
}

// Lookup resolves metadata for one ISBN.
func (c *CatalogClient) Lookup(isbn string) (*models.BookMetadata, error) {
	if !isbnPattern.MatchString(isbn) {
		return nil, fmt.Errorf("invalid ISBN %q", isbn)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cacheKey := utils.CatalogCachePrefix + isbn
	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			var meta models.BookMetadata
			if err := json.Unmarshal([]byte(raw), &meta); err == nil {
				return &meta, nil
			}
		}
	}

	meta, err := c.lookupGoogleBooks(ctx, isbn)
	if err != nil {
		utils.GetLogger().Debug("catalog: Google Books lookup failed, trying Open Library",
			zap.String("isbn", isbn), zap.Error(err))
		meta, err = c.lookupOpenLibrary(ctx, isbn)
		if err != nil {
			return nil, fmt.Errorf("no metadata found for ISBN %s: %w", isbn, err)
		}
	}

	if c.cache != nil {
		if raw, err := json.Marshal(meta); err == nil {
			_ = c.cache.Set(ctx, cacheKey, raw, utils.CatalogCacheTTL).Err()
		}
	}
	return meta, nil
}

func (c *CatalogClient) lookupGoogleBooks(ctx context.Context, isbn string) (*models.BookMetadata, error) {
	if c.books == nil {
		return nil, fmt.Errorf("google books client not configured")
	}

	res, err := c.books.Volumes.List("isbn:" + isbn).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 || res.Items[0].VolumeInfo == nil {
		return nil, fmt.Errorf("no volumes returned")
	}

	info := res.Items[0].VolumeInfo
	meta := &models.BookMetadata{
		ISBN:          isbn,
		Title:         info.Title,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		PageCount:     int(info.PageCount),
		Categories:    info.Categories,
		Source:        "google_books",
	}
	if info.ImageLinks != nil {
		meta.CoverURL = info.ImageLinks.Thumbnail
	}
	return meta, nil
}

// Open Library response shape for jscmd=data, narrowed to what we read.
type openLibraryBook struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishDate   string `json:"publish_date"`
	NumberOfPages int    `json:"number_of_pages"`
	Cover         struct {
		Medium string `json:"medium"`
	} `json:"cover"`
}

func (c *CatalogClient) lookupOpenLibrary(ctx context.Context, isbn string) (*models.BookMetadata, error) {
	url := fmt.Sprintf(openLibraryURL, isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open library returned status %d", resp.StatusCode)
	}

	var payload map[string]openLibraryBook
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	entry, ok := payload["ISBN:"+isbn]
	if !ok || entry.Title == "" {
		return nil, fmt.Errorf("no entry returned")
	}

	meta := &models.BookMetadata{
		ISBN:          isbn,
		Title:         entry.Title,
		PublishedDate: entry.PublishDate,
		PageCount:     entry.NumberOfPages,
		CoverURL:      entry.Cover.Medium,
		Source:        "open_library",
	}
	for _, a := range entry.Authors {
		meta.Authors = append(meta.Authors, a.Name)
	}
	if len(entry.Publishers) > 0 {
		meta.Publisher = entry.Publishers[0].Name
	}
	return meta, nil
}
