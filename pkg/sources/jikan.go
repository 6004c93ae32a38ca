package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/utils"
)

const (
	DefaultJikanURL = "https://api.jikan.moe/v4"

	unknownTitle  = "Unknown Title"
	unknownStatus = "Unknown"
	unknownCount  = "N/A"
)

// Record is a raw anime or manga record from the Jikan v4 API.
type Record struct {
	MalID    int    `json:"mal_id"`
	Title    string `json:"title"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Episodes *int   `json:"episodes"`
	Chapters *int   `json:"chapters"`
	Images   struct {
		JPG *struct {
			ImageURL string `json:"image_url"`
		} `json:"jpg"`
		ImageURL string `json:"image_url"`
	} `json:"images"`
}

// ToResult normalizes the record, filling the documented fallbacks.
func (r *Record) ToResult(category data.Category) data.SearchResult {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	if title == "" {
		title = unknownTitle
	}

	status := r.Status
	if status == "" {
		status = unknownStatus
	}

	count := unknownCount
	n := r.Episodes
	if category == data.Manga {
		n = r.Chapters
	}
	if n != nil && *n > 0 {
		count = fmt.Sprintf("%d", *n)
	}

	image := r.Images.ImageURL
	if r.Images.JPG != nil && r.Images.JPG.ImageURL != "" {
		image = r.Images.JPG.ImageURL
	}

	return data.SearchResult{
		ExternalID: r.MalID,
		Category:   category,
		Title:      title,
		Status:     status,
		Count:      count,
		ImageURL:   image,
	}
}

type Jikan struct {
	api *utils.API
}

func NewJikan(baseURL string, timeout time.Duration) *Jikan {
	if baseURL == "" {
		baseURL = DefaultJikanURL
	}
	return &Jikan{api: utils.NewAPI(baseURL, timeout)}
}

func (j *Jikan) Search(ctx context.Context, query string, category data.Category) ([]data.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if _, ok := data.ParseCategory(string(category)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	var page struct {
		Data []Record `json:"data"`
	}
	if err := j.api.Get(ctx, "/"+string(category), url.Values{"q": {query}}, &page); err != nil {
		slog.Warn("search_failed", "category", category, "query", query, "error", err)
		return nil, newFetchError(err)
	}

	out := make([]data.SearchResult, len(page.Data))
	for i := range page.Data {
		out[i] = page.Data[i].ToResult(category)
	}
	return out, nil
}

func (j *Jikan) Get(ctx context.Context, category data.Category, externalID int) (*data.SearchResult, error) {
	if _, ok := data.ParseCategory(string(category)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	var single struct {
		Data Record `json:"data"`
	}
	if err := j.api.Get(ctx, fmt.Sprintf("/%s/%d", category, externalID), nil, &single); err != nil {
		return nil, newFetchError(err)
	}
	result := single.Data.ToResult(category)
	if result.ExternalID == 0 {
		result.ExternalID = externalID
	}
	return &result, nil
}
