// YouTube Data API v3 [Searcher] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/steave-git/Streaming-Musical-Web/internal/formatter"
	"github.com/steave-git/Streaming-Musical-Web/internal/models"
	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// maxSearchResults caps how many hits one search requests upstream.
const maxSearchResults = 15

// YouTubeService implements [Searcher] against the YouTube Data API v3.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube search client. The base URL is
// overridable for tests; the client defaults to an explicit 10 second
// timeout so a stalled upstream cannot hold a request open indefinitely.
func NewYouTubeService(apiKey, baseURL string, client *http.Client) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &YouTubeService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Search resolves a query in two phases: search.list for the hits, then one
// bulk videos.list call for contentDetails+statistics of every returned id.
// Non-video result kinds are skipped. Durations and view counts are merged
// into each result by id.
func (y *YouTubeService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("part", "id,snippet")
	params.Set("maxResults", strconv.Itoa(maxSearchResults))
	params.Set("type", "video")
	params.Set("videoDuration", "medium")
	params.Set("relevanceLanguage", "fr")
	params.Set("regionCode", "FR")

	var searchResp searchResponse
	if err := y.doRequest(ctx, "/search", params, &searchResp); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	videos := []models.SearchResult{}
	videoIDs := []string{}

	for _, item := range searchResp.Items {
		if item.ID.Kind != "youtube#video" {
			continue
		}

		result := models.SearchResult{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Thumbnail:   item.Snippet.Thumbnails.High.URL,
			Channel:     item.Snippet.ChannelTitle,
			Duration:    "00:00",
			Views:       "0",
			PublishedAt: item.Snippet.PublishedAt,
		}

		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			result.PublishedText = formatter.FormatDate(published, now)
		}

		videoIDs = append(videoIDs, item.ID.VideoID)
		videos = append(videos, result)
	}

	if len(videoIDs) == 0 {
		return videos, nil
	}

	detailParams := url.Values{}
	detailParams.Set("id", strings.Join(videoIDs, ","))
	detailParams.Set("part", "contentDetails,statistics")

	var detailResp videosResponse
	if err := y.doRequest(ctx, "/videos", detailParams, &detailResp); err != nil {
		return nil, err
	}

	for _, item := range detailResp.Items {
		for i := range videos {
			if videos[i].ID != item.ID {
				continue
			}

			videos[i].Duration = formatter.ParseDuration(item.ContentDetails.Duration)

			views, err := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
			if err != nil {
				views = 0
			}
			videos[i].Views = formatter.FormatViews(views)
		}
	}

	return videos, nil
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	params.Set("key", y.apiKey)
	apiURL := y.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrUpstream, err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrUpstream, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrUpstream, err)
	}

	return nil
}
