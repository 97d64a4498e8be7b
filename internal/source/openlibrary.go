package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"bookrec/pkg/models"
)

// Open Library API base (public, no key needed).
const openLibraryBase = "https://openlibrary.org"

// Cover images are derived from the numeric cover identifier.
const coversBase = "https://covers.openlibrary.org"

// Subjects on Open Library works can run into the hundreds; only the
// first few are kept so category strings stay comparable to the local
// dataset's.
const maxSubjects = 5

// OpenLibrary fetches book records from the Open Library search API.
// All calls share one rate limiter, keeping the client polite (about
// two requests per second by default).
type OpenLibrary struct {
	BaseURL string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewOpenLibrary creates a client. Empty baseURL means the public API;
// perSecond <= 0 falls back to 2 req/s.
func NewOpenLibrary(baseURL string, timeout time.Duration, perSecond float64) *OpenLibrary {
	if baseURL == "" {
		baseURL = openLibraryBase
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if perSecond <= 0 {
		perSecond = 2
	}
	return &OpenLibrary{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (s *OpenLibrary) Name() string { return "openlibrary" }

type searchResponse struct {
	NumFound int     `json:"numFound"`
	Docs     []olDoc `json:"docs"`
}

type olDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	Subject          []string `json:"subject"`
	FirstPublishYear int      `json:"first_publish_year"`
	Publisher        []string `json:"publisher"`
	ISBN             []string `json:"isbn"`
	CoverI           int      `json:"cover_i"`
	FirstSentence    []string `json:"first_sentence"`
	Language         []string `json:"language"`
}

// Fetch issues one search request, narrowed by kind, and maps the docs
// into normalized Books with fallback defaults for every optional
// field. Transport and decode failures wrap ErrUnavailable; zero docs
// is an empty slice, not an error.
func (s *OpenLibrary) Fetch(ctx context.Context, query string, max int, kind Kind) ([]models.Book, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate wait: %v", ErrUnavailable, err)
	}

	u, err := url.Parse(s.BaseURL + "/search.json")
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %v", ErrUnavailable, err)
	}

	q := u.Query()
	switch kind {
	case ByAuthor:
		q.Set("author", query)
	case ByTitle:
		q.Set("title", query)
	case BySubject:
		q.Set("subject", query)
	default:
		q.Set("q", query)
	}
	if max > 0 {
		q.Set("limit", strconv.Itoa(max))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request: %v", ErrUnavailable, err)
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	books := make([]models.Book, 0, len(sr.Docs))
	for _, doc := range sr.Docs {
		if max > 0 && len(books) >= max {
			break
		}
		books = append(books, mapDoc(doc))
	}
	return books, nil
}

// mapDoc normalizes one search doc. Every optional field gets a
// fallback so downstream display and scoring never see an absence
// marker.
func mapDoc(doc olDoc) models.Book {
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = models.UnknownTitle
	}

	authors := strings.Join(doc.AuthorName, ", ")
	if strings.TrimSpace(authors) == "" {
		authors = models.UnknownAuthor
	}

	subjects := doc.Subject
	if len(subjects) > maxSubjects {
		subjects = subjects[:maxSubjects]
	}
	categories := strings.Join(subjects, ", ")
	if strings.TrimSpace(categories) == "" {
		categories = models.Uncategorized
	}

	description := ""
	if len(doc.FirstSentence) > 0 {
		description = doc.FirstSentence[0]
	}

	published := models.UnknownPubDate
	if doc.FirstPublishYear > 0 {
		published = strconv.Itoa(doc.FirstPublishYear)
	}

	thumbnail := ""
	if doc.CoverI > 0 {
		thumbnail = fmt.Sprintf("%s/b/id/%d-M.jpg", coversBase, doc.CoverI)
	}

	// Only work identifiers are kept; edition and author keys are not
	// usable against the works endpoint.
	sourceKey := ""
	if strings.HasPrefix(doc.Key, "/works/") {
		sourceKey = doc.Key
	}

	return models.Book{
		Title:         title,
		Authors:       authors,
		Categories:    categories,
		Description:   description,
		PublishedDate: published,
		ThumbnailURL:  thumbnail,
		SourceKey:     sourceKey,
	}
}

// WorkDetail is the extended metadata behind a work identifier.
type WorkDetail struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Subjects    []string `json:"subjects"`
}

// Work fetches extended metadata for a work key ("/works/OL...W").
// Failures yield an empty detail, never an error: detail lookups are
// strictly best-effort garnish on top of the search results.
func (s *OpenLibrary) Work(ctx context.Context, key string) WorkDetail {
	if !strings.HasPrefix(key, "/works/") {
		return WorkDetail{}
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return WorkDetail{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+key+".json", nil)
	if err != nil {
		return WorkDetail{}
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		log.Printf("[openlibrary] work %s: %v", key, err)
		return WorkDetail{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[openlibrary] work %s: status %d", key, resp.StatusCode)
		return WorkDetail{}
	}

	// The description field is either a plain string or a typed
	// {"type": ..., "value": ...} object depending on the record.
	var raw struct {
		Title       string          `json:"title"`
		Description json.RawMessage `json:"description"`
		Subjects    []string        `json:"subjects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Printf("[openlibrary] work %s: decode: %v", key, err)
		return WorkDetail{}
	}

	return WorkDetail{
		Title:       raw.Title,
		Description: decodeDescription(raw.Description),
		Subjects:    raw.Subjects,
	}
}

func decodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &typed); err == nil {
		return typed.Value
	}
	return ""
}
