package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"bookrec/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

// Descriptions longer than this are cut for list display.
const maxDescriptionLength = 200

type bookListResponse struct {
	Total int           `json:"total"`
	Limit int           `json:"limit"`
	Items []models.Book `json:"items"`
}

type recommendation struct {
	Book       models.Book `json:"book"`
	Score      int         `json:"score"`
	MatchRatio float64     `json:"match_ratio"`
}

type recommendResponse struct {
	Reference models.Book      `json:"reference"`
	Count     int              `json:"count"`
	Items     []recommendation `json:"items"`
}

type searchResponse struct {
	Warning string        `json:"warning"`
	Fetched int           `json:"fetched"`
	Added   int           `json:"added"`
	Total   int           `json:"total"`
	Items   []models.Book `json:"items"`
}

func main() {
	global := flag.NewFlagSet("bookrec", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "books":
		handleBooks(ctx, client, *baseURL, sub, args[2:])
	case "recommend":
		handleRecommend(ctx, client, *baseURL, args[1:])
	case "search":
		handleSearch(ctx, client, *baseURL, args[1:])
	case "stats":
		handleStats(ctx, client, *baseURL)
	case "session":
		handleSession(ctx, client, *baseURL, sub)
	case "watch":
		handleWatch(*baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleBooks(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("books list", flag.ExitOnError)
		author := fs.String("author", "", "exact author filter")
		category := fs.String("category", "", "category filter (substring match)")
		query := fs.String("q", "", "title search")
		limit := fs.Int("limit", 5, "max books to show")
		session := fs.String("session", "", "session id")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/books")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *author != "" {
			qv.Set("author", *author)
		}
		if *category != "" {
			qv.Set("category", *category)
		}
		if *query != "" {
			qv.Set("q", *query)
		}
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		u.RawQuery = qv.Encode()

		var resp bookListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), *session, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		if len(resp.Items) == 0 {
			fmt.Println("no books found")
			return
		}
		for _, b := range resp.Items {
			printBook(b, true)
		}
		if resp.Total > len(resp.Items) {
			fmt.Printf("showing %d out of %d books\n", len(resp.Items), resp.Total)
		}
	case "show":
		fs := flag.NewFlagSet("books show", flag.ExitOnError)
		title := fs.String("title", "", "exact book title")
		session := fs.String("session", "", "session id")
		_ = fs.Parse(args)
		if *title == "" {
			log.Fatal("title is required")
		}

		u := baseURL + "/books/detail?title=" + url.QueryEscape(*title)
		var b models.Book
		if err := doJSON(ctx, client, http.MethodGet, u, *session, nil, &b); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printBook(b, false)
	case "authors":
		var resp struct {
			Authors []string `json:"authors"`
		}
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/books/authors", "", nil, &resp); err != nil {
			log.Fatalf("authors failed: %v", err)
		}
		for _, a := range resp.Authors {
			fmt.Println(a)
		}
	case "categories":
		var resp struct {
			Categories []string `json:"categories"`
		}
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/books/categories", "", nil, &resp); err != nil {
			log.Fatalf("categories failed: %v", err)
		}
		for _, t := range resp.Categories {
			fmt.Println(t)
		}
	default:
		log.Fatal("usage: bookrec books <list|show|authors|categories>")
	}
}

func handleRecommend(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	title := fs.String("title", "", "reference book title")
	n := fs.Int("n", 5, "number of recommendations (1-20)")
	session := fs.String("session", "", "session id")
	_ = fs.Parse(args)
	if *title == "" {
		log.Fatal("title is required")
	}

	u, err := url.Parse(baseURL + "/recommendations")
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	qv.Set("title", *title)
	qv.Set("limit", fmt.Sprintf("%d", *n))
	u.RawQuery = qv.Encode()

	var resp recommendResponse
	if err := doJSON(ctx, client, http.MethodGet, u.String(), *session, nil, &resp); err != nil {
		log.Fatalf("recommend failed: %v", err)
	}

	fmt.Printf("books similar to %q:\n\n", resp.Reference.Title)
	if len(resp.Items) == 0 {
		fmt.Println("no similar books in the catalog")
		return
	}
	for _, rec := range resp.Items {
		fmt.Printf("%.1f%% match: %s\n", rec.MatchRatio*100, rec.Book.Title)
		fmt.Printf("    author:   %s\n", rec.Book.Authors)
		fmt.Printf("    category: %s\n", rec.Book.Categories)
		if rec.Book.Description != "" {
			fmt.Printf("    %s\n", truncate(rec.Book.Description, maxDescriptionLength))
		}
		fmt.Println()
	}
}

func handleSearch(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("query", "", "search text")
	kind := fs.String("kind", "", "narrow search: author, title or subject")
	max := fs.Int("max", 20, "max results to fetch")
	session := fs.String("session", "", "session id")
	_ = fs.Parse(args)
	if *query == "" {
		log.Fatal("query is required")
	}

	payload := map[string]any{"query": *query, "kind": *kind, "max": *max}
	var resp searchResponse
	if err := doJSON(ctx, client, http.MethodPost, baseURL+"/search", *session, payload, &resp); err != nil {
		log.Fatalf("search failed: %v", err)
	}

	if resp.Warning != "" {
		fmt.Println("warning:", resp.Warning)
	}
	fmt.Printf("fetched %d, merged %d new, catalog now %d books\n", resp.Fetched, resp.Added, resp.Total)
	for _, b := range resp.Items {
		printBook(b, true)
	}
}

func handleStats(ctx context.Context, client *http.Client, baseURL string) {
	var resp struct {
		TotalBooks       int `json:"total_books"`
		UniqueAuthors    int `json:"unique_authors"`
		UniqueCategories int `json:"unique_categories"`
	}
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/books/stats", "", nil, &resp); err != nil {
		log.Fatalf("stats failed: %v", err)
	}
	fmt.Printf("total books:       %d\n", resp.TotalBooks)
	fmt.Printf("unique authors:    %d\n", resp.UniqueAuthors)
	fmt.Printf("unique categories: %d\n", resp.UniqueCategories)
}

func handleSession(ctx context.Context, client *http.Client, baseURL, sub string) {
	switch sub {
	case "new":
		var resp struct {
			SessionID string `json:"session_id"`
		}
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/sessions", "", nil, &resp); err != nil {
			log.Fatalf("session create failed: %v", err)
		}
		fmt.Println(resp.SessionID)
	default:
		log.Fatal("usage: bookrec session new")
	}
}

func handleWatch(baseURL string) {
	wsURL, err := websocketURL(baseURL, "/ws")
	if err != nil {
		log.Fatalf("bad websocket url: %v", err)
	}
	if err := runWebSocket(wsURL); err != nil {
		log.Fatalf("watch failed: %v", err)
	}
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[watch] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func printBook(b models.Book, short bool) {
	fmt.Printf("### %s\n", b.Title)
	fmt.Printf("author:   %s\n", b.Authors)
	fmt.Printf("category: %s\n", b.Categories)
	if b.PublishedDate != "" {
		fmt.Printf("published: %s\n", b.PublishedDate)
	}
	if b.Description != "" {
		desc := b.Description
		if short {
			desc = truncate(desc, maxDescriptionLength)
		}
		fmt.Printf("description: %s\n", desc)
	}
	fmt.Println("---")
}

// truncate cuts on runes, not bytes, so a multi-byte description is
// never split mid-character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, sessionID string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printUsage() {
	fmt.Println("bookrec <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  books list|show|authors|categories")
	fmt.Println("  recommend -title <title> [-n 5]")
	fmt.Println("  search -query <text> [-kind author|title|subject]")
	fmt.Println("  stats")
	fmt.Println("  session new")
	fmt.Println("  watch")
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}
