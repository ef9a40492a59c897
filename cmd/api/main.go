package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/report"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const storeTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	databaseName := getEnv("MONGO_DB", "Bookstore")

	client := mustOpenMongo(mongoURI)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	books := client.Database(databaseName).Collection("books")

	bookService := book.NewService(book.NewMongoRepo(books, storeTimeout))
	bookHandler := book.NewHTTPHandler(bookService)

	reportService := report.NewService(report.NewMongoRepo(books, storeTimeout))
	reportHandler := report.NewHTTPHandler(reportService)

	readyz := func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}

	router := newRouter(bookHandler, reportHandler, readyz)

	rateLimit := httpx.NewRateLimitMiddleware(50, 100)
	corsOrigins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",")

	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(1 << 20)(handler)
	handler = rateLimit.Middleware(handler)
	handler = httpx.CORSMiddleware(corsOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func newRouter(bookHandler *book.HTTPHandler, reportHandler *report.HTTPHandler, readyz http.HandlerFunc) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONSuccess(w, r, map[string]string{"status": "Healthy"}, nil)
	})
	router.HandleFunc("GET /readyz", readyz)

	router.HandleFunc("POST /books", bookHandler.Create)
	router.HandleFunc("GET /books", bookHandler.List)
	router.HandleFunc("GET /books/{id}", bookHandler.Get)
	router.HandleFunc("PUT /books/{id}", bookHandler.Update)
	router.HandleFunc("DELETE /books/{id}", bookHandler.Delete)

	router.HandleFunc("GET /search", bookHandler.Search)
	router.HandleFunc("GET /search/title/{title}", bookHandler.SearchByTitle)
	router.HandleFunc("GET /search/author/{author}", bookHandler.SearchByAuthor)
	router.HandleFunc("GET /search/price", bookHandler.SearchByPrice)

	router.HandleFunc("GET /reports/total_books", reportHandler.TotalBooks)
	router.HandleFunc("GET /reports/top_5_selling", reportHandler.TopSelling)
	router.HandleFunc("GET /reports/top_5_stock_authors", reportHandler.TopStockAuthors)

	// "PUT /{id}/addStock" would conflict with "PUT /books/{id}" in the
	// ServeMux pattern rules, so both stock operations share one pattern.
	router.HandleFunc("PUT /{id}/{action}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("action") {
		case "addStock":
			bookHandler.AddStock(w, r)
		case "addSale":
			bookHandler.AddSale(w, r)
		default:
			http.NotFound(w, r)
		}
	})

	return router
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustOpenMongo(uri string) *mongo.Client {
	ctx := context.Background()
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("cannot create mongo client: %v", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		log.Fatalf("cannot ping store (%s): %v", redactURI(uri), err)
	}
	log.Println("store connection OK")
	return client
}

func redactURI(uri string) string {
	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}
	start += len(marker)
	end := strings.Index(uri[start:], "@")
	if end < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+end:]
}
