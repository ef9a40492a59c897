package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"bookcatalog/internal/book"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	ctx := context.Background()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	databaseName := os.Getenv("MONGO_DB")
	if databaseName == "" {
		databaseName = "Bookstore"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer client.Disconnect(ctx)

	coll := client.Database(databaseName).Collection("books")

	count := 200
	log.Printf("Generating %d books...", count)

	authors := []string{"Jane Doe", "John Smith", "Ada Lovelace", "Alan Turing", "Grace Hopper", "Donald Knuth", "Barbara Liskov", "Edsger Dijkstra"}
	subjects := []string{"Web Backend", "Distributed Systems", "Databases", "Compilers", "Networking", "Algorithms", "Operating Systems", "Cryptography"}

	docs := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		subject := subjects[rand.Intn(len(subjects))]
		docs = append(docs, book.Book{
			Title:       fmt.Sprintf("Introduction to %s, Volume %d", subject, i+1),
			Author:      authors[rand.Intn(len(authors))],
			Description: fmt.Sprintf("A simple introduction to %s.", subject),
			Price:       float64(5+rand.Intn(95)) + 0.99,
			Stock:       rand.Intn(50),
			Sold:        rand.Intn(30),
		})
	}

	log.Println("Inserting books into store...")
	insertCtx, cancelInsert := context.WithTimeout(ctx, 30*time.Second)
	defer cancelInsert()
	res, err := coll.InsertMany(insertCtx, docs)
	if err != nil {
		log.Fatalf("Failed to insert books: %v", err)
	}

	log.Printf("Successfully inserted %d books!", len(res.InsertedIDs))

	total, err := coll.CountDocuments(insertCtx, map[string]interface{}{})
	if err == nil {
		log.Printf("Collection now holds %d books", total)
	}
}
