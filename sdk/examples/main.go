package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dangerclosesec/geneql/sdk/client"
)

const (
	// Change these values to match your environment
	serviceURL = "http://localhost:8080"
)

func main() {
	// Initialize the client
	config := &client.Config{
		BaseURL: serviceURL,
		Timeout: 10 * time.Second,
		Token:   os.Getenv("GENEQL_TOKEN"),
	}
	c := client.NewClient(config)

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Run the example
	if err := runExample(ctx, c); err != nil {
		log.Fatalf("Error running example: %v", err)
	}
}

func runExample(ctx context.Context, c *client.Client) error {
	fmt.Println("Running GeneQL SDK example...")

	health, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("service unavailable: %w", err)
	}
	fmt.Printf("Service status: %s\n", health.Status)

	fmt.Println("\n1. Looking up users...")
	res, err := c.Query(ctx, "GET User WHERE username = 'alice'")
	if err != nil {
		return fmt.Errorf("failed to query users: %w", err)
	}
	users, err := res.Records()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return fmt.Errorf("user alice not found; load a seed into geneqld first")
	}
	userID := fmt.Sprint(users[0]["id"])
	fmt.Printf("Found alice with id %s\n", userID)

	edge := client.EdgeRequest{UserID: userID, ResourceID: "doc1", Permission: "read"}

	fmt.Println("\n2. Granting read on doc1...")
	if err := c.Grant(ctx, edge); err != nil {
		return err
	}

	allowed, err := c.Check(ctx, edge)
	if err != nil {
		return err
	}
	fmt.Printf("alice can read doc1: %v\n", allowed)

	fmt.Println("\n3. Revoking read on doc1...")
	if err := c.Revoke(ctx, edge); err != nil {
		return err
	}

	allowed, err = c.Check(ctx, edge)
	if err != nil {
		return err
	}
	fmt.Printf("alice can read doc1: %v\n", allowed)

	return nil
}
