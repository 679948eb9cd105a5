package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	apihttp "github.com/astro-web3/volunteer-management/pkg/http"
)

type message struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <email> [server-url]", os.Args[0])
	}

	email := os.Args[1]
	serverURL := "http://localhost:5000"
	if len(os.Args) > 2 {
		serverURL = os.Args[2]
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := apihttp.NewClient(serverURL)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	protected := "/needVolunteer/" + email
	expect(ctx, client, protected, http.StatusUnauthorized)

	var login message
	resp, err := client.Post(ctx, "/jwt",
		apihttp.WithBody(map[string]any{"email": email}),
		apihttp.WithResult(&login),
	)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	if resp.StatusCode() != http.StatusOK || !login.Success {
		log.Fatalf("Login failed: status %d, body %s", resp.StatusCode(), resp.String())
	}
	fmt.Println("✅ Session issued")

	expect(ctx, client, protected, http.StatusOK)
	expect(ctx, client, "/needVolunteer/someone-else@example.com", http.StatusForbidden)

	resp, err = client.Get(ctx, "/logout")
	if err != nil {
		log.Fatalf("Logout failed: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Fatalf("Logout failed: status %d", resp.StatusCode())
	}
	fmt.Println("✅ Session cleared")

	expect(ctx, client, protected, http.StatusUnauthorized)
	fmt.Println("\nAll checks passed")
}

func expect(ctx context.Context, client *apihttp.Client, path string, want int) {
	resp, err := client.Get(ctx, path)
	if err != nil {
		log.Fatalf("GET %s: %v", path, err)
	}
	if resp.StatusCode() != want {
		log.Fatalf("❌ GET %s: expected %d, got %d (%s)", path, want, resp.StatusCode(), resp.String())
	}
	fmt.Printf("✅ GET %s -> %d\n", path, want)
}
