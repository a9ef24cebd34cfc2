package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/humanbelnik/kinoswap/matchroom/internal/client"
	ws_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/ws/room"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
)

func baseURL() string {
	env := os.Getenv("ENV")
	switch env {
	case "CI":
		return "http://matchroom-app:8080/api/v1"
	}
	return "http://localhost:8080/api/v1"
}

func main() {
	fmt.Println("Starting E2E tests for Matchroom API...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, baseURL()); err != nil {
		fmt.Printf("E2E failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\n All E2E tests passed!")
}

func run(ctx context.Context, url string) error {
	alice := client.New(url)
	bob := client.New(url)

	if !waitForService(ctx, alice) {
		return errors.New("service didn't start in time")
	}

	fmt.Println("\n Step 1: Creating room...")
	room, err := alice.CreateRoom(ctx, "Comedy")
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	fmt.Printf("Room created. Code: %s\n", room.Code)

	ready := make(chan struct{})
	matched := make(chan model.Event, 1)
	go func() {
		_ = alice.Stream(ctx, room.ID, func(msg ws_room.Message) {
			switch {
			case msg.Type == ws_room.MessageSnapshot:
				select {
				case <-ready:
				default:
					close(ready)
				}
			case msg.Event.Type == model.EventMatchFound:
				matched <- *msg.Event
			}
		})
	}()
	select {
	case <-ready:
	case <-ctx.Done():
		return fmt.Errorf("no snapshot: %w", ctx.Err())
	}

	fmt.Println("\n Step 2: Joining room...")
	if _, err := bob.JoinRoom(ctx, room.Code); err != nil {
		return fmt.Errorf("join room: %w", err)
	}

	fmt.Println("\n Step 3: Swiping...")
	movie := room.Deck[0]
	for _, c := range []*client.Client{alice, bob} {
		if _, err := c.Swipe(ctx, room.ID, movie, "LIKE"); err != nil {
			return fmt.Errorf("swipe: %w", err)
		}
	}

	fmt.Println("\n Step 4: Waiting for match...")
	select {
	case e := <-matched:
		if string(e.Payload.MovieID) != movie {
			return fmt.Errorf("matched %s, want %s", e.Payload.MovieID, movie)
		}
	case <-ctx.Done():
		return fmt.Errorf("no match event: %w", ctx.Err())
	}

	matches, err := bob.Matches(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) != 1 {
		return fmt.Errorf("got %d matches, want 1", len(matches))
	}

	fmt.Println("\n Step 5: Leaving room...")
	if _, err := alice.Leave(ctx, room.ID); err != nil {
		return fmt.Errorf("leave: %w", err)
	}
	return nil
}

func waitForService(ctx context.Context, c *client.Client) bool {
	fmt.Println(" Waiting for service to be ready...")

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		if _, err := c.Genres(ctx); err == nil {
			fmt.Println(" Service is ready!")
			return true
		}

		if i < maxRetries-1 {
			fmt.Printf(" Service not ready yet (attempt %d/%d)...\n", i+1, maxRetries)
			time.Sleep(2 * time.Second)
		}
	}
	return false
}
