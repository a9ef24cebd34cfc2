package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/humanbelnik/kinoswap/matchroom/internal/client"
	http_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/room"
	ws_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/ws/room"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
)

type Console struct {
	api     *client.Client
	scanner *bufio.Scanner
	room    *http_room.RoomDTO
	deck    []http_room.MovieDTO
	next    int
	stop    context.CancelFunc
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

func (c *Console) CreateRoom(ctx context.Context) error {
	genres, err := c.api.Genres(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Жанры: %s\n", strings.Join(genres, ", "))

	genre, ok := c.prompt("Выберите жанр: ")
	if !ok {
		return fmt.Errorf("ошибка чтения ввода")
	}

	room, err := c.api.CreateRoom(ctx, genre)
	if err != nil {
		return err
	}
	fmt.Printf("Комната создана! Код: %s\n", room.Code)
	fmt.Printf("Ваш токен: %s\n", c.api.Token())
	return c.enter(ctx, room)
}

func (c *Console) JoinRoom(ctx context.Context) error {
	code, ok := c.prompt("Введите код комнаты: ")
	if !ok {
		return fmt.Errorf("ошибка чтения ввода")
	}

	room, err := c.api.JoinRoom(ctx, code)
	if err != nil {
		return err
	}
	fmt.Printf("Вы в комнате %s, жанр %s\n", room.Code, room.Genre)
	return c.enter(ctx, room)
}

// Resume finds the room bound to a token from an earlier run.
func (c *Console) Resume(ctx context.Context) error {
	token, ok := c.prompt("Введите токен: ")
	if !ok {
		return fmt.Errorf("ошибка чтения ввода")
	}
	c.api.SetToken(token)

	state, err := c.api.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Комната %s, совпадений: %d\n", state.Room.Code, len(state.Matches))

	history, err := c.api.History(ctx, state.Room.ID)
	if err != nil {
		return err
	}
	if err := c.enter(ctx, state.Room); err != nil {
		return err
	}
	c.next = len(history)
	return nil
}

func (c *Console) enter(ctx context.Context, room http_room.RoomDTO) error {
	deck, err := c.api.Deck(ctx, room.ID)
	if err != nil {
		return err
	}
	c.room, c.deck, c.next = &room, deck, 0

	streamCtx, cancel := context.WithCancel(ctx)
	c.stop = cancel
	go func() {
		if err := c.api.Stream(streamCtx, room.ID, c.onMessage); err != nil {
			fmt.Printf("WebSocket error: %v\n", err)
		}
	}()
	return nil
}

func (c *Console) onMessage(msg ws_room.Message) {
	if msg.Type == ws_room.MessageSnapshot {
		fmt.Printf("Участников: %d, статус: %s\n", len(msg.Snapshot.Room.Participants), msg.Snapshot.Room.Status)
		return
	}

	e := msg.Event
	switch e.Type {
	case model.EventParticipantJoined:
		fmt.Println("Партнёр присоединился, можно начинать!")
	case model.EventMatchFound:
		fmt.Printf("Совпадение! Вы оба хотите посмотреть: %s\n", c.title(string(e.Payload.MovieID)))
	case model.EventRoomClosed:
		fmt.Println("Комната закрыта")
	}
}

func (c *Console) title(movieID string) string {
	for _, m := range c.deck {
		if m.ID == movieID {
			return fmt.Sprintf("%s (%d)", m.Title, m.Year)
		}
	}
	return movieID
}

// Swipe walks the deck in order until the user types q or the deck ends.
func (c *Console) Swipe(ctx context.Context) error {
	if c.room == nil {
		return fmt.Errorf("сначала войдите в комнату")
	}

	for c.next < len(c.deck) {
		m := c.deck[c.next]
		fmt.Printf("\n%s (%d), рейтинг %.1f, %s\n", m.Title, m.Year, m.Rating, strings.Join(m.Genres, ", "))

		answer, ok := c.prompt("Нравится? [y/n/q]: ")
		if !ok || answer == "q" {
			return nil
		}

		decision := "SKIP"
		if answer == "y" {
			decision = "LIKE"
		}
		if _, err := c.api.Swipe(ctx, c.room.ID, m.ID, decision); err != nil {
			return err
		}
		c.next++
	}

	fmt.Println("Колода закончилась")
	return nil
}

func (c *Console) ShowMatches(ctx context.Context) error {
	if c.room == nil {
		return fmt.Errorf("сначала войдите в комнату")
	}

	matches, err := c.api.Matches(ctx, c.room.ID)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("Совпадений пока нет")
	}
	for i, m := range matches {
		fmt.Printf("%d. %s\n", i+1, c.title(m.MovieID))
	}
	return nil
}

func (c *Console) Leave(ctx context.Context) error {
	if c.room == nil {
		return nil
	}
	if _, err := c.api.Leave(ctx, c.room.ID); err != nil {
		return err
	}
	c.Close()
	c.room = nil
	return nil
}

func (c *Console) Close() {
	if c.stop != nil {
		c.stop()
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080/api/v1", "server API base URL")
	flag.Parse()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	console := &Console{api: client.New(*baseURL), scanner: scanner}
	defer console.Close()

	for {
		fmt.Println("\n=== Matchroom Console Client ===")
		fmt.Println("1. Создать комнату")
		fmt.Println("2. Войти в комнату")
		fmt.Println("3. Вернуться в комнату по токену")
		fmt.Println("4. Смотреть фильмы")
		fmt.Println("5. Совпадения")
		fmt.Println("6. Покинуть комнату")
		fmt.Println("0. Выход")
		fmt.Print("Выберите действие: ")

		if !scanner.Scan() {
			break
		}

		var err error
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			err = console.CreateRoom(ctx)
		case "2":
			err = console.JoinRoom(ctx)
		case "3":
			err = console.Resume(ctx)
		case "4":
			err = console.Swipe(ctx)
		case "5":
			err = console.ShowMatches(ctx)
		case "6":
			err = console.Leave(ctx)
		case "0":
			fmt.Println("До свидания!")
			return
		default:
			fmt.Println("Неверный выбор")
		}
		if err != nil {
			fmt.Printf("Ошибка: %v\n", err)
		}
	}
}
