package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"restobot/pkg/log"
	"restobot/pkg/utils"
	websocketPkg "restobot/pkg/websocket"
)

func main() {
	baseURL := flag.String("url", "ws://localhost:3000/api/v1/chat/ws", "chat WebSocket endpoint without the session id")
	sessionID := flag.String("session", "", "session to resume, a new one is created when empty")
	timeout := flag.Duration("timeout", 15*time.Second, "deadline for a single reply")
	verbose := flag.Bool("v", false, "print intent and state after every reply")
	flag.Parse()

	logger := log.NewLogger()

	if *sessionID == "" {
		id, err := utils.New().NewULID()
		if err != nil {
			logger.Fatal(err)
		}
		*sessionID = "cli-" + id
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	client, err := websocketPkg.Dial(ctx, *baseURL, *sessionID)
	cancel()
	if err != nil {
		logger.Fatal(err)
	}
	defer client.Close()

	fmt.Printf("session %s, type /start, /help or /quit\n", client.SessionID())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "/quit" {
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		reply, err := client.Send(ctx, text)
		cancel()
		if err != nil {
			logger.Errorf("Send failed: %v", err)
			continue
		}

		fmt.Println(reply.Reply)
		if *verbose {
			fmt.Printf("  [intent=%s category=%s state=%s focus=%s]\n", reply.Intent, reply.Category, reply.State, reply.FocusDish)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Errorf("Read stdin: %v", err)
	}
}
