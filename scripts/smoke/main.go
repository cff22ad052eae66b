package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vovakirdan/presencechat/internal/client"
	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "http://localhost:5000", "server base URL")
	user := flag.String("user", fmt.Sprintf("tester-%d", time.Now().Unix()), "participant name to join with")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.New(*addr)
	c.SetUser(*user)

	if err := c.Join(ctx, *user); err != nil {
		return fmt.Errorf("join: %w", err)
	}
	if err := c.Heartbeat(ctx); err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	if err := c.Send(ctx, proto.PostMessageRequest{To: core.BroadcastTarget, Text: *text, Type: string(core.KindMessage)}); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	participants, err := c.Participants(ctx)
	if err != nil {
		return fmt.Errorf("participants: %w", err)
	}
	fmt.Printf("Participants: %d\n", len(participants))

	msgs, err := c.Messages(ctx, 2)
	if err != nil {
		return fmt.Errorf("messages: %w", err)
	}
	for _, m := range msgs {
		fmt.Printf("Message: type=%s from=%s to=%s text=%q time=%s\n", m.Type, m.From, m.To, m.Text, m.Time)
	}

	if len(msgs) == 0 || msgs[len(msgs)-1].Text != *text {
		return fmt.Errorf("sent message not found in history")
	}
	return nil
}
