package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/proto"
)

var errMissingUser = errors.New("--user is required")

func newJoinCommand(opts *options) *cobra.Command {
	var keepAlive time.Duration

	cmd := &cobra.Command{
		Use:   "join NAME",
		Short: "Join the room, optionally sending heartbeats until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.user = args[0]
			c := opts.client()
			if err := c.Join(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "joined as %s\n", args[0])

			if keepAlive <= 0 {
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.KeepAlive(ctx, keepAlive)
		},
	}
	cmd.Flags().DurationVar(&keepAlive, "keep-alive", 0, "send a heartbeat at this interval until interrupted")
	return cmd
}

func newWhoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "who",
		Short: "List present participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			participants, err := opts.client().Participants(cmd.Context())
			if err != nil {
				return err
			}
			renderParticipants(cmd.OutOrStdout(), participants)
			return nil
		},
	}
}

func newSendCommand(opts *options) *cobra.Command {
	var (
		to      string
		private bool
	)

	cmd := &cobra.Command{
		Use:   "send TEXT...",
		Short: "Send a message to the room or to one participant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireUser(); err != nil {
				return err
			}
			kind := core.KindMessage
			if private {
				kind = core.KindPrivateMessage
			}
			return opts.client().Send(cmd.Context(), proto.PostMessageRequest{
				To:   to,
				Text: strings.Join(args, " "),
				Type: string(kind),
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", core.BroadcastTarget, "recipient name")
	cmd.Flags().BoolVar(&private, "private", false, "send as a private message")
	return cmd
}

func newHistoryCommand(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show messages visible to the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.requireUser(); err != nil {
				return err
			}
			msgs, err := opts.client().Messages(cmd.Context(), limit)
			if err != nil {
				return err
			}
			renderMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent N messages")
	return cmd
}

func newHeartbeatCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat",
		Short: "Refresh the user's presence once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.requireUser(); err != nil {
				return err
			}
			return opts.client().Heartbeat(cmd.Context())
		},
	}
}
