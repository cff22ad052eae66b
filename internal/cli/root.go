// Package cli implements the presencechat command line.
package cli

import (
	"io"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/presencechat/internal/client"
)

const defaultServerURL = "http://localhost:5000"

type options struct {
	server  string
	user    string
	noColor bool
}

// NewRootCommand builds the presencechat command tree.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "presencechat",
		Short:         "Presence-aware chat relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.Enable = false
			}
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", defaultServerURL, "server base URL")
	flags.StringVarP(&opts.user, "user", "u", "", "participant name sent in the From header")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newServeCommand(),
		newJoinCommand(opts),
		newWhoCommand(opts),
		newSendCommand(opts),
		newHistoryCommand(opts),
		newHeartbeatCommand(opts),
	)
	return root
}

func (o *options) client() *client.Client {
	c := client.New(o.server)
	c.SetUser(o.user)
	return c
}

func (o *options) requireUser() error {
	if o.user == "" {
		return errMissingUser
	}
	return nil
}
