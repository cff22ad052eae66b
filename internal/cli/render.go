package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/proto"
)

var (
	statusStyle  = color.New(color.FgDarkGray)
	privateStyle = color.New(color.FgMagenta)
	senderStyle  = color.New(color.OpBold)
)

func renderParticipants(out io.Writer, participants []proto.Participant) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Name", "Last Status"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, p := range participants {
		last := time.UnixMilli(p.LastStatus).Format(core.TimeLayout)
		table.Append([]string{p.Name, last})
	}
	table.Render()
}

func renderMessages(out io.Writer, msgs []proto.Message) {
	for _, m := range msgs {
		fmt.Fprintln(out, formatMessage(m))
	}
}

func formatMessage(m proto.Message) string {
	switch core.Kind(m.Type) {
	case core.KindStatus:
		return statusStyle.Render(fmt.Sprintf("(%s) %s %s", m.Time, m.From, m.Text))
	case core.KindPrivateMessage:
		return privateStyle.Render(fmt.Sprintf("(%s) %s (private) to %s: %s", m.Time, m.From, m.To, m.Text))
	default:
		return fmt.Sprintf("(%s) %s to %s: %s", m.Time, senderStyle.Render(m.From), m.To, m.Text)
	}
}
