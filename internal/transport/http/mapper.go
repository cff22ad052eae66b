package http

import (
	"github.com/samber/lo"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/proto"
)

func participantsToProto(participants []core.Participant) []proto.Participant {
	return lo.Map(participants, func(p core.Participant, _ int) proto.Participant {
		return proto.Participant{
			Name:       p.Name,
			LastStatus: p.LastHeartbeat.UnixMilli(),
		}
	})
}

func messagesToProto(msgs []core.Message) []proto.Message {
	return lo.Map(msgs, func(m core.Message, _ int) proto.Message {
		return proto.Message{
			From: m.From,
			To:   m.To,
			Text: m.Text,
			Type: string(m.Kind),
			Time: m.Time,
		}
	})
}

func messageFromProto(from string, req proto.PostMessageRequest) core.Message {
	return core.Message{
		From: from,
		To:   req.To,
		Text: req.Text,
		Kind: core.Kind(req.Type),
	}
}
