package transport

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"scrabblesrv/internal/coordinator"
	"scrabblesrv/internal/model"
)

// inboundEnvelope is the wire shape of a client-to-server message; Payload
// is decoded a second time into the command-specific struct once Type is
// known.
type inboundEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createRoomPayload struct {
	Nickname   string `json:"nickname"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
	PlayerID   string `json:"playerId,omitempty"`
}

type joinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Nickname string `json:"nickname"`
	PlayerID string `json:"playerId,omitempty"`
}

type reconnectPayload struct {
	PlayerID   string `json:"playerId"`
	LastRoomID string `json:"lastRoomId"`
}

type toggleReadyPayload struct {
	RoomID   string `json:"roomId"`
	Ready    bool   `json:"ready"`
	PlayerID string `json:"playerId,omitempty"`
}

type startGamePayload struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId,omitempty"`
}

type playMovePayload struct {
	RoomID            string            `json:"roomId"`
	Action            model.Action      `json:"action"`
	Placements        []model.Placement `json:"placements,omitempty"`
	TileIDsToExchange []string          `json:"tileIdsToExchange,omitempty"`
}

type leaveRoomPayload struct {
	RoomID string `json:"roomId"`
}

// dispatchInbound decodes one raw client message and routes it to the
// matching Dispatcher method. Decode failures and unknown types produce an
// error envelope back to the sender rather than closing the connection.
func dispatchInbound(conn coordinator.Connection, dispatcher Dispatcher, raw []byte) {
	var env inboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		sendBadPayload(conn, "malformed envelope")
		return
	}

	switch env.Type {
	case "createRoom":
		var p createRoomPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			sendBadPayload(conn, "malformed createRoom payload")
			return
		}
		dispatcher.CreateRoom(conn, p.Nickname, p.MaxPlayers, p.PlayerID)

	case "joinRoom":
		var p joinRoomPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			sendBadPayload(conn, "malformed joinRoom payload")
			return
		}
		dispatcher.JoinRoom(conn, p.RoomID, p.Nickname, p.PlayerID)

	case "reconnect":
		var p reconnectPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			sendBadPayload(conn, "malformed reconnect payload")
			return
		}
		dispatcher.Reconnect(conn, p.PlayerID, p.LastRoomID)

	case "toggleReady":
		var p toggleReadyPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			sendBadPayload(conn, "malformed toggleReady payload")
			return
		}
		dispatcher.ToggleReady(conn, p.Ready)

	case "startGame":
		var p startGamePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			sendBadPayload(conn, "malformed startGame payload")
			return
		}
		dispatcher.StartGame(conn)

	case "playMove":
		var p playMovePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			sendBadPayload(conn, "malformed playMove payload")
			return
		}
		dispatcher.PlayMove(conn, p.Action, p.Placements, p.TileIDsToExchange)

	case "leaveRoom":
		dispatcher.LeaveRoom(conn)

	default:
		conn.Send(coordinator.Envelope{Type: "error", Payload: map[string]string{
			"code":    string(model.ErrUnknownType),
			"message": "unrecognized message type: " + env.Type,
		}})
		log.Debug().Str("type", env.Type).Msg("unknown inbound message type")
	}
}

func sendBadPayload(conn coordinator.Connection, message string) {
	conn.Send(coordinator.Envelope{Type: "error", Payload: map[string]string{
		"code":    string(model.ErrBadPayload),
		"message": message,
	}})
}
