package server

import (
	"net/http"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// handleEventsWS handles GET /api/events/ws: upgrades the connection and
// streams every emitted event to the client as JSON until it disconnects.
func (s *Server) handleEventsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	sub, cancel := s.events.Subscribe()
	defer cancel()

	ctx := r.Context()
	s.log.Info().Msg("Event stream subscriber connected")

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub:
			if !ok {
				return
			}
			if err := wsjson.Write(ctx, conn, event); err != nil {
				s.log.Debug().Err(err).Msg("Event stream subscriber dropped")
				return
			}
		}
	}
}
