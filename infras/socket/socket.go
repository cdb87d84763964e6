package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"studio/config"
	"studio/shared/event"
	"studio/shared/logger"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

var (
	ErrEmptyFrame     = errors.New("empty frame")
	ErrUnknownFraming = errors.New("frame is neither an object nor an array")
	ErrMissingName    = errors.New("frame carries no event name")
	ErrUnknownPacket  = errors.New("unknown socket.io packet")
	ErrClosed         = errors.New("server closed the live update channel")
)

const (
	closeGracePeriod = time.Second

	socketIOPathMarker = "socket.io"
	engineIOVersion    = "4"
	engineIOTransport  = "websocket"
)

// Engine.IO packet types.
const (
	engineOpen    = '0'
	engineClose   = '1'
	enginePing    = '2'
	enginePong    = '3'
	engineMessage = '4'
	engineNoop    = '6'
)

// socket.io packet types, carried inside Engine.IO messages.
const (
	socketConnect      = '0'
	socketDisconnect   = '1'
	socketEvent        = '2'
	socketConnectError = '4'
)

type PacketKind int

const (
	PacketIgnored PacketKind = iota
	PacketOpen
	PacketPing
	PacketConnected
	PacketEvent
	PacketDisconnected
)

// Packet is one Engine.IO frame as seen by a socket.io client.
type Packet struct {
	Kind  PacketKind
	Event event.Event
	Err   error
}

type envelope struct {
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
	Payload json.RawMessage `json:"payload"`
}

type socketImpl struct {
	url       string
	socketIO  bool
	reconnect time.Duration
	ping      time.Duration
	dialer    *websocket.Dialer
	connected atomic.Bool
}

// New returns a websocket event source subscribed to the backend origin. A socket path
// containing "socket.io" speaks Engine.IO v4, anything else reads plain JSON frames.
func New(cfg *config.Config) event.Source {
	reconnect := time.Duration(cfg.Live.ReconnectSeconds) * time.Second
	if reconnect <= 0 {
		reconnect = 5 * time.Second
	}

	ping := time.Duration(cfg.Live.PingSeconds) * time.Second
	if ping <= 0 {
		ping = 30 * time.Second
	}

	socketURL, err := URL(cfg.Backend.BaseURL, cfg.Live.SocketPath)
	if err != nil {
		l := logger.Component("socket")
		l.Error().Err(err).Str("base_url", cfg.Backend.BaseURL).Msg("invalid socket url")
	}

	return &socketImpl{
		url:       socketURL,
		socketIO:  IsSocketIO(cfg.Live.SocketPath),
		reconnect: reconnect,
		ping:      ping,
		dialer:    websocket.DefaultDialer,
	}
}

func IsSocketIO(socketPath string) bool {
	return strings.Contains(socketPath, socketIOPathMarker)
}

// URL derives the websocket endpoint from the backend base URL.
func URL(baseURL, socketPath string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base url: %w", err)
	}

	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}

	u.Path = path.Join("/", u.Path, socketPath)

	if IsSocketIO(socketPath) {
		// the socket.io server matches its path with the trailing slash
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}

		u.RawQuery = url.Values{"EIO": {engineIOVersion}, "transport": {engineIOTransport}}.Encode()
	}

	return u.String(), nil
}

// Decode turns one plain text frame into an event. Two framings are accepted:
// {"event": name, "data": payload} and [name, payload].
func Decode(frame []byte) (event.Event, error) {
	trimmed := strings.TrimSpace(string(frame))
	if trimmed == "" {
		return event.Event{}, ErrEmptyFrame
	}

	switch trimmed[0] {
	case '{':
		var env envelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return event.Event{}, fmt.Errorf("failed to decode envelope: %w", err)
		}

		if env.Event == "" {
			return event.Event{}, ErrMissingName
		}

		payload := env.Data
		if len(payload) == 0 {
			payload = env.Payload
		}

		return event.Event{Name: env.Event, Payload: payload}, nil
	case '[':
		var parts []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &parts); err != nil {
			return event.Event{}, fmt.Errorf("failed to decode array frame: %w", err)
		}

		if len(parts) == 0 {
			return event.Event{}, ErrMissingName
		}

		var name string
		if err := json.Unmarshal(parts[0], &name); err != nil || name == "" {
			return event.Event{}, ErrMissingName
		}

		var payload json.RawMessage
		if len(parts) > 1 {
			payload = parts[1]
		}

		return event.Event{Name: name, Payload: payload}, nil
	default:
		return event.Event{}, ErrUnknownFraming
	}
}

// ParsePacket reads one Engine.IO frame. Only the default namespace is understood.
func ParsePacket(frame []byte) (Packet, error) {
	if len(frame) == 0 {
		return Packet{}, ErrEmptyFrame
	}

	switch frame[0] {
	case engineOpen:
		return Packet{Kind: PacketOpen}, nil
	case enginePing:
		return Packet{Kind: PacketPing}, nil
	case enginePong, engineNoop:
		return Packet{Kind: PacketIgnored}, nil
	case engineClose:
		return Packet{Kind: PacketDisconnected, Err: ErrClosed}, nil
	case engineMessage:
	default:
		return Packet{}, ErrUnknownPacket
	}

	body := frame[1:]
	if len(body) == 0 {
		return Packet{}, ErrUnknownPacket
	}

	switch body[0] {
	case socketConnect:
		return Packet{Kind: PacketConnected}, nil
	case socketDisconnect:
		return Packet{Kind: PacketDisconnected, Err: ErrClosed}, nil
	case socketConnectError:
		return Packet{Kind: PacketDisconnected, Err: fmt.Errorf("connect error: %s", body[1:])}, nil
	case socketEvent:
		// an optional ack id sits between the type and the array
		data := strings.TrimLeft(string(body[1:]), "0123456789")
		if !strings.HasPrefix(data, "[") {
			return Packet{}, ErrUnknownFraming
		}

		evt, err := Decode([]byte(data))
		if err != nil {
			return Packet{}, err
		}

		return Packet{Kind: PacketEvent, Event: evt}, nil
	default:
		return Packet{Kind: PacketIgnored}, nil
	}
}

func (s *socketImpl) Connected() bool {
	return s.connected.Load()
}

// Run keeps one subscription open, reconnecting after every disconnect until ctx is done.
// A missing url leaves the source idle.
func (s *socketImpl) Run(ctx context.Context, handler event.Handler) error {
	l := logger.Component("socket")

	if s.url == "" {
		l.Error().Msg("socket url is not configured, live updates unavailable")
		<-ctx.Done()

		return nil
	}

	for {
		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err == nil {
			l.Info().Str("url", s.url).Bool("socket_io", s.socketIO).Msg("connected to live update channel")

			err = s.consume(ctx, conn, handler)
			s.connected.Store(false)
			conn.Close()
		}

		if ctx.Err() != nil {
			l.Info().Msg("live updates stopped")

			return nil
		}

		l.Warn().Err(err).Dur("retry_in", s.reconnect).Msg("live update channel disconnected, reconnecting")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.reconnect):
		}
	}
}

func (s *socketImpl) consume(ctx context.Context, conn *websocket.Conn, handler event.Handler) error {
	errChan := make(chan error, 1)

	if !s.socketIO {
		s.connected.Store(true)
	}

	go func() {
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				errChan <- err

				return
			}

			if err := s.dispatch(ctx, conn, message, handler); err != nil {
				errChan <- err

				return
			}
		}
	}()

	ticker := time.NewTicker(s.ping)
	defer ticker.Stop()

	l := logger.Component("socket")

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.ping)); err != nil {
				l.Warn().Err(err).Msg("failed to send ping")
			}
		case err := <-errChan:
			return err
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))

			return ctx.Err()
		}
	}
}

// dispatch handles one frame. A non nil error ends the connection.
func (s *socketImpl) dispatch(ctx context.Context, conn *websocket.Conn, message []byte, handler event.Handler) error {
	l := logger.Component("socket")

	if !s.socketIO {
		evt, err := Decode(message)
		if err != nil {
			l.Debug().Err(err).Int("bytes", len(message)).Msg("skipping undecodable frame")

			return nil
		}

		handler(ctx, evt)

		return nil
	}

	packet, err := ParsePacket(message)
	if err != nil {
		l.Debug().Err(err).Int("bytes", len(message)).Msg("skipping undecodable packet")

		return nil
	}

	switch packet.Kind {
	case PacketOpen:
		return conn.WriteMessage(websocket.TextMessage, []byte{engineMessage, socketConnect})
	case PacketPing:
		return conn.WriteMessage(websocket.TextMessage, []byte{enginePong})
	case PacketConnected:
		s.connected.Store(true)
		l.Info().Msg("subscribed to live updates")
	case PacketDisconnected:
		return packet.Err
	case PacketEvent:
		handler(ctx, packet.Event)
	}

	return nil
}
