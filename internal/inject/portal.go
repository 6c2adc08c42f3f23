package inject

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	remoteDesktop   = "org.freedesktop.portal.RemoteDesktop"
	portalRequest   = "org.freedesktop.portal.Request"
	portalSession   = "org.freedesktop.portal.Session"
	deviceKeyboard  = uint32(1)
	keyStateRelease = uint32(0)
	keyStatePress   = uint32(1)
)

var tokenSeq atomic.Uint64

// Portal types through the xdg-desktop-portal RemoteDesktop interface.
// The compositor asks the user to allow keyboard control the first time.
type Portal struct {
	connect func() (*dbus.Conn, error)
}

// NewPortal returns a portal backend on the session bus.
func NewPortal() *Portal {
	return &Portal{connect: func() (*dbus.Conn, error) { return dbus.ConnectSessionBus() }}
}

// Name implements Injector.
func (p *Portal) Name() string { return "portal" }

// Inject implements Injector.
func (p *Portal) Inject(ctx context.Context, text string) error {
	conn, err := p.connect()
	if err != nil {
		return unavailable(p.Name(), err.Error())
	}
	defer conn.Close()

	s := &portalSessionCall{conn: conn, obj: conn.Object(portalDest, portalPath)}

	session, err := s.create(ctx)
	if err != nil {
		return err
	}
	defer conn.Object(portalDest, session).Call(portalSession+".Close", 0)

	if err := s.selectKeyboard(ctx, session); err != nil {
		return err
	}
	if err := s.start(ctx, session); err != nil {
		return err
	}
	for _, r := range text {
		sym := keysym(r)
		for _, state := range []uint32{keyStatePress, keyStateRelease} {
			call := s.obj.CallWithContext(ctx, remoteDesktop+".NotifyKeyboardKeysym", 0,
				session, map[string]dbus.Variant{}, sym, state)
			if call.Err != nil {
				return rejected(p.Name(), call.Err.Error())
			}
		}
	}
	return nil
}

type portalSessionCall struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

func (s *portalSessionCall) create(ctx context.Context) (dbus.ObjectPath, error) {
	results, err := s.request(ctx, "CreateSession", func(token string) []any {
		return []any{map[string]dbus.Variant{
			"handle_token":         dbus.MakeVariant(token),
			"session_handle_token": dbus.MakeVariant(nextToken()),
		}}
	})
	if err != nil {
		return "", err
	}
	v, ok := results["session_handle"]
	if !ok {
		return "", rejected("portal", "CreateSession returned no session handle")
	}
	switch h := v.Value().(type) {
	case string:
		return dbus.ObjectPath(h), nil
	case dbus.ObjectPath:
		return h, nil
	default:
		return "", rejected("portal", fmt.Sprintf("unexpected session handle %T", h))
	}
}

func (s *portalSessionCall) selectKeyboard(ctx context.Context, session dbus.ObjectPath) error {
	_, err := s.request(ctx, "SelectDevices", func(token string) []any {
		return []any{session, map[string]dbus.Variant{
			"handle_token": dbus.MakeVariant(token),
			"types":        dbus.MakeVariant(deviceKeyboard),
		}}
	})
	return err
}

func (s *portalSessionCall) start(ctx context.Context, session dbus.ObjectPath) error {
	_, err := s.request(ctx, "Start", func(token string) []any {
		return []any{session, "", map[string]dbus.Variant{
			"handle_token": dbus.MakeVariant(token),
		}}
	})
	return err
}

// request calls a portal method and waits for the Response signal on the
// request object it creates.
func (s *portalSessionCall) request(ctx context.Context, method string, args func(token string) []any) (map[string]dbus.Variant, error) {
	token := nextToken()
	path := requestPath(s.conn.Names()[0], token)

	match := []dbus.MatchOption{
		dbus.WithMatchObjectPath(path),
		dbus.WithMatchInterface(portalRequest),
		dbus.WithMatchMember("Response"),
	}
	if err := s.conn.AddMatchSignal(match...); err != nil {
		return nil, unavailable("portal", err.Error())
	}
	defer s.conn.RemoveMatchSignal(match...)

	signals := make(chan *dbus.Signal, 4)
	s.conn.Signal(signals)
	defer s.conn.RemoveSignal(signals)

	var handle dbus.ObjectPath
	if err := s.obj.CallWithContext(ctx, remoteDesktop+"."+method, 0, args(token)...).Store(&handle); err != nil {
		return nil, unavailable("portal", fmt.Sprintf("%s: %v", method, err))
	}

	for {
		select {
		case <-ctx.Done():
			return nil, rejected("portal", fmt.Sprintf("%s: %v", method, ctx.Err()))
		case sig := <-signals:
			if sig == nil || sig.Path != handle || len(sig.Body) < 2 {
				continue
			}
			code, _ := sig.Body[0].(uint32)
			results, _ := sig.Body[1].(map[string]dbus.Variant)
			if code != 0 {
				return nil, rejected("portal", fmt.Sprintf("%s: response %d", method, code))
			}
			return results, nil
		}
	}
}

func nextToken() string {
	return fmt.Sprintf("quemoji%d", tokenSeq.Add(1))
}

// requestPath is where the portal exports the Request object for a call
// made by the connection with unique name sender.
func requestPath(sender, token string) dbus.ObjectPath {
	s := strings.ReplaceAll(strings.TrimPrefix(sender, ":"), ".", "_")
	return dbus.ObjectPath("/org/freedesktop/portal/desktop/request/" + s + "/" + token)
}

// keysym maps a rune to an X keysym. Latin-1 maps directly; everything
// else uses the Unicode keysym range.
func keysym(r rune) int32 {
	if (r >= 0x20 && r <= 0x7e) || (r >= 0xa0 && r <= 0xff) {
		return int32(r)
	}
	return 0x01000000 | int32(r)
}
