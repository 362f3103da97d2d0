package wsinput

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/arvela/motion-bridge/internal/motion"
)

// waitFor polls cond until it returns true or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func TestProbeTracksConnection(t *testing.T) {
	srv := NewServer(4)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	if srv.Probe(0) {
		t.Fatal("probe true before any connection")
	}

	conn := dial(t, "ws"+ts.URL[len("http"):]+"/channel/0")
	waitFor(t, func() bool { return srv.Probe(0) })

	if srv.Probe(1) {
		t.Fatal("probe true on unconnected channel")
	}

	conn.Close(websocket.StatusNormalClosure, "")
	waitFor(t, func() bool { return !srv.Probe(0) })
}

func TestReadDeliversLatestSampleOnce(t *testing.T) {
	srv := NewServer(4)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dial(t, "ws"+ts.URL[len("http"):]+"/channel/2")
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := context.Background()
	body := `{"accel":{"x":1.5,"y":0,"z":-0.25},"timestamp_ms":1000.5}`
	if err := conn.Write(ctx, websocket.MessageText, []byte(body)); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got motion.Sample
	waitFor(t, func() bool {
		s, ok := srv.Read(2)
		if ok {
			got = s
		}
		return ok
	})
	if got.Accel.X != 1.5 || got.Accel.Z != -0.25 {
		t.Fatalf("accel = %+v", got.Accel)
	}
	if got.TimestampMS != 1000.5 {
		t.Fatalf("timestamp = %f", got.TimestampMS)
	}

	// Consumed: no duplicate delivery on the next tick.
	if _, ok := srv.Read(2); ok {
		t.Fatal("sample delivered twice")
	}
}

func TestBadSamplesAreDropped(t *testing.T) {
	srv := NewServer(1)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dial(t, "ws"+ts.URL[len("http"):]+"/channel/0")
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := context.Background()
	if err := conn.Write(ctx, websocket.MessageText, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, []byte(`{"timestamp_ms":7}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got motion.Sample
	waitFor(t, func() bool {
		s, ok := srv.Read(0)
		if ok {
			got = s
		}
		return ok
	})
	if got.TimestampMS != 7 {
		t.Fatalf("timestamp = %f, want the valid sample", got.TimestampMS)
	}
}

func TestUnknownChannelRejected(t *testing.T) {
	srv := NewServer(2)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, _, err := websocket.Dial(ctx, "ws"+ts.URL[len("http"):]+"/channel/9", nil); err == nil {
		t.Fatal("out-of-range channel accepted")
	}
	if _, _, err := websocket.Dial(ctx, "ws"+ts.URL[len("http"):]+"/channel/x", nil); err == nil {
		t.Fatal("non-numeric channel accepted")
	}
}

func TestReadInvalidChannel(t *testing.T) {
	srv := NewServer(2)
	if _, ok := srv.Read(-1); ok {
		t.Fatal("negative channel returned a sample")
	}
	if srv.Probe(5) {
		t.Fatal("out-of-range probe true")
	}
}
