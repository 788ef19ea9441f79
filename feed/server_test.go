package feed_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/floodfield/feed"
	"github.com/katalvlaran/floodfield/flood"
	"github.com/katalvlaran/floodfield/raster"
)

// lockedBuffer is a log sink shared with server goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// FeedSuite serves a 5×5 flat field with one central source.
type FeedSuite struct {
	suite.Suite
	logs *lockedBuffer
	srv  *httptest.Server
}

func TestFeedSuite(t *testing.T) {
	suite.Run(t, new(FeedSuite))
}

func (s *FeedSuite) SetupTest() {
	s.logs = &lockedBuffer{}
	rows := make([][]float64, 5)
	for r := range rows {
		rows[r] = make([]float64, 5)
	}
	hf, err := raster.FromRows(rows)
	s.Require().NoError(err)
	mask, err := raster.NewSourceMask(5, 5)
	s.Require().NoError(err)
	mask.Set(2, 2, true)

	logger := slog.New(slog.NewTextHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fs, err := feed.NewServer(hf, mask,
		feed.WithServerLogger(logger),
		feed.WithFloodOptions(
			flood.WithMaxFloodHeight(2),
			flood.WithFloodThreshold(2),
			flood.WithSmoothing(0),
		),
	)
	s.Require().NoError(err)
	s.srv = httptest.NewServer(fs.Handler())
}

func (s *FeedSuite) TearDownTest() {
	s.srv.Close()
}

func (s *FeedSuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusSwitchingProtocols, resp.StatusCode)
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))

	return conn
}

func (s *FeedSuite) read(conn *websocket.Conn) feed.Message {
	var msg feed.Message
	s.Require().NoError(conn.ReadJSON(&msg))

	return msg
}

func (s *FeedSuite) TestResultEndpoint() {
	resp, err := http.Get(s.srv.URL + "/result")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/json", resp.Header.Get("Content-Type"))

	var msg feed.Message
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&msg))
	s.Equal(feed.TypeResult, msg.Type)
	s.Equal(5, msg.Rows)
	s.Equal(5, msg.Cols)
	s.Equal(9, msg.FloodedCells)
	s.Len(msg.Flooded, 25)
	s.InDelta(2.0, msg.WaterHeight[12], 1e-9)
	s.Equal(raster.Window{MaxX: 5, MaxY: 5}, msg.Window)
}

func (s *FeedSuite) TestResultEndpoint_MethodNotAllowed() {
	resp, err := http.Post(s.srv.URL+"/result", "application/json", nil)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
}

func (s *FeedSuite) TestWebSocket_PushOnConnect() {
	conn := s.dial()
	defer conn.Close()

	msg := s.read(conn)
	s.Equal(feed.TypeResult, msg.Type)
	s.Equal(9, msg.FloodedCells)
}

func (s *FeedSuite) TestWebSocket_Params() {
	conn := s.dial()
	defer conn.Close()
	_ = s.read(conn)

	threshold := 3.0
	s.Require().NoError(conn.WriteJSON(feed.Params{FloodThreshold: &threshold}))
	msg := s.read(conn)
	s.Equal(feed.TypeResult, msg.Type)
	// Ring 2 sits at distance 2 < 3: excess 2·(1/3)² ≈ 0.22 clears epsilon.
	s.Equal(25, msg.FloodedCells)
}

func (s *FeedSuite) TestWebSocket_InvalidParams() {
	conn := s.dial()
	defer conn.Close()
	_ = s.read(conn)

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"floodThreshold": -1}`)))
	msg := s.read(conn)
	s.Equal(feed.TypeError, msg.Type)
	s.Contains(msg.Error, "FloodThreshold")

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	msg = s.read(conn)
	s.Equal(feed.TypeError, msg.Type)
	s.Contains(msg.Error, "malformed params")

	// The connection survives rejected messages.
	s.Require().NoError(conn.WriteJSON(feed.Params{}))
	s.Equal(feed.TypeResult, s.read(conn).Type)
}

func (s *FeedSuite) TestWebSocket_LogsConnection() {
	conn := s.dial()
	_ = s.read(conn)
	s.Require().NoError(conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	s.Eventually(func() bool {
		return strings.Contains(s.logs.String(), "feed: client disconnected")
	}, 2*time.Second, 10*time.Millisecond)
	s.Contains(s.logs.String(), "feed: client connected")
}

func TestNewServer_RejectsBadInput(t *testing.T) {
	hf, err := raster.FromRows([][]float64{{0, 0}, {0, 0}})
	require.NoError(t, err)
	mask, err := raster.NewSourceMask(3, 3)
	require.NoError(t, err)

	_, err = feed.NewServer(hf, mask)
	require.ErrorIs(t, err, flood.ErrShapeMismatch)

	ok, err := raster.NewSourceMask(2, 2)
	require.NoError(t, err)
	_, err = feed.NewServer(hf, ok, feed.WithFloodOptions(flood.WithFloodThreshold(0)))
	require.ErrorIs(t, err, flood.ErrConfiguration)
}
