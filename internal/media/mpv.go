package media

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mpv invocation constants
const (
	MPVCommand        = "mpv"
	MPVSocketPrefix   = "syncplayer-"
	MPVSocketSuffix   = ".sock"
	MPVConnectTimeout = 5 * time.Second
	MPVConnectRetry   = 50 * time.Millisecond
	MPVVolumeScale    = 100.0
)

// Observed mpv property names
const (
	MPVPropPause        = "pause"
	MPVPropPlaybackTime = "playback-time"
	MPVPropDuration     = "duration"
	MPVPropVolume       = "volume"
	MPVPropMute         = "mute"
	MPVPropAudioID      = "aid"
)

// MPVFactory builds elements backed by external mpv processes controlled over
// their JSON IPC socket. One process per element; audio elements run with
// video output disabled.
type MPVFactory struct {
	registry *Registry
	binary   string
}

// NewMPVFactory creates a factory attached to the given registry
func NewMPVFactory(registry *Registry) *MPVFactory {
	return &MPVFactory{
		registry: registry,
		binary:   MPVCommand,
	}
}

// SetBinary overrides the mpv executable path
func (f *MPVFactory) SetBinary(path string) {
	if path != "" {
		f.binary = path
	}
}

// Available checks if the mpv binary exists in PATH
func (f *MPVFactory) Available() bool {
	_, err := exec.LookPath(f.binary)
	return err == nil
}

// NewVideoElement creates an mpv-backed primary element
func (f *MPVFactory) NewVideoElement(url string) (MediaElement, error) {
	return f.newElement(url, KindVideo)
}

// NewAudioElement creates an mpv-backed secondary element
func (f *MPVFactory) NewAudioElement(url string) (MediaElement, error) {
	return f.newElement(url, KindAudio)
}

func (f *MPVFactory) newElement(url string, kind ElementKind) (MediaElement, error) {
	if url == "" {
		return nil, fmt.Errorf("empty source URL for %s element", kind)
	}

	socket := filepath.Join(os.TempDir(), MPVSocketPrefix+uuid.NewString()+MPVSocketSuffix)

	args := []string{
		"--idle=yes",
		"--pause",
		"--no-terminal",
		"--input-ipc-server=" + socket,
	}
	if kind == KindAudio {
		// Secondary elements stay off screen
		args = append(args, "--no-video", "--force-window=no")
	}
	args = append(args, url)

	cmd := exec.Command(f.binary, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %v", err)
	}

	conn, err := dialWithRetry(socket, MPVConnectTimeout)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("failed to connect to mpv IPC socket: %v", err)
	}

	el := &MPVElement{
		registry:  f.registry,
		kind:      kind,
		cmd:       cmd,
		conn:      conn,
		socket:    socket,
		src:       url,
		paused:    true,
		duration:  math.NaN(),
		volume:    DefaultClockVolume,
		listeners: make(map[int]listener),
		pending:   make(map[int64]chan mpvResponse),
	}
	f.registry.Add(el, kind)

	go el.readLoop()
	el.observeProperties()

	return el, nil
}

// dialWithRetry polls the IPC socket until mpv creates it
func dialWithRetry(socket string, timeout time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.Dial("unix", socket)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(MPVConnectRetry)
	}
}

type mpvResponse struct {
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	RequestID int64           `json:"request_id"`
}

type mpvEvent struct {
	Event     string          `json:"event"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	RequestID int64           `json:"request_id"`
	Error     string          `json:"error"`
}

// MPVElement is a media element backed by one mpv process
type MPVElement struct {
	registry *Registry
	kind     ElementKind
	cmd      *exec.Cmd
	conn     net.Conn
	socket   string

	mu        sync.Mutex
	src       string
	paused    bool
	position  float64
	duration  float64
	volume    float64
	muted     bool
	closed    bool
	listeners map[int]listener
	nextID    int
	pending   map[int64]chan mpvResponse
	nextReqID int64
}

// observeProperties subscribes to the mpv properties the element mirrors
func (e *MPVElement) observeProperties() {
	for i, prop := range []string{MPVPropPause, MPVPropPlaybackTime, MPVPropDuration, MPVPropVolume, MPVPropMute} {
		if _, err := e.command("observe_property", int64(i+1), prop); err != nil {
			log.Printf("mpv: failed to observe %s: %v", prop, err)
		}
	}
}

// command sends one IPC command and waits for its response
func (e *MPVElement) command(args ...any) (json.RawMessage, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, fmt.Errorf("element is closed")
	}
	e.nextReqID++
	reqID := e.nextReqID
	ch := make(chan mpvResponse, 1)
	e.pending[reqID] = ch
	e.mu.Unlock()

	payload, err := json.Marshal(map[string]any{
		"command":    args,
		"request_id": reqID,
	})
	if err != nil {
		return nil, err
	}
	payload = append(payload, '\n')

	if _, err := e.conn.Write(payload); err != nil {
		e.mu.Lock()
		delete(e.pending, reqID)
		e.mu.Unlock()
		return nil, fmt.Errorf("mpv IPC write failed: %v", err)
	}

	select {
	case resp := <-ch:
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv command failed: %s", resp.Error)
		}
		return resp.Data, nil
	case <-time.After(MPVConnectTimeout):
		e.mu.Lock()
		delete(e.pending, reqID)
		e.mu.Unlock()
		return nil, fmt.Errorf("mpv command timed out")
	}
}

// readLoop consumes IPC responses and property-change events
func (e *MPVElement) readLoop() {
	scanner := bufio.NewScanner(e.conn)
	for scanner.Scan() {
		var ev mpvEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}

		if ev.Event == "" && ev.RequestID != 0 {
			e.mu.Lock()
			ch, ok := e.pending[ev.RequestID]
			if ok {
				delete(e.pending, ev.RequestID)
			}
			e.mu.Unlock()
			if ok {
				ch <- mpvResponse{Error: ev.Error, Data: ev.Data, RequestID: ev.RequestID}
			}
			continue
		}

		switch ev.Event {
		case "property-change":
			e.handlePropertyChange(ev)
		case "seek":
			e.emit(EventSeeked)
		case "end-file":
			e.emit(EventEnded)
		}
	}
}

// handlePropertyChange mirrors one observed property into local state
func (e *MPVElement) handlePropertyChange(ev mpvEvent) {
	switch ev.Name {
	case MPVPropPause:
		var paused bool
		if json.Unmarshal(ev.Data, &paused) != nil {
			return
		}
		e.mu.Lock()
		changed := e.paused != paused
		e.paused = paused
		e.mu.Unlock()
		if changed {
			if paused {
				e.emit(EventPause)
			} else {
				e.emit(EventPlay)
			}
		}
	case MPVPropPlaybackTime:
		var pos float64
		if json.Unmarshal(ev.Data, &pos) == nil {
			e.mu.Lock()
			e.position = pos
			e.mu.Unlock()
		}
	case MPVPropDuration:
		var dur float64
		if json.Unmarshal(ev.Data, &dur) == nil {
			e.mu.Lock()
			e.duration = dur
			e.mu.Unlock()
			e.emit(EventLoadedMetadata)
		}
	case MPVPropVolume:
		var vol float64
		if json.Unmarshal(ev.Data, &vol) == nil {
			e.mu.Lock()
			e.volume = vol / MPVVolumeScale
			e.mu.Unlock()
			e.emit(EventVolumeChange)
		}
	case MPVPropMute:
		var muted bool
		if json.Unmarshal(ev.Data, &muted) == nil {
			e.mu.Lock()
			e.muted = muted
			e.mu.Unlock()
			e.emit(EventVolumeChange)
		}
	}
}

// Play requests playback by clearing the pause property
func (e *MPVElement) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := e.command("set_property", MPVPropPause, false)
	return err
}

// Pause halts playback
func (e *MPVElement) Pause() {
	if _, err := e.command("set_property", MPVPropPause, true); err != nil {
		log.Printf("mpv: pause failed: %v", err)
	}
}

// Paused reports whether the element is currently paused
func (e *MPVElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// CurrentTime returns the last observed playback position
func (e *MPVElement) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// SetCurrentTime moves the playback position
func (e *MPVElement) SetCurrentTime(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if _, err := e.command("set_property", MPVPropPlaybackTime, seconds); err != nil {
		log.Printf("mpv: seek failed: %v", err)
		return
	}
	e.mu.Lock()
	e.position = seconds
	e.mu.Unlock()
}

// Duration returns the source duration, or NaN before metadata is known
func (e *MPVElement) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// Volume returns the volume in the range [0,1]
func (e *MPVElement) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetVolume sets the volume in the range [0,1]
func (e *MPVElement) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	if _, err := e.command("set_property", MPVPropVolume, volume*MPVVolumeScale); err != nil {
		log.Printf("mpv: set volume failed: %v", err)
	}
}

// Muted reports the mute flag
func (e *MPVElement) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// SetMuted sets the mute flag
func (e *MPVElement) SetMuted(muted bool) {
	if _, err := e.command("set_property", MPVPropMute, muted); err != nil {
		log.Printf("mpv: set mute failed: %v", err)
	}
}

// SuppressAudio disables mpv's own audio track selection so the element
// renders video only; the mirrored volume and mute state are untouched
func (e *MPVElement) SuppressAudio(suppress bool) {
	value := "auto"
	if suppress {
		value = "no"
	}
	if _, err := e.command("set_property", MPVPropAudioID, value); err != nil {
		log.Printf("mpv: audio suppression failed: %v", err)
	}
}

// Source returns the current stream URL
func (e *MPVElement) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

// SetSource swaps the stream URL, preserving the pause state
func (e *MPVElement) SetSource(url string) {
	if _, err := e.command("loadfile", url); err != nil {
		log.Printf("mpv: loadfile failed: %v", err)
		return
	}
	e.mu.Lock()
	e.src = url
	e.position = 0
	e.duration = math.NaN()
	e.mu.Unlock()
}

// Subscribe registers a listener and returns its unsubscribe function
func (e *MPVElement) Subscribe(event EventType, fn func()) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = listener{event: event, fn: fn}
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// Close terminates the mpv process and removes the element. Idempotent.
func (e *MPVElement) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	// Best effort: ask mpv to quit, then make sure the process is gone
	payload := []byte(`{"command":["quit"]}` + "\n")
	_, _ = e.conn.Write(payload)
	_ = e.conn.Close()
	_ = e.cmd.Process.Kill()
	_ = e.cmd.Wait()
	_ = os.Remove(e.socket)

	e.registry.Remove(e)
	return nil
}

// emit calls all listeners registered for the event, outside the lock
func (e *MPVElement) emit(event EventType) {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.listeners))
	for _, l := range e.listeners {
		if l.event == event {
			fns = append(fns, l.fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
