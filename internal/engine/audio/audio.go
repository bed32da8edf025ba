// Package audio plays the scene's looping ambience and one-shot effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// silentGain is the gain used for a zero volume.
const silentGain = -100

// ErrNotInitialized is returned when playback is requested before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Settings are the playback volumes, each from 0 to 1.
type Settings struct {
	Master  float64
	Ambient float64
	Effects float64
}

// DefaultSettings returns the default volumes.
func DefaultSettings() Settings {
	return Settings{Master: 1.0, Ambient: 0.6, Effects: 0.8}
}

// Manager owns the speaker and the ambient track.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	settings    Settings

	ambient     beep.StreamSeekCloser
	ambientCtrl *beep.Ctrl
	ambientVol  *effects.Volume
	ambientName string
}

// New creates a manager with the given volumes. Nothing plays until Init.
func New(s Settings) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		settings: Settings{
			Master:  clamp(s.Master, 0, 1),
			Ambient: clamp(s.Ambient, 0, 1),
			Effects: clamp(s.Effects, 0, 1),
		},
	}
}

// Init opens the speaker. Calling it again is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.initialized = true
	return nil
}

// Close stops everything and releases the ambient track.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopAmbient()
	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// Initialized reports whether the speaker is open.
func (m *Manager) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Settings returns the current volumes.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// SetMasterVolume sets the master volume.
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.Master = clamp(vol, 0, 1)
	m.applyAmbientVolume()
}

// SetAmbientVolume sets the ambient track volume.
func (m *Manager) SetAmbientVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.Ambient = clamp(vol, 0, 1)
	m.applyAmbientVolume()
}

// SetEffectsVolume sets the volume of effects started afterwards.
func (m *Manager) SetEffectsVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.Effects = clamp(vol, 0, 1)
}

// Ambient returns the name of the playing ambient track, or "".
func (m *Manager) Ambient() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ambientName
}

// PlayAmbient replaces the ambient track with WAV data looped forever.
func (m *Manager) PlayAmbient(data []byte, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	src, format, err := Decode(data)
	if err != nil {
		return err
	}
	looped, err := Loop(src)
	if err != nil {
		src.Close()
		return err
	}

	m.stopAmbient()

	m.ambient = src
	m.ambientName = name
	m.ambientCtrl = &beep.Ctrl{Streamer: m.resample(format, looped)}
	m.ambientVol = &effects.Volume{Streamer: m.ambientCtrl, Base: 2}
	m.applyAmbientVolume()

	speaker.Play(m.ambientVol)
	return nil
}

// StopAmbient stops the ambient track.
func (m *Manager) StopAmbient() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAmbient()
}

// PlayEffect plays WAV data once, mixed over the ambient track.
func (m *Manager) PlayEffect(data []byte) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.settings.Master * m.settings.Effects
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}

	src, format, err := Decode(data)
	if err != nil {
		return err
	}
	speaker.Play(beep.Seq(
		&effects.Volume{
			Streamer: m.resample(format, src),
			Base:     2,
			Volume:   volumeToGain(vol),
			Silent:   vol <= 0,
		},
		beep.Callback(func() { src.Close() }),
	))
	return nil
}

func (m *Manager) resample(format beep.Format, s beep.Streamer) beep.Streamer {
	if format.SampleRate == m.sampleRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, m.sampleRate, s)
}

func (m *Manager) stopAmbient() {
	if m.ambientCtrl != nil {
		if m.initialized {
			speaker.Lock()
		}
		m.ambientCtrl.Streamer = nil
		if m.initialized {
			speaker.Unlock()
		}
	}
	if m.ambient != nil {
		m.ambient.Close()
	}
	m.ambient = nil
	m.ambientCtrl = nil
	m.ambientVol = nil
	m.ambientName = ""
}

func (m *Manager) applyAmbientVolume() {
	if m.ambientVol == nil {
		return
	}
	vol := m.settings.Master * m.settings.Ambient
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	m.ambientVol.Silent = vol <= 0
	m.ambientVol.Volume = volumeToGain(vol)
}

// volumeToGain converts a linear 0-1 volume to the exponent of an
// effects.Volume with Base 2.
func volumeToGain(vol float64) float64 {
	if vol <= 0 {
		return silentGain
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Decode parses in-memory WAV data into a seekable stream.
func Decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	s, format, err := wav.Decode(readSeekNopCloser{bytes.NewReader(data)})
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}
	return s, format, nil
}

// readSeekNopCloser keeps the reader seekable so decoded streams can loop.
type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }

// Loop wraps s so it restarts from the beginning whenever it drains.
func Loop(s beep.StreamSeeker) (beep.Streamer, error) {
	if s.Len() == 0 {
		return nil, errors.New("cannot loop an empty stream")
	}
	return &loopStreamer{s: s}, nil
}

type loopStreamer struct {
	s   beep.StreamSeeker
	err error
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		sn, sok := l.s.Stream(samples[n:])
		n += sn
		if !sok || sn == 0 {
			if err := l.s.Seek(0); err != nil {
				l.err = err
				return n, n > 0
			}
		}
	}
	return n, true
}

func (l *loopStreamer) Err() error {
	if l.err != nil {
		return l.err
	}
	return l.s.Err()
}
