package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// soundBank synthesizes the demo's short feedback tones. No audio assets:
// every sound is a sine burst with an attack/release envelope.
type soundBank struct {
	mute bool
}

func newSoundBank(mute bool) *soundBank {
	sb := &soundBank{mute: mute}
	if sb.mute {
		return sb
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		logger.Warn("audio disabled", "err", err)
		sb.mute = true
	}
	return sb
}

func (sb *soundBank) play(freq float64, dur time.Duration) {
	if sb.mute {
		return
	}
	speaker.Play(newFade(newTone(freq, dur), dur))
}

func (sb *soundBank) playLand() { sb.play(196, 70*time.Millisecond) }

func (sb *soundBank) playClick() { sb.play(659, 50*time.Millisecond) }

func (sb *soundBank) playEvolve() {
	if sb.mute {
		return
	}
	// Rising two-note chime.
	speaker.Play(beep.Seq(
		newFade(newTone(523, 90*time.Millisecond), 90*time.Millisecond),
		newFade(newTone(784, 140*time.Millisecond), 140*time.Millisecond),
	))
}

func (sb *soundBank) playBank() { sb.play(1047, 120*time.Millisecond) }

// tone is a fixed-length sine oscillator.
type tone struct {
	freq     float64
	phase    float64
	position int
	duration int
}

func newTone(freq float64, dur time.Duration) beep.Streamer {
	return &tone{freq: freq, duration: sampleRate.N(dur)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	const gain = 0.25
	for i := range samples {
		if t.position >= t.duration {
			return i, false
		}
		v := math.Sin(2*math.Pi*t.phase) * gain
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade shapes a streamer with a short linear attack and release so tone
// bursts start and stop without clicks.
type fade struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newFade(s beep.Streamer, dur time.Duration) beep.Streamer {
	total := sampleRate.N(dur)
	attack := sampleRate.N(4 * time.Millisecond)
	release := sampleRate.N(25 * time.Millisecond)
	if attack+release > total {
		attack = total / 2
		release = total - attack
	}
	return &fade{streamer: s, attack: attack, release: release, total: total}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case f.position < f.attack:
			vol = float64(f.position) / float64(f.attack)
		case f.position >= f.total-f.release:
			vol = float64(f.total-f.position) / float64(f.release)
		}
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }
