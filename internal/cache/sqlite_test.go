package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/analysis"
	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/log"
	"git.lost.host/meutraa/handrhythm/internal/testdata"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "analysis.db"))
	s.Log = log.Discard()
	if err := s.Init(); nil != err {
		t.Fatal(err)
	}
	t.Cleanup(s.Deinit)
	return s
}

func TestCompactBeats(t *testing.T) {
	beats := []game.Beat{{Time: time.Second, Intensity: 0.5}, {Time: 2 * time.Second, Intensity: 1}}
	c := compactBeats(beats)
	if len(c.Times) != 2 || c.Times[1] != 2*time.Second || c.Intensities[0] != 0.5 {
		t.Fatalf("compact = %+v", c)
	}
	out, err := uncompactBeats(c)
	if nil != err || len(out) != 2 || out[1] != beats[1] {
		t.Fatalf("uncompact = %+v, %v", out, err)
	}
	if _, err := uncompactBeats(BeatsCompact{Times: []time.Duration{1}}); nil == err {
		t.Fatal("mismatched arrays accepted")
	}
}

func TestSaveLoad(t *testing.T) {
	s := openStore(t)
	beats, err := testdata.GetBeats()
	if nil != err {
		t.Fatal(err)
	}
	in := &analysis.Result{BPM: 128, Beats: beats, Duration: 9 * time.Second, Synthetic: true}

	if r, err := s.Load("abc"); nil != err || nil != r {
		t.Fatalf("empty cache returned %+v, %v", r, err)
	}
	if err := s.Save("abc", in); nil != err {
		t.Fatal(err)
	}
	out, err := s.Load("abc")
	if nil != err {
		t.Fatal(err)
	}
	if out.BPM != 128 || out.Duration != 9*time.Second || !out.Synthetic || len(out.Beats) != len(beats) {
		t.Fatalf("loaded %+v", out)
	}
	for i := range beats {
		if out.Beats[i] != beats[i] {
			t.Fatalf("beat %d = %+v, want %+v", i, out.Beats[i], beats[i])
		}
	}

	in.BPM = 90
	if err := s.Save("abc", in); nil != err {
		t.Fatal(err)
	}
	if out, _ := s.Load("abc"); out.BPM != 90 {
		t.Fatalf("resave kept bpm %d", out.BPM)
	}
}

func TestClosedStore(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "x.db"))
	if err := s.Save("k", &analysis.Result{}); nil == err {
		t.Fatal("save on a closed store")
	}
	if _, err := s.Load("k"); nil == err {
		t.Fatal("load on a closed store")
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "b.wav")
	os.WriteFile(a, []byte("one"), 0o644)
	os.WriteFile(b, []byte("two"), 0o644)

	ha, err := HashFile(a)
	if nil != err {
		t.Fatal(err)
	}
	hb, _ := HashFile(b)
	again, _ := HashFile(a)
	if ha == hb || ha != again || len(ha) != 44 {
		t.Fatalf("hashes %q %q %q", ha, hb, again)
	}
	if _, err := HashFile(filepath.Join(dir, "none")); nil == err {
		t.Fatal("hashed a missing file")
	}
}
