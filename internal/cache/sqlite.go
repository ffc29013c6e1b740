package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"time"

	"git.lost.host/meutraa/handrhythm/internal/analysis"
	"git.lost.host/meutraa/handrhythm/internal/game"
	"git.lost.host/meutraa/handrhythm/internal/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type SQLiteStore struct {
	Path string
	Log  *log.Logger

	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{Path: path, Log: log.Default()}
}

// BeatsCompact keeps beats as parallel arrays, which is much smaller as
// JSON than a list of objects.
type BeatsCompact struct {
	Times       []time.Duration
	Intensities []float64
}

func compactBeats(beats []game.Beat) BeatsCompact {
	c := BeatsCompact{
		Times:       make([]time.Duration, len(beats)),
		Intensities: make([]float64, len(beats)),
	}
	for i, b := range beats {
		c.Times[i] = b.Time
		c.Intensities[i] = b.Intensity
	}
	return c
}

func uncompactBeats(c BeatsCompact) ([]game.Beat, error) {
	if len(c.Times) != len(c.Intensities) {
		return nil, errors.Errorf("%d beat times but %d intensities", len(c.Times), len(c.Intensities))
	}
	beats := make([]game.Beat, len(c.Times))
	for i := range c.Times {
		beats[i] = game.Beat{Time: c.Times[i], Intensity: c.Intensities[i]}
	}
	return beats, nil
}

// HashFile is the cache key for the audio at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if nil != err {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); nil != err {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

func (s *SQLiteStore) Init() error {
	db, err := sql.Open("sqlite3", s.Path)
	if nil != err {
		return errors.Wrapf(err, "unable to open cache %s", s.Path)
	}

	initStatement := `
	create table if not exists analyses
	  (
		  sum text not null primary key,
		  bpm integer,
		  duration integer,
		  synthetic integer,
		  beats blob
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create cache table")
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Deinit() {
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

func (s *SQLiteStore) Save(sum string, r *analysis.Result) error {
	if nil == s.db {
		return errors.New("cache is not open")
	}
	data, err := json.Marshal(compactBeats(r.Beats))
	if nil != err {
		return errors.Wrap(err, "unable to marshal beats")
	}
	_, err = s.db.Exec(
		"insert or replace into analyses(sum, bpm, duration, synthetic, beats) values(?, ?, ?, ?, ?)",
		sum, r.BPM, int64(r.Duration), r.Synthetic, data,
	)
	if nil != err {
		return errors.Wrap(err, "unable to save analysis")
	}
	s.Log.Debugf("cached %d beats for %s", len(r.Beats), sum)
	return nil
}

func (s *SQLiteStore) Load(sum string) (*analysis.Result, error) {
	if nil == s.db {
		return nil, errors.New("cache is not open")
	}
	var (
		bpm       int
		duration  int64
		synthetic bool
		data      []byte
	)
	err := s.db.QueryRow("select bpm, duration, synthetic, beats from analyses where sum = ?", sum).
		Scan(&bpm, &duration, &synthetic, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if nil != err {
		return nil, errors.Wrap(err, "unable to load analysis")
	}
	var c BeatsCompact
	if err := json.Unmarshal(data, &c); nil != err {
		return nil, errors.Wrap(err, "unable to unmarshal beats")
	}
	beats, err := uncompactBeats(c)
	if nil != err {
		return nil, err
	}
	return &analysis.Result{
		BPM:       bpm,
		Beats:     beats,
		Duration:  time.Duration(duration),
		Synthetic: synthetic,
	}, nil
}
