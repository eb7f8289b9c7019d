package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	journalQueueSize = 256
	maxJournalFrame  = 16 << 20
)

// Journal appends every sync frame to a zstd-compressed file so a match can be
// replayed. Frames are uvarint length-prefixed.
type Journal struct {
	path   string
	log    *slog.Logger
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
	frames chan []byte
	wg     sync.WaitGroup

	mu      sync.Mutex
	written int
	dropped int
	err     error
}

// OpenJournal creates dir/sync-<gameID>.zst and starts the writer
func OpenJournal(dir, gameID string, log *slog.Logger) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("sync-%s.zst", gameID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("zstd writer: %w", err)
	}

	j := &Journal{
		path:   path,
		log:    log,
		f:      f,
		enc:    enc,
		w:      bufio.NewWriterSize(enc, 64*1024),
		frames: make(chan []byte, journalQueueSize),
	}
	j.wg.Add(1)
	go j.writer()
	return j, nil
}

// Path returns the journal file location
func (j *Journal) Path() string { return j.path }

// SendFrame queues a frame for writing. Frames are dropped when the queue is full.
func (j *Journal) SendFrame(data []byte) {
	select {
	case j.frames <- data:
	default:
		j.mu.Lock()
		j.dropped++
		j.mu.Unlock()
	}
}

func (j *Journal) writer() {
	defer j.wg.Done()
	for data := range j.frames {
		if err := j.writeFrame(data); err != nil {
			j.mu.Lock()
			if j.err == nil {
				j.log.Error("journal write failed, discarding further frames", "path", j.path, "err", err)
			}
			j.err = err
			j.mu.Unlock()
		}
	}
}

func (j *Journal) writeFrame(data []byte) error {
	j.mu.Lock()
	failed := j.err != nil
	j.mu.Unlock()
	if failed {
		return nil
	}

	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(data)))
	if _, err := j.w.Write(hdr[:n]); err != nil {
		return err
	}
	if _, err := j.w.Write(data); err != nil {
		return err
	}
	j.mu.Lock()
	j.written++
	j.mu.Unlock()
	return nil
}

// Stats returns how many frames were written and dropped
func (j *Journal) Stats() (written, dropped int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.written, j.dropped
}

// Close drains queued frames and finishes the zstd stream. No SendFrame may
// run concurrently with or after Close.
func (j *Journal) Close() error {
	close(j.frames)
	j.wg.Wait()

	j.mu.Lock()
	werr := j.err
	j.mu.Unlock()

	return errors.Join(werr, j.w.Flush(), j.enc.Close(), j.f.Close())
}

// ReadJournal decodes every frame from a journal stream
func ReadJournal(r io.Reader) ([]*SyncFrame, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	var frames []*SyncFrame
	for {
		size, err := binary.ReadUvarint(br)
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("frame %d header: %w", len(frames), err)
		}
		if size > maxJournalFrame {
			return frames, fmt.Errorf("frame %d: size %d exceeds limit", len(frames), size)
		}
		buf := make([]byte, size)
		if _, err := io.ReadFull(br, buf); err != nil {
			return frames, fmt.Errorf("frame %d body: %w", len(frames), err)
		}
		f, err := DecodeFrame(buf)
		if err != nil {
			return frames, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
}

// ReadJournalFile opens and decodes a journal file
func ReadJournalFile(path string) ([]*SyncFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()
	return ReadJournal(f)
}
